package checkout

import (
	"github.com/google/uuid"
	"github.com/zaidqureshi-dev/menuorder-api/models"
)

// CartInstance is one physical unit in the cart. Adding the same item and size
// twice produces two instances, because checkout customizations attach per
// unit, not per item type.
type CartInstance struct {
	InstanceID string  `json:"instance_id"`
	MenuItemID uint    `json:"menu_item_id"`
	CategoryID uint    `json:"category_id"`
	Name       string  `json:"name"`
	Size       string  `json:"size,omitempty"`
	UnitPrice  float64 `json:"unit_price"`
}

// CartGroup buckets instances of the same item and size for display.
type CartGroup struct {
	MenuItemID  uint     `json:"menu_item_id"`
	Name        string   `json:"name"`
	Size        string   `json:"size,omitempty"`
	UnitPrice   float64  `json:"unit_price"`
	Quantity    int      `json:"quantity"`
	InstanceIDs []string `json:"instance_ids"`
}

// Cart owns the ordered list of instances for one checkout session.
type Cart struct {
	instances []CartInstance
}

func NewCart() *Cart {
	return &Cart{}
}

// Add creates a new instance for one unit of the given item and returns its id.
func (c *Cart) Add(item models.MenuItem, size string, price float64) string {
	inst := CartInstance{
		InstanceID: uuid.NewString(),
		MenuItemID: item.ID,
		CategoryID: item.CategoryID,
		Name:       item.Name,
		Size:       size,
		UnitPrice:  price,
	}
	c.instances = append(c.instances, inst)
	return inst.InstanceID
}

// Remove drops the instance with the given id. Callers must also prune
// dependent stores (selections, recipient names) keyed by this id.
func (c *Cart) Remove(instanceID string) bool {
	for i, inst := range c.instances {
		if inst.InstanceID == instanceID {
			c.instances = append(c.instances[:i], c.instances[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.instances = nil
}

func (c *Cart) Len() int {
	return len(c.instances)
}

// Instances returns the live instances in insertion order.
func (c *Cart) Instances() []CartInstance {
	return c.instances
}

func (c *Cart) Get(instanceID string) (CartInstance, bool) {
	for _, inst := range c.instances {
		if inst.InstanceID == instanceID {
			return inst, true
		}
	}
	return CartInstance{}, false
}

// Total is the sum of unit prices over all live instances.
func (c *Cart) Total() float64 {
	var total float64
	for _, inst := range c.instances {
		total += inst.UnitPrice
	}
	return total
}

// Groups buckets instances by (menu item, size), preserving first-seen order.
func (c *Cart) Groups() []CartGroup {
	var groups []CartGroup
	index := make(map[[2]interface{}]int)
	for _, inst := range c.instances {
		key := [2]interface{}{inst.MenuItemID, inst.Size}
		if i, ok := index[key]; ok {
			groups[i].Quantity++
			groups[i].InstanceIDs = append(groups[i].InstanceIDs, inst.InstanceID)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, CartGroup{
			MenuItemID:  inst.MenuItemID,
			Name:        inst.Name,
			Size:        inst.Size,
			UnitPrice:   inst.UnitPrice,
			Quantity:    1,
			InstanceIDs: []string{inst.InstanceID},
		})
	}
	return groups
}
