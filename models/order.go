package models

import "time"

type OrderStatus string
type DeliveryType string
type StockKind string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // accepted by the shop
	OrderStatusCancelled OrderStatus = "cancelled" // cancelled; stock released

	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
	DeliveryTypeTable    DeliveryType = "table"

	StockKindMenuItem   StockKind = "menu_item"
	StockKindStepOption StockKind = "step_option"
)

type Order struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	OrderRef      string       `gorm:"uniqueIndex;not null" json:"order_ref"`
	CustomerName  string       `json:"customer_name"`
	CustomerPhone string       `json:"customer_phone"`
	DeliveryType  DeliveryType `gorm:"type:VARCHAR(20)" json:"delivery_type"`
	TableNumber   string       `json:"table_number,omitempty"`
	Address       string       `json:"address,omitempty"`
	Items         []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	StockLines    []OrderStockLine  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	Notes         map[string]string `gorm:"serializer:json" json:"notes,omitempty"` // free-text step answers, keyed by step title
	Subtotal      float64     `json:"subtotal"`
	Surcharge     float64     `json:"surcharge"`
	Total         float64     `json:"total"`
	Status        OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
}

// OrderItem is one cart instance at the moment of submission. Customizations
// stay attached to the instance so downstream consumers know which unit gets
// which topping.
type OrderItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	OrderID       uint    `gorm:"index" json:"-"`
	InstanceID    string  `gorm:"not null" json:"instance_id"`
	MenuItemID    uint    `json:"menu_item_id"`
	Name          string  `json:"name"`
	Size          string  `json:"size,omitempty"`
	UnitPrice     float64 `json:"unit_price"`
	RecipientName string  `json:"recipient_name,omitempty"`
	Options       []OrderItemOption `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE" json:"options"`
}

type OrderItemOption struct {
	ID          uint    `gorm:"primaryKey" json:"-"`
	OrderItemID uint    `gorm:"index" json:"-"`
	StepID      uint    `json:"step_id"`
	StepTitle   string  `json:"step_title"`
	OptionID    uint    `json:"option_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
}

// OrderStockLine records what was reserved for the order so cancellation can
// release exactly the same set.
type OrderStockLine struct {
	ID       uint      `gorm:"primaryKey"`
	OrderID  uint      `gorm:"index"`
	Kind     StockKind `gorm:"type:VARCHAR(20)"`
	TargetID uint
	Quantity int
}
