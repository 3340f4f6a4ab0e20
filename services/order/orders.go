package orders

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zaidqureshi-dev/menuorder-api/checkout"
	"github.com/zaidqureshi-dev/menuorder-api/models"
	"github.com/zaidqureshi-dev/menuorder-api/services/stock"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrOrderNotFound    = errors.New("order not found")
	ErrAlreadyCancelled = errors.New("order is already cancelled")
	ErrNotPending       = errors.New("order is not pending")
)

// SubmitResult is what the final Next returns to the shopper. Warnings carry
// per-line reservation failures: the order exists as pending either way and an
// operator reconciles manually.
type SubmitResult struct {
	OrderRef string   `json:"order_ref"`
	OrderID  uint     `json:"order_id"`
	Total    float64  `json:"total"`
	Warnings []string `json:"warnings,omitempty"`
}

// generateOrderRef builds a sortable unique reference, e.g.
// 20250908130500-<uuid>.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// Submit runs the terminal checkout sequence: assemble the order, persist it
// as pending, and only after a durable write reserve stock line by line. On a
// persistence failure nothing is reserved and the cart stays intact; the cart
// is cleared only after the reservation pass ran.
func Submit(db *gorm.DB, stockSvc *stock.Service, config []models.CheckoutStep, s *checkout.Session) (*SubmitResult, error) {
	if s.Cart.Len() == 0 {
		return nil, ErrEmptyCart
	}

	order := assembleOrder(config, s)

	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	}); err != nil {
		return nil, err
	}

	result := &SubmitResult{
		OrderRef: order.OrderRef,
		OrderID:  order.ID,
		Total:    order.Total,
	}

	lines := make([]stock.Line, 0, len(order.StockLines))
	for _, l := range order.StockLines {
		lines = append(lines, stock.Line{Kind: l.Kind, TargetID: l.TargetID, Quantity: l.Quantity})
	}
	for _, lineErr := range stockSvc.Reserve(lines) {
		result.Warnings = append(result.Warnings, lineErr.Error())
	}

	s.Reset()
	return result, nil
}

// assembleOrder snapshots the session into a persistable order: one item per
// cart instance with its selections attached, the surcharge lines, and the
// stock lines to reserve.
func assembleOrder(config []models.CheckoutStep, s *checkout.Session) *models.Order {
	visible := s.VisibleSteps(config)
	surcharge := checkout.ComputeSurcharge(s.Selections, visible, s.Cart)

	optionsByInstance := make(map[string][]models.OrderItemOption)
	for _, line := range surcharge.Lines {
		if line.OptionID == 0 {
			continue
		}
		optionsByInstance[line.InstanceID] = append(optionsByInstance[line.InstanceID], models.OrderItemOption{
			StepID:    line.StepID,
			StepTitle: line.StepTitle,
			OptionID:  line.OptionID,
			Name:      line.Name,
			Price:     line.Price,
		})
	}

	order := &models.Order{
		OrderRef:      generateOrderRef(),
		CustomerName:  strings.TrimSpace(s.CustomerName),
		CustomerPhone: strings.TrimSpace(s.Phone),
		DeliveryType:  s.DeliveryType,
		TableNumber:   s.TableNumber,
		Subtotal:      s.Cart.Total(),
		Surcharge:     surcharge.Total,
		Total:         s.Cart.Total() + surcharge.Total,
		Status:        models.OrderStatusPending,
		CreatedAt:     time.Now(),
	}
	if s.DeliveryType == models.DeliveryTypeDelivery {
		order.Address = strings.TrimSpace(s.Address)
	}

	for _, inst := range s.Cart.Instances() {
		order.Items = append(order.Items, models.OrderItem{
			InstanceID:    inst.InstanceID,
			MenuItemID:    inst.MenuItemID,
			Name:          inst.Name,
			Size:          inst.Size,
			UnitPrice:     inst.UnitPrice,
			RecipientName: strings.TrimSpace(s.InstanceNames[inst.InstanceID]),
			Options:       optionsByInstance[inst.InstanceID],
		})
	}

	for _, step := range visible {
		if step.Type == models.StepCustomText {
			if text := strings.TrimSpace(s.TextAnswers[step.ID]); text != "" {
				if order.Notes == nil {
					order.Notes = make(map[string]string)
				}
				order.Notes[step.Title] = text
			}
		}
	}

	order.StockLines = stockLines(visible, s)
	return order
}

// stockLines derives the reserve set: every cart instance by menu item id, and
// every selected option flagged as stock-tracked.
func stockLines(visible []models.CheckoutStep, s *checkout.Session) []models.OrderStockLine {
	var lines []models.OrderStockLine

	itemQty := make(map[uint]int)
	var itemOrder []uint
	for _, inst := range s.Cart.Instances() {
		if _, seen := itemQty[inst.MenuItemID]; !seen {
			itemOrder = append(itemOrder, inst.MenuItemID)
		}
		itemQty[inst.MenuItemID]++
	}
	for _, id := range itemOrder {
		lines = append(lines, models.OrderStockLine{
			Kind:     models.StockKindMenuItem,
			TargetID: id,
			Quantity: itemQty[id],
		})
	}

	optionQty := make(map[uint]int)
	var optionOrder []uint
	for _, step := range visible {
		if !checkout.IsPerInstance(step.Type) {
			continue
		}
		for _, inst := range checkout.RelevantInstances(step, s.Cart) {
			for _, id := range s.Selections.Selected(step.ID, inst.InstanceID) {
				opt, ok := step.FindOption(id)
				if !ok || !opt.TrackStock {
					continue
				}
				if _, seen := optionQty[opt.ID]; !seen {
					optionOrder = append(optionOrder, opt.ID)
				}
				optionQty[opt.ID]++
			}
		}
	}
	for _, id := range optionOrder {
		lines = append(lines, models.OrderStockLine{
			Kind:     models.StockKindStepOption,
			TargetID: id,
			Quantity: optionQty[id],
		})
	}
	return lines
}

// Confirm transitions a pending order to confirmed.
func Confirm(db *gorm.DB, orderRef string) error {
	res := db.Model(&models.Order{}).
		Where("order_ref = ? AND status = ?", orderRef, models.OrderStatusPending).
		Update("status", models.OrderStatusConfirmed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if exists, err := orderExists(db, orderRef); err != nil {
			return err
		} else if !exists {
			return ErrOrderNotFound
		}
		return ErrNotPending
	}
	return nil
}

// Cancel flips the order to cancelled and releases the recorded stock lines.
// The guarded status flip makes it idempotent: a second call finds the order
// already cancelled and releases nothing.
func Cancel(db *gorm.DB, stockSvc *stock.Service, orderRef string) ([]string, error) {
	res := db.Model(&models.Order{}).
		Where("order_ref = ? AND status <> ?", orderRef, models.OrderStatusCancelled).
		Update("status", models.OrderStatusCancelled)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if exists, err := orderExists(db, orderRef); err != nil {
			return nil, err
		} else if !exists {
			return nil, ErrOrderNotFound
		}
		return nil, ErrAlreadyCancelled
	}

	var order models.Order
	if err := db.Preload("StockLines").Where("order_ref = ?", orderRef).First(&order).Error; err != nil {
		return nil, err
	}
	lines := make([]stock.Line, 0, len(order.StockLines))
	for _, l := range order.StockLines {
		lines = append(lines, stock.Line{Kind: l.Kind, TargetID: l.TargetID, Quantity: l.Quantity})
	}
	var warnings []string
	for _, lineErr := range stockSvc.Release(lines) {
		warnings = append(warnings, lineErr.Error())
	}
	return warnings, nil
}

func orderExists(db *gorm.DB, orderRef string) (bool, error) {
	var count int64
	if err := db.Model(&models.Order{}).Where("order_ref = ?", orderRef).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
