package checkout

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zaidqureshi-dev/menuorder-api/models"
)

type NameMode string

const (
	NameModeNone     NameMode = ""         // not chosen yet
	NameModeSingle   NameMode = "single"   // one name for the whole order
	NameModeMultiple NameMode = "multiple" // a name per cart instance
)

// Validation errors returned by CanProceed. They block Next and have no side
// effects.
var (
	ErrAddressTooShort  = errors.New("delivery address must be at least 5 characters")
	ErrPhoneTooShort    = errors.New("phone number must be at least 10 digits")
	ErrNameModeMissing  = errors.New("choose a single name or one name per item")
	ErrNameTooShort     = errors.New("name must be at least 2 characters")
	ErrInstancesUnnamed = errors.New("every item needs a recipient name")
	ErrSelectionMissing = errors.New("this step requires a selection")
)

// Session is the explicit wizard state for one shopper. All transitions are
// methods on this value; there is no ambient global state.
type Session struct {
	ID          string
	IsTable     bool
	TableNumber string

	Cart       *Cart
	Selections *SelectionStore

	StepIndex     int
	DeliveryType  models.DeliveryType
	Address       string
	Phone         string
	NameMode      NameMode
	CustomerName  string
	InstanceNames map[string]string // instanceID -> recipient name
	TextAnswers   map[uint]string   // stepID -> free text

	CreatedAt time.Time
	LastSeen  time.Time
}

func NewSession(tableNumber string) *Session {
	s := &Session{
		ID:            uuid.NewString(),
		IsTable:       tableNumber != "",
		TableNumber:   tableNumber,
		Cart:          NewCart(),
		Selections:    NewSelectionStore(),
		DeliveryType:  models.DeliveryTypePickup,
		InstanceNames: make(map[string]string),
		TextAnswers:   make(map[uint]string),
		CreatedAt:     time.Now(),
		LastSeen:      time.Now(),
	}
	if s.IsTable {
		s.DeliveryType = models.DeliveryTypeTable
	}
	return s
}

// VisibleSteps resolves the configured steps against this session's cart and
// context flags.
func (s *Session) VisibleSteps(config []models.CheckoutStep) []models.CheckoutStep {
	return VisibleSteps(config, s.Cart, s.IsTable, s.DeliveryType)
}

// Clamp pulls the step index back into range after the visible set changed,
// e.g. when toggling the delivery type hides a later step.
func (s *Session) Clamp(config []models.CheckoutStep) {
	visible := s.VisibleSteps(config)
	if s.StepIndex >= len(visible) {
		s.StepIndex = len(visible) - 1
	}
	if s.StepIndex < 0 {
		s.StepIndex = 0
	}
}

// CurrentStep returns the step the wizard is on, if any.
func (s *Session) CurrentStep(config []models.CheckoutStep) (models.CheckoutStep, bool) {
	visible := s.VisibleSteps(config)
	if s.StepIndex < 0 || s.StepIndex >= len(visible) {
		return models.CheckoutStep{}, false
	}
	return visible[s.StepIndex], true
}

// CanProceed validates the given step against the session state. A nil return
// allows Next.
func (s *Session) CanProceed(step models.CheckoutStep) error {
	switch step.Type {
	case models.StepDelivery:
		if s.DeliveryType == models.DeliveryTypeDelivery && len(strings.TrimSpace(s.Address)) < 5 {
			return ErrAddressTooShort
		}
		return nil

	case models.StepName:
		if len(strings.TrimSpace(s.Phone)) < 10 {
			return ErrPhoneTooShort
		}
		switch s.NameMode {
		case NameModeSingle:
			if len(strings.TrimSpace(s.CustomerName)) < 2 {
				return ErrNameTooShort
			}
		case NameModeMultiple:
			for _, inst := range RelevantInstances(step, s.Cart) {
				if len(strings.TrimSpace(s.InstanceNames[inst.InstanceID])) < 2 {
					return ErrInstancesUnnamed
				}
			}
		default:
			return ErrNameModeMissing
		}
		return nil
	}

	if step.Required && IsPerInstance(step.Type) && len(step.Options) > 0 {
		for _, inst := range RelevantInstances(step, s.Cart) {
			if len(selectedOptions(s.Selections, step, inst.InstanceID)) > 0 {
				return nil
			}
		}
		return ErrSelectionMissing
	}

	// optional steps never block
	return nil
}

// Next advances the wizard. It returns submit=true when the current step was
// the last one and the payload should be assembled; validation errors leave
// the index untouched.
func (s *Session) Next(config []models.CheckoutStep) (submit bool, err error) {
	visible := s.VisibleSteps(config)
	if len(visible) == 0 {
		return true, nil
	}
	s.Clamp(config)
	step := visible[s.StepIndex]
	if err := s.CanProceed(step); err != nil {
		return false, err
	}
	if s.StepIndex >= len(visible)-1 {
		return true, nil
	}
	s.StepIndex++
	return false, nil
}

// Back moves one step backwards, unconditionally. No validation applies on
// backward movement.
func (s *Session) Back(config []models.CheckoutStep) {
	if s.StepIndex > 0 {
		s.StepIndex--
	}
	s.Clamp(config)
}

// RemoveInstance drops a cart instance and every dependent entry keyed by it.
func (s *Session) RemoveInstance(instanceID string) bool {
	if !s.Cart.Remove(instanceID) {
		return false
	}
	s.Selections.PruneInstance(instanceID)
	delete(s.InstanceNames, instanceID)
	return true
}

// Reset clears the cart-scoped state after a completed order, keeping the
// contact details so a table can order again without retyping them.
func (s *Session) Reset() {
	s.Cart.Clear()
	s.Selections.Clear()
	s.InstanceNames = make(map[string]string)
	s.TextAnswers = make(map[uint]string)
	s.StepIndex = 0
}

// Surcharge prices the current selections over the visible steps.
func (s *Session) Surcharge(config []models.CheckoutStep) Surcharge {
	return ComputeSurcharge(s.Selections, s.VisibleSteps(config), s.Cart)
}

// Total is the cart total plus the current surcharge.
func (s *Session) Total(config []models.CheckoutStep) float64 {
	return s.Cart.Total() + s.Surcharge(config).Total
}
