package models

import (
	"errors"

	"gorm.io/gorm"
)

type StepType string

const (
	StepDelivery     StepType = "delivery"
	StepName         StepType = "name"
	StepExtras       StepType = "extras"
	StepDrinks       StepType = "drinks"
	StepCustomSelect StepType = "custom_select"
	StepCustomText   StepType = "custom_text"
)

type VisibilityMode string

const (
	VisibilityAlways           VisibilityMode = "always"
	VisibilityByItem           VisibilityMode = "by_item"
	VisibilityByCategory       VisibilityMode = "by_category"
	VisibilityByItemOrCategory VisibilityMode = "by_item_or_category"
)

type RuleType string

const (
	RulePerItem           RuleType = "per_item"
	RulePerItemAfterLimit RuleType = "per_item_after_limit"
	RuleFlatAfterLimit    RuleType = "flat_after_limit"
)

// StepVisibility decides whether a step applies to the current cart.
type StepVisibility struct {
	Mode               VisibilityMode `gorm:"type:VARCHAR(30);default:'always'" json:"mode"`
	TriggerItemIDs     []uint         `gorm:"serializer:json" json:"trigger_item_ids"`
	TriggerCategoryIDs []uint         `gorm:"serializer:json" json:"trigger_category_ids"`
}

// PricingRule converts a count of selections into a surcharge, overriding the
// individual option prices of a multi-select step.
type PricingRule struct {
	Enabled        bool     `json:"enabled"`
	Type           RuleType `gorm:"type:VARCHAR(30)" json:"type"`
	FreeItemsLimit int      `json:"free_items_limit"`
	PricePerItem   float64  `json:"price_per_item"`
	FlatPrice      float64  `json:"flat_price"`
}

// CheckoutStep is one configurable screen of the checkout wizard. The engine
// reads this config and never mutates it; mutation happens through the admin
// endpoints only.
type CheckoutStep struct {
	ID            uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Type          StepType `gorm:"type:VARCHAR(20);not null" json:"type"`
	Title         string   `gorm:"not null" json:"title"`
	SortOrder     int      `gorm:"index" json:"sort_order"`
	Enabled       bool     `gorm:"default:true" json:"enabled"`
	Required      bool     `json:"required"`
	MultiSelect   bool     `json:"multi_select"`
	MaxSelections int      `json:"max_selections"` // 0 = unlimited
	HideForTable  bool     `json:"hide_for_table"`
	SkipOnPickup  bool     `json:"skip_on_pickup"`
	Options       []StepOption   `gorm:"foreignKey:StepID;constraint:OnDelete:CASCADE" json:"options"`
	Visibility    StepVisibility `gorm:"embedded;embeddedPrefix:visibility_" json:"visibility"`
	Rule          PricingRule    `gorm:"embedded;embeddedPrefix:rule_" json:"rule"`
}

// StepOption is one choosable option of a step. Stock nil means unlimited,
// zero means currently unavailable.
type StepOption struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	StepID     uint    `gorm:"index" json:"step_id"`
	Name       string  `gorm:"not null" json:"name"`
	Price      float64 `json:"price"`
	Stock      *int    `json:"stock"`
	TrackStock bool    `json:"track_stock"`
	IsNone     bool    `json:"is_none"` // sentinel "no thanks" option
	SortOrder  int     `json:"sort_order"`
}

// Available reports whether the option can currently be selected.
func (o *StepOption) Available() bool {
	return o.Stock == nil || *o.Stock > 0
}

// FindOption returns the option with the given id, if the step has it.
func (s *CheckoutStep) FindOption(optionID uint) (StepOption, bool) {
	for _, o := range s.Options {
		if o.ID == optionID {
			return o, true
		}
	}
	return StepOption{}, false
}

// LoadSteps reads the full step configuration in configured order, options
// included. The engine treats the result as immutable input.
func LoadSteps(db *gorm.DB) ([]CheckoutStep, error) {
	var steps []CheckoutStep
	err := db.
		Preload("Options", func(tx *gorm.DB) *gorm.DB { return tx.Order("sort_order, id") }).
		Order("sort_order, id").
		Find(&steps).Error
	return steps, err
}

var (
	ErrUnknownStepType   = errors.New("unknown step type")
	ErrUnknownVisibility = errors.New("unknown visibility mode")
	ErrUnknownRuleType   = errors.New("unknown pricing rule type")
)

// Validate checks that a configured step only uses known discriminants. The
// engine skips unknown types at runtime, but admin writes are rejected early.
func (s *CheckoutStep) Validate() error {
	switch s.Type {
	case StepDelivery, StepName, StepExtras, StepDrinks, StepCustomSelect, StepCustomText:
	default:
		return ErrUnknownStepType
	}
	switch s.Visibility.Mode {
	case VisibilityAlways, VisibilityByItem, VisibilityByCategory, VisibilityByItemOrCategory:
	default:
		return ErrUnknownVisibility
	}
	if s.Rule.Enabled {
		switch s.Rule.Type {
		case RulePerItem, RulePerItemAfterLimit, RuleFlatAfterLimit:
		default:
			return ErrUnknownRuleType
		}
		if !s.MultiSelect {
			return errors.New("pricing rules apply to multi-select steps only")
		}
	}
	if s.MaxSelections < 0 {
		return errors.New("max_selections cannot be negative")
	}
	return nil
}
