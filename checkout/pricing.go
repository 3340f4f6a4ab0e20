package checkout

import "github.com/zaidqureshi-dev/menuorder-api/models"

// PriceLine is one priced (or zero-priced) selection, tagged with the instance
// it was selected for. Rule surcharges appear as lines with OptionID 0.
type PriceLine struct {
	StepID     uint    `json:"step_id"`
	StepTitle  string  `json:"step_title"`
	InstanceID string  `json:"instance_id"`
	OptionID   uint    `json:"option_id,omitempty"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
}

type Surcharge struct {
	Total float64     `json:"total"`
	Lines []PriceLine `json:"lines"`
}

// ComputeSurcharge derives the checkout surcharge from the current selections.
// It is a pure function of its inputs; callers pass the already-resolved
// visible step list. Selections referencing unknown options or instances that
// left the cart are ignored, never an error.
func ComputeSurcharge(sel *SelectionStore, steps []models.CheckoutStep, cart *Cart) Surcharge {
	var out Surcharge
	for _, step := range steps {
		if !IsPerInstance(step.Type) {
			continue
		}
		for _, inst := range RelevantInstances(step, cart) {
			picked := selectedOptions(sel, step, inst.InstanceID)

			if step.Type == models.StepCustomSelect && step.Rule.Enabled {
				// the rule fully determines the charge; option prices are zeroed
				for _, opt := range picked {
					out.Lines = append(out.Lines, PriceLine{
						StepID:     step.ID,
						StepTitle:  step.Title,
						InstanceID: inst.InstanceID,
						OptionID:   opt.ID,
						Name:       opt.Name,
						Price:      0,
					})
				}
				if charge := applyRule(step.Rule, len(picked)); charge > 0 {
					out.Lines = append(out.Lines, PriceLine{
						StepID:     step.ID,
						StepTitle:  step.Title,
						InstanceID: inst.InstanceID,
						Name:       step.Title,
						Price:      charge,
					})
					out.Total += charge
				}
				continue
			}

			for _, opt := range picked {
				out.Lines = append(out.Lines, PriceLine{
					StepID:     step.ID,
					StepTitle:  step.Title,
					InstanceID: inst.InstanceID,
					OptionID:   opt.ID,
					Name:       opt.Name,
					Price:      opt.Price,
				})
				out.Total += opt.Price
			}
		}
	}
	return out
}

// selectedOptions resolves a scope key's selected ids against the step's
// option list, dropping unknown ids and the "none" sentinel.
func selectedOptions(sel *SelectionStore, step models.CheckoutStep, key string) []models.StepOption {
	var opts []models.StepOption
	for _, id := range sel.Selected(step.ID, key) {
		opt, ok := step.FindOption(id)
		if !ok || opt.IsNone {
			continue
		}
		opts = append(opts, opt)
	}
	return opts
}

func applyRule(rule models.PricingRule, n int) float64 {
	switch rule.Type {
	case models.RulePerItem:
		return float64(n) * rule.PricePerItem
	case models.RulePerItemAfterLimit:
		billable := n - rule.FreeItemsLimit
		if billable <= 0 {
			return 0
		}
		return float64(billable) * rule.PricePerItem
	case models.RuleFlatAfterLimit:
		if n > rule.FreeItemsLimit {
			return rule.FlatPrice
		}
		return 0
	}
	return 0
}
