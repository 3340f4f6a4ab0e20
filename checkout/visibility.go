package checkout

import "github.com/zaidqureshi-dev/menuorder-api/models"

// IsPerInstance reports whether a step's options attach to individual cart
// instances. Delivery, name and free-text steps collect session-wide input.
func IsPerInstance(t models.StepType) bool {
	switch t {
	case models.StepExtras, models.StepDrinks, models.StepCustomSelect:
		return true
	}
	return false
}

func knownStepType(t models.StepType) bool {
	switch t {
	case models.StepDelivery, models.StepName, models.StepExtras,
		models.StepDrinks, models.StepCustomSelect, models.StepCustomText:
		return true
	}
	return false
}

// instanceTriggered is the single trigger predicate shared by step visibility
// and RelevantInstances, so a visible step can never have zero relevant
// instances for a cart that made it visible.
func instanceTriggered(step models.CheckoutStep, inst CartInstance) bool {
	byItem := containsID(step.Visibility.TriggerItemIDs, inst.MenuItemID)
	byCategory := containsID(step.Visibility.TriggerCategoryIDs, inst.CategoryID)

	switch step.Visibility.Mode {
	case models.VisibilityAlways:
		return true
	case models.VisibilityByItem:
		return byItem
	case models.VisibilityByCategory:
		return byCategory
	case models.VisibilityByItemOrCategory:
		return byItem || byCategory
	}
	return false
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// VisibleSteps filters the configured steps down to the ordered subset that
// applies to this checkout. Steps with an unrecognized type render nothing and
// are skipped.
func VisibleSteps(steps []models.CheckoutStep, cart *Cart, isTable bool, deliveryType models.DeliveryType) []models.CheckoutStep {
	var visible []models.CheckoutStep
	for _, step := range steps {
		if !step.Enabled || !knownStepType(step.Type) {
			continue
		}
		if isTable && step.Type == models.StepDelivery {
			// table orders never choose delivery vs. pickup
			continue
		}
		if isTable && step.HideForTable {
			continue
		}
		if !isTable && step.SkipOnPickup && deliveryType == models.DeliveryTypePickup {
			continue
		}
		if step.Visibility.Mode != models.VisibilityAlways && !anyInstanceTriggered(step, cart) {
			continue
		}
		visible = append(visible, step)
	}
	return visible
}

func anyInstanceTriggered(step models.CheckoutStep, cart *Cart) bool {
	for _, inst := range cart.Instances() {
		if instanceTriggered(step, inst) {
			return true
		}
	}
	return false
}

// RelevantInstances returns the cart instances a step's options apply to:
// every instance for always-visible steps, otherwise the subset matching the
// step's trigger.
func RelevantInstances(step models.CheckoutStep, cart *Cart) []CartInstance {
	var relevant []CartInstance
	for _, inst := range cart.Instances() {
		if instanceTriggered(step, inst) {
			relevant = append(relevant, inst)
		}
	}
	return relevant
}
