package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaidqureshi-dev/menuorder-api/models"
)

func alwaysStep(id uint, stepType models.StepType) models.CheckoutStep {
	return models.CheckoutStep{
		ID:         id,
		Type:       stepType,
		Title:      string(stepType),
		Enabled:    true,
		Visibility: models.StepVisibility{Mode: models.VisibilityAlways},
	}
}

func TestVisibleSteps_FilterOrder(t *testing.T) {
	disabled := alwaysStep(1, models.StepExtras)
	disabled.Enabled = false

	delivery := alwaysStep(2, models.StepDelivery)

	tableHidden := alwaysStep(3, models.StepDrinks)
	tableHidden.HideForTable = true

	pickupSkipped := alwaysStep(4, models.StepCustomText)
	pickupSkipped.SkipOnPickup = true

	name := alwaysStep(5, models.StepName)

	config := []models.CheckoutStep{disabled, delivery, tableHidden, pickupSkipped, name}

	cart := NewCart()
	cart.Add(testItem(1, 10, "Latte", 4.5), "", 4.5)

	t.Run("table session drops delivery and table-hidden steps", func(t *testing.T) {
		visible := VisibleSteps(config, cart, true, models.DeliveryTypeTable)
		ids := stepIDs(visible)
		assert.Equal(t, []uint{4, 5}, ids)
	})

	t.Run("pickup drops skip-on-pickup steps", func(t *testing.T) {
		visible := VisibleSteps(config, cart, false, models.DeliveryTypePickup)
		assert.Equal(t, []uint{2, 3, 5}, stepIDs(visible))
	})

	t.Run("delivery keeps skip-on-pickup steps", func(t *testing.T) {
		visible := VisibleSteps(config, cart, false, models.DeliveryTypeDelivery)
		assert.Equal(t, []uint{2, 3, 4, 5}, stepIDs(visible))
	})
}

func TestVisibleSteps_TriggerModes(t *testing.T) {
	cart := NewCart()
	cart.Add(testItem(1, 10, "Latte", 4.5), "", 4.5) // item 1, category 10
	cart.Add(testItem(2, 11, "Cake", 6.0), "", 6.0)  // item 2, category 11

	cases := []struct {
		name    string
		mode    models.VisibilityMode
		items   []uint
		cats    []uint
		visible bool
	}{
		{"by_item match", models.VisibilityByItem, []uint{2}, nil, true},
		{"by_item miss", models.VisibilityByItem, []uint{99}, nil, false},
		{"by_category match", models.VisibilityByCategory, nil, []uint{10}, true},
		{"by_category miss", models.VisibilityByCategory, nil, []uint{99}, false},
		{"or matches on item alone", models.VisibilityByItemOrCategory, []uint{1}, []uint{99}, true},
		{"or matches on category alone", models.VisibilityByItemOrCategory, []uint{99}, []uint{11}, true},
		{"or with neither", models.VisibilityByItemOrCategory, []uint{99}, []uint{99}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			step := alwaysStep(7, models.StepCustomSelect)
			step.Visibility = models.StepVisibility{
				Mode:               tc.mode,
				TriggerItemIDs:     tc.items,
				TriggerCategoryIDs: tc.cats,
			}
			visible := VisibleSteps([]models.CheckoutStep{step}, cart, false, models.DeliveryTypePickup)
			assert.Equal(t, tc.visible, len(visible) == 1)
		})
	}
}

func TestVisibleSteps_SkipsUnknownStepType(t *testing.T) {
	odd := alwaysStep(1, models.StepType("loyalty_spin"))
	cart := NewCart()
	cart.Add(testItem(1, 10, "Latte", 4.5), "", 4.5)

	assert.Empty(t, VisibleSteps([]models.CheckoutStep{odd}, cart, false, models.DeliveryTypePickup))
}

// Relevant instances and step visibility share one predicate: a triggered step
// can never be visible with zero relevant instances.
func TestRelevantInstances_ConsistentWithVisibility(t *testing.T) {
	cart := NewCart()
	cart.Add(testItem(1, 10, "Latte", 4.5), "", 4.5)
	cart.Add(testItem(2, 11, "Cake", 6.0), "", 6.0)

	steps := []models.CheckoutStep{
		alwaysStep(1, models.StepExtras),
		{
			ID: 2, Type: models.StepCustomSelect, Enabled: true,
			Visibility: models.StepVisibility{Mode: models.VisibilityByItem, TriggerItemIDs: []uint{2}},
		},
		{
			ID: 3, Type: models.StepCustomSelect, Enabled: true,
			Visibility: models.StepVisibility{Mode: models.VisibilityByCategory, TriggerCategoryIDs: []uint{42}},
		},
	}

	visibleIDs := stepIDs(VisibleSteps(steps, cart, false, models.DeliveryTypePickup))
	for _, step := range steps {
		relevant := RelevantInstances(step, cart)

		// subset of the cart
		for _, inst := range relevant {
			_, ok := cart.Get(inst.InstanceID)
			require.True(t, ok)
		}

		shown := containsID(visibleIDs, step.ID)
		assert.Equal(t, shown, len(relevant) > 0, "step %d", step.ID)
	}

	always := steps[0]
	assert.Len(t, RelevantInstances(always, cart), 2, "always-visible steps apply to every instance")
}

func stepIDs(steps []models.CheckoutStep) []uint {
	ids := make([]uint, 0, len(steps))
	for _, s := range steps {
		ids = append(ids, s.ID)
	}
	return ids
}
