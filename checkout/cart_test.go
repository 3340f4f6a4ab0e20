package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaidqureshi-dev/menuorder-api/models"
)

func testItem(id, categoryID uint, name string, price float64) models.MenuItem {
	return models.MenuItem{ID: id, CategoryID: categoryID, Name: name, Price: price}
}

func TestCart_AddCreatesOneInstancePerUnit(t *testing.T) {
	cart := NewCart()
	latte := testItem(1, 10, "Latte", 4.5)

	first := cart.Add(latte, "large", 5.0)
	second := cart.Add(latte, "large", 5.0)

	require.NotEqual(t, first, second, "re-adding the same item/size must create a new instance")
	assert.Equal(t, 2, cart.Len())
	assert.Equal(t, 10.0, cart.Total())
}

func TestCart_GroupsBucketByItemAndSize(t *testing.T) {
	cart := NewCart()
	latte := testItem(1, 10, "Latte", 4.5)
	cake := testItem(2, 11, "Cake", 6.0)

	cart.Add(latte, "large", 5.0)
	cart.Add(latte, "small", 4.0)
	cart.Add(latte, "large", 5.0)
	cart.Add(cake, "", 6.0)

	groups := cart.Groups()
	require.Len(t, groups, 3)

	assert.Equal(t, "large", groups[0].Size)
	assert.Equal(t, 2, groups[0].Quantity)
	assert.Len(t, groups[0].InstanceIDs, 2)
	assert.Equal(t, "small", groups[1].Size)
	assert.Equal(t, 1, groups[1].Quantity)
	assert.Equal(t, "Cake", groups[2].Name)
}

func TestCart_RemoveDropsOnlyTheGivenInstance(t *testing.T) {
	cart := NewCart()
	latte := testItem(1, 10, "Latte", 4.5)

	first := cart.Add(latte, "large", 5.0)
	second := cart.Add(latte, "large", 5.0)

	require.True(t, cart.Remove(first))
	assert.False(t, cart.Remove(first), "second removal of the same id is a no-op")

	assert.Equal(t, 1, cart.Len())
	_, ok := cart.Get(second)
	assert.True(t, ok)
	assert.Equal(t, 5.0, cart.Total())
}

func TestCart_Clear(t *testing.T) {
	cart := NewCart()
	cart.Add(testItem(1, 10, "Latte", 4.5), "", 4.5)
	cart.Clear()

	assert.Equal(t, 0, cart.Len())
	assert.Equal(t, 0.0, cart.Total())
	assert.Empty(t, cart.Groups())
}
