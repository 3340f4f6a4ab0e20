package stock

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaidqureshi-dev/menuorder-api/models"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.MenuItem{}, &models.StepOption{}))
	return NewService(db), db
}

func intPtr(v int) *int { return &v }

func seedItem(t *testing.T, db *gorm.DB, stock *int) uint {
	t.Helper()
	item := models.MenuItem{Name: "Latte", Price: 4.5, Stock: stock, Enabled: true}
	require.NoError(t, db.Create(&item).Error)
	return item.ID
}

func TestReserve_FloorsAtZero(t *testing.T) {
	svc, db := setupService(t)
	id := seedItem(t, db, intPtr(2))

	failed := svc.Reserve([]Line{{Kind: models.StockKindMenuItem, TargetID: id, Quantity: 3}})
	require.Empty(t, failed)

	value, err := svc.Get(models.StockKindMenuItem, id)
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, 0, *value, "a decrement past zero floors, it never goes negative")
}

func TestRelease_AddsNominalQuantityBack(t *testing.T) {
	svc, db := setupService(t)
	id := seedItem(t, db, intPtr(2))

	require.Empty(t, svc.Reserve([]Line{{Kind: models.StockKindMenuItem, TargetID: id, Quantity: 3}}))
	require.Empty(t, svc.Release([]Line{{Kind: models.StockKindMenuItem, TargetID: id, Quantity: 3}}))

	value, err := svc.Get(models.StockKindMenuItem, id)
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, 3, *value, "release does not know about the floor clamp")
}

func TestReserve_UnlimitedCounterIsNoOp(t *testing.T) {
	svc, db := setupService(t)
	id := seedItem(t, db, nil)

	require.Empty(t, svc.Reserve([]Line{{Kind: models.StockKindMenuItem, TargetID: id, Quantity: 5}}))

	value, err := svc.Get(models.StockKindMenuItem, id)
	require.NoError(t, err)
	assert.Nil(t, value, "NULL stock stays NULL")
}

func TestReserve_ExactQuantity(t *testing.T) {
	svc, db := setupService(t)
	id := seedItem(t, db, intPtr(3))

	require.Empty(t, svc.Reserve([]Line{{Kind: models.StockKindMenuItem, TargetID: id, Quantity: 3}}))

	value, err := svc.Get(models.StockKindMenuItem, id)
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, 0, *value)
}

func TestAdjust_StepOptionCounters(t *testing.T) {
	svc, db := setupService(t)
	option := models.StepOption{Name: "oat milk", Stock: intPtr(10), TrackStock: true}
	require.NoError(t, db.Create(&option).Error)

	require.Empty(t, svc.Reserve([]Line{{Kind: models.StockKindStepOption, TargetID: option.ID, Quantity: 4}}))

	value, err := svc.Get(models.StockKindStepOption, option.ID)
	require.NoError(t, err)
	require.NotNil(t, value)
	assert.Equal(t, 6, *value)
}

func TestReserve_UnknownKindFails(t *testing.T) {
	svc, _ := setupService(t)

	failed := svc.Reserve([]Line{{Kind: models.StockKind("warehouse"), TargetID: 1, Quantity: 1}})
	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed[0].Err, ErrUnknownKind)
}

func TestSet_SwitchesToUnlimited(t *testing.T) {
	svc, db := setupService(t)
	id := seedItem(t, db, intPtr(5))

	require.NoError(t, svc.Set(models.StockKindMenuItem, id, nil))

	value, err := svc.Get(models.StockKindMenuItem, id)
	require.NoError(t, err)
	assert.Nil(t, value)
}
