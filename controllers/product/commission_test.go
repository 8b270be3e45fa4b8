package productcontroller

import (
	"errors"
	"testing"

	"github.com/sellerhub/marketplace-api/errs"
	"github.com/sellerhub/marketplace-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Category{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, p models.Product) models.Product {
	t.Helper()
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestDisplayPrice(t *testing.T) {
	// A non-zero authoritative final price wins over the listed price.
	assert.Equal(t, 150.0, DisplayPrice(100, 150))
	assert.Equal(t, 100.0, DisplayPrice(100, 0))
}

func TestDisableCommissionResetsPricing(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, models.Product{
		SellerID:        "seller-1",
		Title:           "Pallet of bolts",
		Price:           100,
		FinalPrice:      120,
		Commission:      models.CommissionEnabled,
		CommissionType:  models.CommissionFixed,
		CommissionValue: 20,
	})

	updated, err := SetCommission(db, product.ID, models.CommissionDisabled)
	require.NoError(t, err)

	assert.Equal(t, models.CommissionDisabled, updated.Commission)
	assert.Equal(t, models.CommissionPercentage, updated.CommissionType)
	assert.Equal(t, 0.0, updated.CommissionValue)
	assert.Equal(t, 100.0, updated.FinalPrice)

	// The reset is persisted, not just returned.
	var stored models.Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	assert.Equal(t, 100.0, stored.FinalPrice)
	assert.Equal(t, 0.0, stored.CommissionValue)
}

func TestSetCommissionRejectsUnknownFlag(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, models.Product{SellerID: "seller-1", Title: "Crate", Price: 10})

	_, err := SetCommission(db, product.ID, "Maybe")
	var validation *errs.ValidationError
	assert.True(t, errors.As(err, &validation))
}

func TestSetCommissionMissingProduct(t *testing.T) {
	db := newTestDB(t)

	_, err := SetCommission(db, 42, models.CommissionEnabled)
	var notFound *errs.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestSetCommissionDetailsRequiresEnabledCommission(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, models.Product{
		SellerID:   "seller-1",
		Title:      "Drum of oil",
		Price:      300,
		FinalPrice: 300,
		Commission: models.CommissionDisabled,
	})

	_, err := SetCommissionDetails(db, product.ID, models.CommissionPercentage, 5, 315)
	var precondition *errs.PreconditionError
	require.True(t, errors.As(err, &precondition))

	// Nothing changed.
	var stored models.Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	assert.Equal(t, 0.0, stored.CommissionValue)
	assert.Equal(t, 300.0, stored.FinalPrice)
}

func TestSetCommissionDetails(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, models.Product{
		SellerID:   "seller-1",
		Title:      "Box of gears",
		Price:      200,
		FinalPrice: 200,
		Commission: models.CommissionEnabled,
	})

	updated, err := SetCommissionDetails(db, product.ID, models.CommissionFixed, 25, 225)
	require.NoError(t, err)
	assert.Equal(t, models.CommissionFixed, updated.CommissionType)
	assert.Equal(t, 25.0, updated.CommissionValue)
	assert.Equal(t, 225.0, updated.FinalPrice)
}

func TestSetCommissionDetailsValidation(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, models.Product{
		SellerID:   "seller-1",
		Title:      "Spool of wire",
		Price:      50,
		Commission: models.CommissionEnabled,
	})

	var validation *errs.ValidationError

	_, err := SetCommissionDetails(db, product.ID, "markup", 5, 55)
	assert.True(t, errors.As(err, &validation))

	_, err = SetCommissionDetails(db, product.ID, models.CommissionFixed, -1, 55)
	assert.True(t, errors.As(err, &validation))

	_, err = SetCommissionDetails(db, product.ID, models.CommissionFixed, 5, -55)
	assert.True(t, errors.As(err, &validation))
}
