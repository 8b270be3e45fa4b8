package catalog

import (
	"context"
	"testing"

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
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func TestNormalizeRef(t *testing.T) {
	assert.Equal(t, "14", NormalizeRef("14"))
	assert.Equal(t, "14", NormalizeRef("/product/14"))
	assert.Equal(t, "14", NormalizeRef("product/14"))
	assert.Equal(t, "14", NormalizeRef("  /product/14  "))
	assert.Equal(t, "", NormalizeRef("/product/"))
}

func TestParseRef(t *testing.T) {
	id, ok := ParseRef("/product/14")
	assert.True(t, ok)
	assert.Equal(t, uint(14), id)

	_, ok = ParseRef("not-a-number")
	assert.False(t, ok)
}

func TestResolveReturnsAuthoritativeData(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Product{
		SellerID:   "seller-7",
		Title:      "Bulk widgets",
		Price:      100,
		FinalPrice: 150,
	}).Error)

	res := Resolve(context.Background(), db, nil, "/product/1")
	assert.False(t, res.Degraded)
	assert.Equal(t, "seller-7", res.SellerID)
	assert.Equal(t, 150.0, res.FinalPrice)
}

func TestResolveMissDegrades(t *testing.T) {
	db := newTestDB(t)

	res := Resolve(context.Background(), db, nil, "999")
	assert.True(t, res.Degraded)
	assert.Equal(t, UnknownSeller, res.SellerID)
	assert.Equal(t, 0.0, res.FinalPrice)
	assert.NotEmpty(t, res.Reason)
}

func TestResolveInvalidRefDegrades(t *testing.T) {
	db := newTestDB(t)

	res := Resolve(context.Background(), db, nil, "/product/abc")
	assert.True(t, res.Degraded)
	assert.Equal(t, UnknownSeller, res.SellerID)
}
