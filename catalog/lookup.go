package catalog

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/sellerhub/marketplace-api/cache"
	"github.com/sellerhub/marketplace-api/models"
	"gorm.io/gorm"
)

// UnknownSeller is stored on order lines whose product could not be
// resolved. Order placement proceeds in a degraded state instead of failing.
const UnknownSeller = "unknown-seller"

// Resolution is the outcome of a catalog lookup. Degraded marks lines that
// carry sentinel values instead of authoritative data.
type Resolution struct {
	SellerID   string
	FinalPrice float64
	Degraded   bool
	Reason     string
}

// NormalizeRef extracts the canonical product id from a raw reference.
// Clients send bare ids ("14") as well as path-like refs ("/product/14").
func NormalizeRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	return ref
}

// ParseRef normalizes and parses a raw product reference.
func ParseRef(ref string) (uint, bool) {
	id, err := strconv.ParseUint(NormalizeRef(ref), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// Resolve returns the authoritative seller id and final price for a raw
// product reference. It never returns an error: any miss degrades to
// sentinel values and the caller decides how much that matters.
func Resolve(ctx context.Context, db *gorm.DB, pc *cache.ProductCache, ref string) Resolution {
	id, ok := ParseRef(ref)
	if !ok {
		return degraded("invalid product reference " + strconv.Quote(ref))
	}

	if entry, hit := pc.Get(ctx, id); hit {
		return Resolution{SellerID: entry.SellerID, FinalPrice: entry.FinalPrice}
	}

	var product models.Product
	if err := db.WithContext(ctx).Select("seller_id", "final_price").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return degraded("product " + NormalizeRef(ref) + " not found")
		}
		return degraded("product lookup failed: " + err.Error())
	}

	pc.Set(ctx, id, cache.ProductEntry{SellerID: product.SellerID, FinalPrice: product.FinalPrice})
	return Resolution{SellerID: product.SellerID, FinalPrice: product.FinalPrice}
}

func degraded(reason string) Resolution {
	return Resolution{SellerID: UnknownSeller, Degraded: true, Reason: reason}
}
