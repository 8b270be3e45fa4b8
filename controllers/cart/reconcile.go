package cartControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sellerhub/marketplace-api/catalog"
	"github.com/sellerhub/marketplace-api/errs"
	"github.com/sellerhub/marketplace-api/models"
	"gorm.io/gorm"
)

// OrderedItem is one line of a placed order, as reported back for cart
// reconciliation.
type OrderedItem struct {
	ProductID string `json:"product_id"`
	// Older storefront clients send one of these instead of product_id.
	LegacyProductID string `json:"productId"`
	LegacyID        string `json:"id"`
	Quantity        int    `json:"quantity"`
}

// Ref returns the product reference, whichever field the client used.
func (it OrderedItem) Ref() string {
	if it.ProductID != "" {
		return it.ProductID
	}
	if it.LegacyProductID != "" {
		return it.LegacyProductID
	}
	return it.LegacyID
}

type ReconcileOutcome struct {
	Success      bool `json:"success"`
	RemovedCount int  `json:"removed_count"`
	UpdatedCount int  `json:"updated_count"`
}

type ReconcileRequest struct {
	Items []OrderedItem `json:"items" binding:"required"`
}

// Reconcile decrements the buyer's persisted cart by the quantities just
// ordered, inside a single all-or-nothing transaction. Matched lines whose
// quantity would drop to zero or below are removed, matched lines with
// remainder are decremented, unmatched lines are left untouched. A missing
// or empty cart is a no-op success: buy-now orders never touch the cart.
func Reconcile(db *gorm.DB, userID string, ordered []OrderedItem) (ReconcileOutcome, error) {
	if userID == "" {
		return ReconcileOutcome{}, errs.Validation("user id is required")
	}

	// Index ordered quantities by canonical product id. Duplicate refs
	// accumulate, unparseable refs cannot match anything and are skipped.
	wanted := make(map[uint]int, len(ordered))
	for _, it := range ordered {
		if it.Quantity < 1 {
			return ReconcileOutcome{}, errs.Validation("ordered quantity must be at least 1")
		}
		if id, ok := catalog.ParseRef(it.Ref()); ok {
			wanted[id] += it.Quantity
		}
	}

	var outcome ReconcileOutcome
	err := db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := models.LockForUpdate(tx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		for _, line := range cart.Items {
			qty, matched := wanted[line.ProductID]
			if !matched {
				continue
			}
			remaining := line.Quantity - qty
			if remaining <= 0 {
				// Quantities floor at removal, never go negative.
				if err := tx.Delete(&models.CartItem{}, line.ID).Error; err != nil {
					return err
				}
				outcome.RemovedCount++
				continue
			}
			if err := tx.Model(&models.CartItem{}).Where("id = ?", line.ID).Update("quantity", remaining).Error; err != nil {
				return err
			}
			outcome.UpdatedCount++
		}
		return nil
	})
	if err != nil {
		return ReconcileOutcome{}, &errs.TransactionError{Op: "cart reconciliation", Err: err}
	}

	outcome.Success = true
	return outcome, nil
}

// POST /user/cart/reconcile
func ReconcileCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := buyerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req ReconcileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		outcome, err := Reconcile(db, userID, req.Items)
		if err != nil {
			c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, outcome)
	}
}
