package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"volnasup.ru/shop/internal/http/cartcookie"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// GetOrCreateOpenCart returns the user's open cart, creating one on
// first use. A user has at most one open cart.
func (r *Repo) GetOrCreateOpenCart(ctx context.Context, userID string) (Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, "open").
		Order("updated_at DESC").
		First(&c).Error
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Cart{}, err
	}

	now := time.Now()
	c = Cart{
		ID:        uuid.NewString(),
		UserID:    &userID,
		Status:    "open",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return Cart{}, err
	}
	return c, nil
}

// AddItem merges into an existing line for the same variant.
func (r *Repo) AddItem(ctx context.Context, cartID, variantID string, qty int) error {
	if qty < 1 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing CartItem
		err := tx.Where("cart_id = ? AND variant_id = ?", cartID, variantID).First(&existing).Error
		switch {
		case err == nil:
			return tx.Model(&CartItem{}).
				Where("id = ?", existing.ID).
				Update("quantity", existing.Quantity+qty).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			item := CartItem{
				ID:        uuid.NewString(),
				CartID:    cartID,
				VariantID: variantID,
				Quantity:  qty,
				CreatedAt: time.Now(),
			}
			return tx.Create(&item).Error
		default:
			return err
		}
	})
}

func (r *Repo) Items(ctx context.Context, cartID string) ([]CartItem, error) {
	var items []CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *Repo) UpdateItemQty(ctx context.Context, cartID, variantID string, qty int) error {
	if qty <= 0 {
		return r.RemoveItem(ctx, cartID, variantID)
	}
	return r.db.WithContext(ctx).Model(&CartItem{}).
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		Update("quantity", qty).Error
}

func (r *Repo) RemoveItem(ctx context.Context, cartID, variantID string) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		Delete(&CartItem{}).Error
}

func (r *Repo) ClearCart(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&CartItem{}).Error
}

// MergeGuestItems folds a guest cookie cart into the user's DB cart
// after login. Quantities for the same variant add up.
func (r *Repo) MergeGuestItems(ctx context.Context, cartID string, guest *cartcookie.Cart) error {
	if guest == nil {
		return nil
	}
	for _, it := range guest.Items {
		if err := r.AddItem(ctx, cartID, it.VariantID, it.Qty); err != nil {
			return err
		}
	}
	return nil
}
