package cart

import (
	"time"

	"volnasup.ru/shop/internal/modules/products"
)

type Cart struct {
	ID        string    `gorm:"primaryKey;type:char(36)"`
	UserID    *string   `gorm:"type:char(36);index:ix_carts_user_id"`
	Status    string    `gorm:"type:varchar(16);not null;default:open"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`

	Items []CartItem `gorm:"foreignKey:CartID"`
}

func (Cart) TableName() string { return "carts" }

type CartItem struct {
	ID        string    `gorm:"primaryKey;type:char(36)"`
	CartID    string    `gorm:"type:char(36);not null;index:ix_cart_items_cart_id"`
	VariantID string    `gorm:"type:char(36);not null"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`

	Variant products.Variant `gorm:"foreignKey:VariantID"`
}

func (CartItem) TableName() string { return "cart_items" }
