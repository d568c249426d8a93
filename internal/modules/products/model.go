package products

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusActive   = "active"
	StatusDraft    = "draft"
	StatusArchived = "archived"
)

type Product struct {
	ID          string    `gorm:"primaryKey;type:char(36)"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Slug        string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_products_slug"`
	Description string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(16);not null;default:draft;index:ix_products_status"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt   time.Time `gorm:"type:datetime(3);not null"`

	Variants []Variant `gorm:"foreignKey:ProductID"`
	Images   []Image   `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string { return "products" }

// Variant is a sellable configuration of a board: length, volume and
// the like live in Options as free-form JSON.
type Variant struct {
	ID         string         `gorm:"primaryKey;type:char(36)"`
	ProductID  string         `gorm:"type:char(36);not null;index:ix_variants_product_id"`
	SKU        string         `gorm:"type:varchar(64);not null;uniqueIndex:ux_variants_sku"`
	Options    datatypes.JSON `gorm:"column:options_json"`
	PriceCents int64          `gorm:"not null"`
	Currency   string         `gorm:"type:char(3);not null;default:RUB"`
	Stock      int            `gorm:"not null;default:0"`
	CreatedAt  time.Time      `gorm:"type:datetime(3);not null"`
	UpdatedAt  time.Time      `gorm:"type:datetime(3);not null"`
}

func (Variant) TableName() string { return "product_variants" }

type Image struct {
	ID         string    `gorm:"primaryKey;type:char(36)"`
	ProductID  string    `gorm:"type:char(36);not null;index:ix_images_product_id"`
	StorageKey string    `gorm:"type:varchar(512);not null"`
	URL        string    `gorm:"type:varchar(512);not null"`
	Position   int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
}

func (Image) TableName() string { return "product_images" }
