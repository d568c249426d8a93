package products

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Catalog is the storefront read surface. Repo implements it directly;
// Cache wraps it when Redis is configured.
type Catalog interface {
	ListActive(ctx context.Context, limit, offset int) ([]Product, error)
	GetBySlug(ctx context.Context, slug string) (Product, error)
}

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) ListActive(ctx context.Context, limit, offset int) ([]Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 24
	}
	var items []Product
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("status = ?", StatusActive).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc, id asc") }).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("price_cents asc, id asc") }).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

func (r *Repo) GetBySlug(ctx context.Context, slug string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("slug = ? AND status = ?", slug, StatusActive).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position asc, id asc") }).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("price_cents asc, id asc") }).
		First(&p).Error
	return p, err
}

// Admin surface below: no status filter, everything visible.

func (r *Repo) AdminList(ctx context.Context) ([]Product, error) {
	var items []Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Order("updated_at DESC").
		Find(&items).Error
	return items, err
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&p, "id = ?", id).Error
	return p, err
}

func (r *Repo) CreateProduct(ctx context.Context, name, slug, desc, status string) (Product, error) {
	now := time.Now()
	p := Product{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug,
		Description: desc,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *Repo) UpdateProduct(ctx context.Context, id, name, slug, desc, status string) error {
	return r.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        name,
			"slug":        slug,
			"description": desc,
			"status":      status,
			"updated_at":  time.Now(),
		}).Error
}

func (r *Repo) DeleteProduct(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Product{}, "id = ?", id).Error
}

func (r *Repo) AddVariant(ctx context.Context, productID, sku string, optionsJSON []byte, priceCents int64, stock int) (Variant, error) {
	now := time.Now()
	v := Variant{
		ID:         uuid.NewString(),
		ProductID:  productID,
		SKU:        sku,
		Options:    optionsJSON,
		PriceCents: priceCents,
		Currency:   "RUB",
		Stock:      stock,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		return Variant{}, err
	}
	return v, nil
}

func (r *Repo) UpdateVariant(ctx context.Context, productID, variantID string, priceCents int64, stock int, optionsJSON []byte) error {
	return r.db.WithContext(ctx).Model(&Variant{}).
		Where("id = ? AND product_id = ?", variantID, productID).
		Updates(map[string]any{
			"price_cents":  priceCents,
			"stock":        stock,
			"options_json": optionsJSON,
			"updated_at":   time.Now(),
		}).Error
}

func (r *Repo) DeleteVariant(ctx context.Context, productID, variantID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", variantID, productID).
		Delete(&Variant{}).Error
}

func (r *Repo) AddImage(ctx context.Context, productID, storageKey, url string, position int) (Image, error) {
	im := Image{
		ID:         uuid.NewString(),
		ProductID:  productID,
		StorageKey: storageKey,
		URL:        url,
		Position:   position,
		CreatedAt:  time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&im).Error; err != nil {
		return Image{}, err
	}
	return im, nil
}

func (r *Repo) GetImage(ctx context.Context, productID, imageID string) (Image, error) {
	var im Image
	err := r.db.WithContext(ctx).First(&im, "id = ? AND product_id = ?", imageID, productID).Error
	return im, err
}

func (r *Repo) DeleteImage(ctx context.Context, productID, imageID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", imageID, productID).
		Delete(&Image{}).Error
}

func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return false
}
