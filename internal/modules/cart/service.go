package cart

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"volnasup.ru/shop/internal/http/cartcookie"
	"volnasup.ru/shop/pkg/view"
)

// Service turns a cart (DB-backed for users, cookie-backed for guests)
// into the cart page view. Prices are RUB everywhere.
type Service struct {
	db   *gorm.DB
	repo *Repo
}

func NewService(db *gorm.DB, repo *Repo) *Service {
	return &Service{db: db, repo: repo}
}

type cartRow struct {
	VariantID   string `gorm:"column:variant_id"`
	Qty         int    `gorm:"column:qty"`
	PriceCents  int64  `gorm:"column:price_cents"`
	ProductName string `gorm:"column:product_name"`
	ProductSlug string `gorm:"column:product_slug"`
	SKU         string `gorm:"column:sku"`
}

func (s *Service) PageForUser(ctx context.Context, userID string) (view.CartPage, error) {
	c, err := s.repo.GetOrCreateOpenCart(ctx, userID)
	if err != nil {
		return view.CartPage{}, err
	}

	var rows []cartRow
	err = s.db.WithContext(ctx).
		Table("cart_items AS ci").
		Select(`ci.variant_id AS variant_id,
			ci.quantity AS qty,
			v.price_cents AS price_cents,
			v.sku AS sku,
			p.name AS product_name,
			p.slug AS product_slug`).
		Joins("JOIN product_variants v ON v.id = ci.variant_id").
		Joins("JOIN products p ON p.id = v.product_id").
		Where("ci.cart_id = ?", c.ID).
		Order("ci.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return view.CartPage{}, err
	}

	return buildPage(rows), nil
}

func (s *Service) PageFromCookie(ctx context.Context, guest *cartcookie.Cart) (view.CartPage, error) {
	if guest == nil || len(guest.Items) == 0 {
		return view.CartPage{Items: []view.CartItem{}}, nil
	}

	qtyByID := make(map[string]int, len(guest.Items))
	ids := make([]string, 0, len(guest.Items))
	for _, it := range guest.Items {
		if it.VariantID == "" || it.Qty <= 0 {
			continue
		}
		if _, ok := qtyByID[it.VariantID]; !ok {
			ids = append(ids, it.VariantID)
		}
		qtyByID[it.VariantID] += it.Qty
	}
	if len(ids) == 0 {
		return view.CartPage{Items: []view.CartItem{}}, nil
	}
	sort.Strings(ids)

	var rows []cartRow
	err := s.db.WithContext(ctx).
		Table("product_variants AS v").
		Select(`v.id AS variant_id,
			0 AS qty,
			v.price_cents AS price_cents,
			v.sku AS sku,
			p.name AS product_name,
			p.slug AS product_slug`).
		Joins("JOIN products p ON p.id = v.product_id").
		Where("v.id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return view.CartPage{}, err
	}

	infoByID := make(map[string]cartRow, len(rows))
	for _, r := range rows {
		infoByID[r.VariantID] = r
	}

	// Keep cookie order; skip variants removed from the catalog.
	final := make([]cartRow, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, it := range guest.Items {
		if it.VariantID == "" || it.Qty <= 0 || seen[it.VariantID] {
			continue
		}
		r, ok := infoByID[it.VariantID]
		if !ok {
			continue
		}
		r.Qty = qtyByID[it.VariantID]
		seen[it.VariantID] = true
		final = append(final, r)
	}

	return buildPage(final), nil
}

func buildPage(rows []cartRow) view.CartPage {
	page := view.CartPage{Items: make([]view.CartItem, 0, len(rows))}

	var subtotal int64
	for _, r := range rows {
		if r.Qty <= 0 {
			continue
		}
		line := r.PriceCents * int64(r.Qty)
		subtotal += line
		page.Count += r.Qty
		page.Items = append(page.Items, view.CartItem{
			VariantID:   r.VariantID,
			ProductName: r.ProductName,
			ProductSlug: r.ProductSlug,
			SKU:         r.SKU,
			Qty:         r.Qty,
			UnitPrice:   view.MoneyFromCents(r.PriceCents, "RUB"),
			LineTotal:   view.MoneyFromCents(line, "RUB"),
		})
	}

	page.Subtotal = view.MoneyFromCents(subtotal, "RUB")
	// Delivery is settled with the courier, so the order total equals
	// the subtotal.
	page.Total = page.Subtotal
	return page
}
