package checkout

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"volnasup.ru/shop/internal/modules/orders"
)

// Mailer sends the order confirmation. Delivery failures never fail
// the checkout.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, o orders.Order) error
}

// CatalogInvalidator drops cached catalog pages after stock changes.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context)
}

type Service struct {
	db      *gorm.DB
	mailer  Mailer
	catalog CatalogInvalidator
	log     *slog.Logger
}

func NewService(db *gorm.DB, mailer Mailer, catalog CatalogInvalidator, log *slog.Logger) *Service {
	return &Service{db: db, mailer: mailer, catalog: catalog, log: log}
}

type PlaceOrderInput struct {
	// CartID, when set, is cleared inside the order transaction.
	CartID string

	Customer      string
	Email         string
	Phone         string
	Address       string
	Notes         string
	PaymentMethod string

	Lines []StockLine
}

type checkoutLine struct {
	VariantID   string `gorm:"column:variant_id"`
	PriceCents  int64  `gorm:"column:price_cents"`
	ProductName string `gorm:"column:product_name"`
	SKU         string `gorm:"column:sku"`
}

// PlaceOrder creates the order, deducts stock and clears the cart in
// one transaction. A new order always starts awaiting payment.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (orders.Order, error) {
	var placed orders.Order

	err := withTxRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		ids := make([]string, 0, len(in.Lines))
		qtyByID := make(map[string]int, len(in.Lines))
		for _, ln := range in.Lines {
			if ln.VariantID == "" || ln.Qty < 1 {
				continue
			}
			if _, ok := qtyByID[ln.VariantID]; !ok {
				ids = append(ids, ln.VariantID)
			}
			qtyByID[ln.VariantID] += ln.Qty
		}
		if len(ids) == 0 {
			return &OutOfStockError{}
		}

		var rows []checkoutLine
		if err := tx.WithContext(ctx).
			Table("product_variants AS v").
			Select(`v.id AS variant_id,
				v.price_cents AS price_cents,
				v.sku AS sku,
				p.name AS product_name`).
			Joins("JOIN products p ON p.id = v.product_id").
			Where("v.id IN ?", ids).
			Scan(&rows).Error; err != nil {
			return err
		}

		rowByID := make(map[string]checkoutLine, len(rows))
		for _, r := range rows {
			rowByID[r.VariantID] = r
		}
		for _, id := range ids {
			if _, ok := rowByID[id]; !ok {
				return &OutOfStockError{Items: []OutOfStockItem{{VariantID: id, Requested: qtyByID[id], Available: 0}}}
			}
		}

		stockLines := make([]StockLine, 0, len(ids))
		for _, id := range ids {
			stockLines = append(stockLines, StockLine{VariantID: id, Qty: qtyByID[id]})
		}
		if err := DeductStockInTx(ctx, tx, stockLines); err != nil {
			return err
		}

		now := time.Now()
		order := orders.Order{
			ID:            uuid.NewString(),
			Customer:      strings.TrimSpace(in.Customer),
			Email:         strings.TrimSpace(in.Email),
			Phone:         strings.TrimSpace(in.Phone),
			Address:       strings.TrimSpace(in.Address),
			PaymentMethod: in.PaymentMethod,
			Status:        orders.StatusAwaitingPayment,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if notes := strings.TrimSpace(in.Notes); notes != "" {
			order.Notes = &notes
		}

		var amount int64
		items := make([]orders.OrderItem, 0, len(ids))
		for _, id := range ids {
			r := rowByID[id]
			qty := qtyByID[id]
			amount += r.PriceCents * int64(qty)
			items = append(items, orders.OrderItem{
				ID:         uuid.NewString(),
				OrderID:    order.ID,
				Name:       r.ProductName + " (" + r.SKU + ")",
				PriceCents: r.PriceCents,
				Quantity:   qty,
				CreatedAt:  now,
			})
		}
		order.AmountCents = amount

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		event := orders.OrderEvent{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			Actor:     order.Email,
			ToStatus:  orders.StatusAwaitingPayment,
			CreatedAt: now,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		if in.CartID != "" {
			if err := tx.Exec("DELETE FROM cart_items WHERE cart_id = ?", in.CartID).Error; err != nil {
				return err
			}
		}

		order.Items = items
		placed = order
		return nil
	})
	if err != nil {
		return orders.Order{}, err
	}

	if s.catalog != nil {
		s.catalog.Invalidate(ctx)
	}

	if s.mailer != nil {
		if err := s.mailer.SendOrderConfirmation(ctx, placed); err != nil {
			s.log.Warn("order confirmation mail failed",
				"order_id", placed.ID, "err", err)
		}
	}

	return placed, nil
}
