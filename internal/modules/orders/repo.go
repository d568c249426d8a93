package orders

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// AdminAll returns every order with items preloaded, newest first. The
// admin listing controller keeps the result in memory and derives views
// from it.
func (r *Repo) AdminAll(ctx context.Context) ([]Order, error) {
	var items []Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *Repo) GetWithItems(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&o, "id = ?", id).Error
	return o, err
}

func (r *Repo) ListEvents(ctx context.Context, orderID string) ([]OrderEvent, error) {
	var ev []OrderEvent
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&ev, "order_id = ?", orderID).Error
	return ev, err
}

// UpdateStatus persists a status change and appends the audit event in one
// transaction. The order row is locked for the duration so concurrent
// changes serialize.
func (r *Repo) UpdateStatus(ctx context.Context, in ChangeStatusInput) error {
	if !in.To.Valid() {
		return ErrUnknownStatus
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o Order
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&o, "id = ?", in.OrderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrOrderNotFound
			}
			return err
		}

		from := o.Status
		now := time.Now().UTC()

		if err := tx.Model(&Order{}).
			Where("id = ?", o.ID).
			Updates(map[string]any{
				"status":     in.To,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}

		var notePtr *string
		if n := strings.TrimSpace(in.Note); n != "" {
			notePtr = &n
		}

		ev := OrderEvent{
			ID:         uuid.NewString(),
			OrderID:    o.ID,
			Actor:      in.Actor,
			FromStatus: from,
			ToStatus:   in.To,
			Note:       notePtr,
			CreatedAt:  now,
		}
		return tx.Create(&ev).Error
	})
}

// CountByStatus feeds the admin dashboard tiles.
func (r *Repo) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	type row struct {
		Status Status
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&Order{}).
		Select("status AS status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[Status]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}
