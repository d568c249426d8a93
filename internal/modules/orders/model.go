package orders

import "time"

type Order struct {
	ID            string    `gorm:"primaryKey;type:char(36)"`
	Customer      string    `gorm:"type:varchar(255);not null"`
	Email         string    `gorm:"type:varchar(255);not null"`
	Phone         string    `gorm:"type:varchar(32);not null"`
	Address       string    `gorm:"type:varchar(512);not null"`
	Notes         *string   `gorm:"type:text"`
	PaymentMethod string    `gorm:"type:varchar(64);not null"`
	Status        Status    `gorm:"type:varchar(32);not null"`
	AmountCents   int64     `gorm:"not null"`
	CreatedAt     time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt     time.Time `gorm:"type:datetime(3);not null"`

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID         string    `gorm:"primaryKey;type:char(36)"`
	OrderID    string    `gorm:"type:char(36);not null;index:ix_order_items_order_id"`
	Name       string    `gorm:"type:varchar(255);not null"`
	PriceCents int64     `gorm:"not null"`
	Quantity   int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
}

func (OrderItem) TableName() string { return "order_items" }

// OrderEvent is an append-only record of a status change.
type OrderEvent struct {
	ID         string    `gorm:"primaryKey;type:char(36)"`
	OrderID    string    `gorm:"type:char(36);not null;index:ix_order_events_order_id"`
	Actor      string    `gorm:"type:varchar(255);not null"`
	FromStatus Status    `gorm:"type:varchar(32);not null"`
	ToStatus   Status    `gorm:"type:varchar(32);not null"`
	Note       *string   `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null"`
}

func (OrderEvent) TableName() string { return "order_events" }
