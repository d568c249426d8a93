package orders

// Status is the fulfillment state of an order. The values are the literal
// labels the shop uses everywhere: database, API and admin UI.
type Status string

const (
	StatusAwaitingPayment Status = "Ожидает оплаты"
	StatusPaid            Status = "Оплачен"
	StatusShipping        Status = "Доставляется"
	StatusCompleted       Status = "Завершен"
	StatusCancelled       Status = "Отменен"
)

// AllStatuses returns every status in workflow order, cancelled last.
// The slice is a fresh copy; callers may reorder it.
func AllStatuses() []Status {
	return []Status{
		StatusAwaitingPayment,
		StatusPaid,
		StatusShipping,
		StatusCompleted,
		StatusCancelled,
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusAwaitingPayment, StatusPaid, StatusShipping, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }
