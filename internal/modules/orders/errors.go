package orders

import "errors"

var (
	ErrUnknownStatus  = errors.New("unknown order status")
	ErrOrderNotFound  = errors.New("order not found")
	ErrNotEditing     = errors.New("no status edit in progress")
	ErrSubmitInFlight = errors.New("status update already submitting")
)
