package view

import "volnasup.ru/shop/internal/modules/orders"

// Presentation mapping for order statuses. Total functions: any value
// outside the fixed set gets the generic fallback, never an error.

const (
	badgeFallback = "badge-unknown"
	iconFallback  = "help-circle"
)

var statusBadges = map[orders.Status]string{
	orders.StatusAwaitingPayment: "badge-awaiting",
	orders.StatusPaid:            "badge-paid",
	orders.StatusShipping:        "badge-shipping",
	orders.StatusCompleted:       "badge-completed",
	orders.StatusCancelled:       "badge-cancelled",
}

var statusIcons = map[orders.Status]string{
	orders.StatusAwaitingPayment: "clock",
	orders.StatusPaid:            "credit-card",
	orders.StatusShipping:        "truck",
	orders.StatusCompleted:       "check-circle",
	orders.StatusCancelled:       "x-circle",
}

func StatusBadge(s orders.Status) string {
	if v, ok := statusBadges[s]; ok {
		return v
	}
	return badgeFallback
}

func StatusIcon(s orders.Status) string {
	if v, ok := statusIcons[s]; ok {
		return v
	}
	return iconFallback
}

// StatusNames lists the display labels for the status chooser, in
// workflow order.
func StatusNames() []string {
	all := orders.AllStatuses()
	out := make([]string, 0, len(all))
	for _, s := range all {
		out = append(out, s.String())
	}
	return out
}
