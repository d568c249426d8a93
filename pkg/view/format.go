package view

import (
	"fmt"
	"time"
)

// dateLayout is the fixed display format for order timestamps.
const dateLayout = "02.01.2006 15:04"

// FormatDate renders a timestamp in the given zone (nil means UTC).
// Malformed input (zero value or a pre-epoch placeholder) renders the
// literal "Invalid date" instead of garbage. Never panics.
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() || t.Year() < 1971 {
		return "Invalid date"
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(dateLayout)
}

// MoneyFromCents converts cents to a human-readable currency string,
// e.g. 4590000 RUB -> "45900.00 ₽".
func MoneyFromCents(cents int64, currency string) string {
	major := float64(cents) / 100.0
	switch currency {
	case "RUB":
		return fmt.Sprintf("%.2f ₽", major)
	case "EUR":
		return fmt.Sprintf("€%.2f", major)
	case "USD":
		return fmt.Sprintf("$%.2f", major)
	default:
		return fmt.Sprintf("%.2f %s", major, currency)
	}
}
