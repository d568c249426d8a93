package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"volnasup.ru/shop/internal/modules/orders"
	"volnasup.ru/shop/pkg/view"
)

func TestFormatDate(t *testing.T) {
	t.Parallel()

	msk := time.FixedZone("MSK", 3*60*60)
	ts := time.Date(2024, 1, 2, 12, 30, 0, 0, time.UTC)

	require.Equal(t, "02.01.2024 15:30", view.FormatDate(ts, msk))
	require.Equal(t, "02.01.2024 12:30", view.FormatDate(ts, nil), "nil zone falls back to UTC")
}

func TestFormatDate_MalformedInputDegradesGracefully(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Invalid date", view.FormatDate(time.Time{}, nil))
	require.Equal(t, "Invalid date", view.FormatDate(time.Unix(0, 0), nil))
}

func TestStatusMappings_TotalWithFallback(t *testing.T) {
	t.Parallel()

	badges := map[string]struct{}{}
	icons := map[string]struct{}{}
	for _, s := range orders.AllStatuses() {
		badges[view.StatusBadge(s)] = struct{}{}
		icons[view.StatusIcon(s)] = struct{}{}
	}
	require.Len(t, badges, 5, "every known status gets a distinct badge")
	require.Len(t, icons, 5, "every known status gets a distinct icon")

	require.Equal(t, "badge-unknown", view.StatusBadge(orders.Status("Потерян")))
	require.Equal(t, "help-circle", view.StatusIcon(orders.Status("")))
}

func TestStatusNames_WorkflowOrder(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{
		"Ожидает оплаты", "Оплачен", "Доставляется", "Завершен", "Отменен",
	}, view.StatusNames())
}

func TestMoneyFromCents(t *testing.T) {
	t.Parallel()

	require.Equal(t, "45900.00 ₽", view.MoneyFromCents(4590000, "RUB"))
	require.Equal(t, "0.50 ₽", view.MoneyFromCents(50, "RUB"))
	require.Equal(t, "€10.00", view.MoneyFromCents(1000, "EUR"))
}
