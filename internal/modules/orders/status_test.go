package orders_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"volnasup.ru/shop/internal/modules/orders"
)

func TestAllStatuses_WorkflowOrder(t *testing.T) {
	t.Parallel()

	got := orders.AllStatuses()
	require.Equal(t, []orders.Status{
		orders.StatusAwaitingPayment,
		orders.StatusPaid,
		orders.StatusShipping,
		orders.StatusCompleted,
		orders.StatusCancelled,
	}, got, "fixed workflow order, cancelled last")

	for _, s := range got {
		require.True(t, s.Valid())
	}
}

func TestStatus_Valid(t *testing.T) {
	t.Parallel()

	require.False(t, orders.Status("").Valid())
	require.False(t, orders.Status("Оплачен ").Valid(), "no normalization, exact values only")
	require.False(t, orders.Status("paid").Valid())
}
