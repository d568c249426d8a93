package orders_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"volnasup.ru/shop/internal/modules/orders"
)

type fakeStore struct {
	orders    []orders.Order
	loadErr   error
	updateErr error
	updates   []orders.ChangeStatusInput
}

func (f *fakeStore) AdminAll(ctx context.Context) ([]orders.Order, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]orders.Order, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, in orders.ChangeStatusInput) error {
	f.updates = append(f.updates, in)
	return f.updateErr
}

func newLoadedController(t *testing.T, store *fakeStore) *orders.Controller {
	t.Helper()
	ctrl := orders.NewController(store, msk)
	require.NoError(t, ctrl.Load(context.Background()))
	return ctrl
}

func TestController_LoadFailureKeepsPreviousList(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := &fakeStore{orders: testOrders(now)}
	ctrl := newLoadedController(t, store)
	require.Equal(t, 5, ctrl.View().Total)
	require.Empty(t, ctrl.LoadError())

	store.loadErr = errors.New("store unreachable")
	err := ctrl.Load(context.Background())
	require.Error(t, err)

	require.Equal(t, 5, ctrl.View().Total, "previous list must survive a failed load")
	require.NotEmpty(t, ctrl.LoadError())

	store.loadErr = nil
	require.NoError(t, ctrl.Load(context.Background()))
	require.Empty(t, ctrl.LoadError())
}

func TestController_FilterChangeResetsPage(t *testing.T) {
	t.Parallel()

	now := time.Now()
	src := make([]orders.Order, 0, 25)
	for i := 0; i < 25; i++ {
		src = append(src, mkOrder(
			string(rune('A'+i%26))+"-order", "Клиент", "c@example.com", "1",
			orders.StatusPaid, int64(i), now.Add(-time.Duration(i)*time.Hour),
		))
	}
	store := &fakeStore{orders: src}
	ctrl := newLoadedController(t, store)

	ctrl.SetPage(3)
	require.Equal(t, 3, ctrl.Query().Page)

	ctrl.SetSearch("клиент")
	require.Equal(t, 1, ctrl.Query().Page, "search change must reset page")

	ctrl.SetPage(2)
	ctrl.SetStatusFilter(string(orders.StatusPaid))
	require.Equal(t, 1, ctrl.Query().Page, "status change must reset page")

	ctrl.SetPage(2)
	ctrl.SetDateRange(orders.DateLast30)
	require.Equal(t, 1, ctrl.Query().Page, "date change must reset page")

	ctrl.SetPage(2)
	ctrl.ToggleSort(orders.SortByAmount)
	require.Equal(t, 1, ctrl.Query().Page, "sort change must reset page")
}

func TestController_SetPageOutOfRangeIsNoop(t *testing.T) {
	t.Parallel()

	store := &fakeStore{orders: testOrders(time.Now())} // 5 orders, 1 page
	ctrl := newLoadedController(t, store)

	ctrl.SetPage(0)
	require.Equal(t, 1, ctrl.Query().Page)
	ctrl.SetPage(2)
	require.Equal(t, 1, ctrl.Query().Page)
	ctrl.SetPage(-3)
	require.Equal(t, 1, ctrl.Query().Page)
}

func TestController_ToggleSortRule(t *testing.T) {
	t.Parallel()

	store := &fakeStore{orders: testOrders(time.Now())}
	ctrl := newLoadedController(t, store)

	// Default: date desc. Toggling the active field flips direction.
	ctrl.ToggleSort(orders.SortByDate)
	require.Equal(t, orders.SortSpec{Field: orders.SortByDate, Dir: orders.SortAsc}, ctrl.Query().Sort)

	// Switching to a new field always starts ascending.
	ctrl.ToggleSort(orders.SortByAmount)
	require.Equal(t, orders.SortSpec{Field: orders.SortByAmount, Dir: orders.SortAsc}, ctrl.Query().Sort)

	ctrl.ToggleSort(orders.SortByAmount)
	require.Equal(t, orders.SortSpec{Field: orders.SortByAmount, Dir: orders.SortDesc}, ctrl.Query().Sort)

	ctrl.ToggleSort(orders.SortByID)
	require.Equal(t, orders.SortSpec{Field: orders.SortByID, Dir: orders.SortAsc}, ctrl.Query().Sort)

	// Unknown field is ignored.
	ctrl.ToggleSort(orders.SortField("price"))
	require.Equal(t, orders.SortSpec{Field: orders.SortByID, Dir: orders.SortAsc}, ctrl.Query().Sort)
}

func TestController_ChangeStatusUpdatesOnlyTargetOrder(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := &fakeStore{orders: []orders.Order{
		mkOrder("A1", "Клиент Один", "one@example.com", "1", orders.StatusPaid, 100_00, now.AddDate(0, 0, -2)),
		mkOrder("A2", "Клиент Два", "two@example.com", "2", orders.StatusCancelled, 200_00, now.AddDate(0, 0, -1)),
	}}
	ctrl := newLoadedController(t, store)

	err := ctrl.ChangeStatus(context.Background(), orders.ChangeStatusInput{
		OrderID: "A1", To: orders.StatusCompleted, Actor: "admin@volnasup.ru",
	})
	require.NoError(t, err)
	require.Len(t, store.updates, 1)
	require.Equal(t, "A1", store.updates[0].OrderID)

	a1, ok := ctrl.Get("A1")
	require.True(t, ok)
	require.Equal(t, orders.StatusCompleted, a1.Status)

	a2, ok := ctrl.Get("A2")
	require.True(t, ok)
	require.Equal(t, orders.StatusCancelled, a2.Status, "untouched order must keep its status")
}

func TestController_ChangeStatusFailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := &fakeStore{
		orders:    []orders.Order{mkOrder("A1", "Клиент", "c@example.com", "1", orders.StatusPaid, 100_00, now)},
		updateErr: errors.New("store rejected update"),
	}
	ctrl := newLoadedController(t, store)

	err := ctrl.ChangeStatus(context.Background(), orders.ChangeStatusInput{
		OrderID: "A1", To: orders.StatusCompleted, Actor: "admin@volnasup.ru",
	})
	require.Error(t, err)

	a1, _ := ctrl.Get("A1")
	require.Equal(t, orders.StatusPaid, a1.Status)
}

func TestController_ChangeStatusValidation(t *testing.T) {
	t.Parallel()

	store := &fakeStore{orders: testOrders(time.Now())}
	ctrl := newLoadedController(t, store)

	err := ctrl.ChangeStatus(context.Background(), orders.ChangeStatusInput{OrderID: "ORD-001", To: "В пути"})
	require.ErrorIs(t, err, orders.ErrUnknownStatus)

	err = ctrl.ChangeStatus(context.Background(), orders.ChangeStatusInput{OrderID: "missing", To: orders.StatusPaid})
	require.ErrorIs(t, err, orders.ErrOrderNotFound)

	require.Empty(t, store.updates, "no store call on validation failure")
}

func TestController_OnChangeFires(t *testing.T) {
	t.Parallel()

	store := &fakeStore{orders: testOrders(time.Now())}
	ctrl := orders.NewController(store, msk)

	var fired int
	ctrl.OnChange(func() { fired++ })

	require.NoError(t, ctrl.Load(context.Background()))
	ctrl.SetSearch("иван")
	ctrl.SetStatusFilter(orders.StatusAll)
	require.Equal(t, 3, fired)
}
