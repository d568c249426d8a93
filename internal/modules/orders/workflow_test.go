package orders_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"volnasup.ru/shop/internal/modules/orders"
)

// blockingStore lets a test hold UpdateStatus open to observe the
// submitting phase.
type blockingStore struct {
	fakeStore
	mu      sync.Mutex
	entered chan struct{}
	release chan struct{}
}

func (b *blockingStore) UpdateStatus(ctx context.Context, in orders.ChangeStatusInput) error {
	if b.entered != nil {
		close(b.entered)
	}
	if b.release != nil {
		<-b.release
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fakeStore.UpdateStatus(ctx, in)
}

func TestWorkflow_HappyPath(t *testing.T) {
	t.Parallel()

	store := &fakeStore{orders: testOrders(time.Now())}
	ctrl := newLoadedController(t, store)
	wf := orders.NewWorkflow(ctrl)

	phase, _, _ := wf.State()
	require.Equal(t, orders.PhaseIdle, phase)

	require.NoError(t, wf.Open("ORD-001"))
	phase, id, _ := wf.State()
	require.Equal(t, orders.PhaseEditing, phase)
	require.Equal(t, "ORD-001", id)

	require.NoError(t, wf.Save(context.Background(), orders.StatusCompleted, "admin@volnasup.ru", ""))

	phase, id, msg := wf.State()
	require.Equal(t, orders.PhaseIdle, phase, "editor closes on success")
	require.Empty(t, id)
	require.Empty(t, msg)

	o, _ := ctrl.Get("ORD-001")
	require.Equal(t, orders.StatusCompleted, o.Status)
}

func TestWorkflow_OpenRequiresExistingOrder(t *testing.T) {
	t.Parallel()

	store := &fakeStore{orders: testOrders(time.Now())}
	wf := orders.NewWorkflow(newLoadedController(t, store))

	require.ErrorIs(t, wf.Open("missing"), orders.ErrOrderNotFound)
	phase, _, _ := wf.State()
	require.Equal(t, orders.PhaseIdle, phase)
}

func TestWorkflow_SaveWithoutOpen(t *testing.T) {
	t.Parallel()

	store := &fakeStore{orders: testOrders(time.Now())}
	wf := orders.NewWorkflow(newLoadedController(t, store))

	err := wf.Save(context.Background(), orders.StatusPaid, "admin@volnasup.ru", "")
	require.ErrorIs(t, err, orders.ErrNotEditing)
}

func TestWorkflow_FailedSaveStaysEditingWithError(t *testing.T) {
	t.Parallel()

	store := &fakeStore{
		orders:    testOrders(time.Now()),
		updateErr: errors.New("store down"),
	}
	ctrl := newLoadedController(t, store)
	wf := orders.NewWorkflow(ctrl)

	require.NoError(t, wf.Open("ORD-002"))
	err := wf.Save(context.Background(), orders.StatusPaid, "admin@volnasup.ru", "")
	require.Error(t, err)

	phase, id, msg := wf.State()
	require.Equal(t, orders.PhaseEditing, phase, "editor stays open on failure")
	require.Equal(t, "ORD-002", id)
	require.NotEmpty(t, msg, "failure message shown for retry")

	o, _ := ctrl.Get("ORD-002")
	require.Equal(t, orders.StatusAwaitingPayment, o.Status, "status unchanged after failed save")

	// Retry after the store recovers.
	store.updateErr = nil
	require.NoError(t, wf.Save(context.Background(), orders.StatusPaid, "admin@volnasup.ru", ""))
	o, _ = ctrl.Get("ORD-002")
	require.Equal(t, orders.StatusPaid, o.Status)
}

func TestWorkflow_DoubleSubmitRejected(t *testing.T) {
	t.Parallel()

	store := &blockingStore{
		fakeStore: fakeStore{orders: testOrders(time.Now())},
		entered:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	ctrl := orders.NewController(store, msk)
	// Load via the inner fake to avoid the blocking path.
	require.NoError(t, ctrl.Load(context.Background()))
	wf := orders.NewWorkflow(ctrl)

	require.NoError(t, wf.Open("ORD-001"))

	done := make(chan error, 1)
	go func() {
		done <- wf.Save(context.Background(), orders.StatusPaid, "admin@volnasup.ru", "")
	}()

	<-store.entered
	phase, _, _ := wf.State()
	require.Equal(t, orders.PhaseSubmitting, phase)

	require.ErrorIs(t, wf.Save(context.Background(), orders.StatusPaid, "admin@volnasup.ru", ""), orders.ErrSubmitInFlight)
	require.ErrorIs(t, wf.Cancel(), orders.ErrSubmitInFlight)
	require.ErrorIs(t, wf.Open("ORD-002"), orders.ErrSubmitInFlight)

	close(store.release)
	require.NoError(t, <-done)

	phase, _, _ = wf.State()
	require.Equal(t, orders.PhaseIdle, phase)
}

func TestWorkflow_CancelClearsStateWithoutSideEffects(t *testing.T) {
	t.Parallel()

	store := &fakeStore{orders: testOrders(time.Now())}
	ctrl := newLoadedController(t, store)
	wf := orders.NewWorkflow(ctrl)

	require.NoError(t, wf.Open("ORD-003"))
	require.NoError(t, wf.Cancel())

	phase, id, msg := wf.State()
	require.Equal(t, orders.PhaseIdle, phase)
	require.Empty(t, id)
	require.Empty(t, msg)
	require.Empty(t, store.updates)

	// Cancel from Idle is a harmless no-op.
	require.NoError(t, wf.Cancel())
}
