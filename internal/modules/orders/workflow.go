package orders

import (
	"context"
	"sync"
)

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
)

// Workflow drives the status-change editor: Idle until an order is opened,
// Editing while a new status is being chosen, Submitting during the store
// call. A failed save returns to Editing with the error kept for display;
// a successful one closes the editor.
type Workflow struct {
	mu      sync.Mutex
	ctrl    *Controller
	phase   Phase
	orderID string
	lastErr string
}

func NewWorkflow(ctrl *Controller) *Workflow {
	return &Workflow{ctrl: ctrl, phase: PhaseIdle}
}

// Open starts editing the given order. Allowed from Idle or Editing
// (switching to another order); rejected while a save is in flight.
func (w *Workflow) Open(orderID string) error {
	if _, ok := w.ctrl.Get(orderID); !ok {
		return ErrOrderNotFound
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase == PhaseSubmitting {
		return ErrSubmitInFlight
	}
	w.phase = PhaseEditing
	w.orderID = orderID
	w.lastErr = ""
	return nil
}

// Save submits the chosen status exactly once. A second Save while one is
// in flight is rejected, not queued.
func (w *Workflow) Save(ctx context.Context, to Status, actor, note string) error {
	w.mu.Lock()
	switch w.phase {
	case PhaseSubmitting:
		w.mu.Unlock()
		return ErrSubmitInFlight
	case PhaseEditing:
	default:
		w.mu.Unlock()
		return ErrNotEditing
	}
	orderID := w.orderID
	w.phase = PhaseSubmitting
	w.mu.Unlock()

	err := w.ctrl.ChangeStatus(ctx, ChangeStatusInput{
		OrderID: orderID,
		To:      to,
		Actor:   actor,
		Note:    note,
	})

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.phase = PhaseEditing
		w.lastErr = "Не удалось обновить статус заказа."
		return err
	}
	w.phase = PhaseIdle
	w.orderID = ""
	w.lastErr = ""
	return nil
}

// Cancel closes the editor without side effects. No-op in Idle; rejected
// while submitting.
func (w *Workflow) Cancel() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase == PhaseSubmitting {
		return ErrSubmitInFlight
	}
	w.phase = PhaseIdle
	w.orderID = ""
	w.lastErr = ""
	return nil
}

// State reports the current phase, the order being edited and the last
// save error message (empty unless the previous save failed).
func (w *Workflow) State() (Phase, string, string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase, w.orderID, w.lastErr
}
