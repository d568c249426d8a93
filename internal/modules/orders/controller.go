package orders

import (
	"context"
	"sync"
	"time"
)

// Store is the external order store the controller reads from and writes
// status changes to.
type Store interface {
	AdminAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, in ChangeStatusInput) error
}

type ChangeStatusInput struct {
	OrderID string
	To      Status
	Actor   string
	Note    string
}

// Controller owns the authoritative in-memory order set and the admin
// listing state. It is the single writer; the derived view is recomputed
// from committed state on every read. Concurrent admins share one state;
// last write wins.
type Controller struct {
	mu    sync.RWMutex
	store Store
	loc   *time.Location
	now   func() time.Time

	orders  []Order
	query   Query
	loadErr string

	watchers []func()
}

func NewController(store Store, loc *time.Location) *Controller {
	if loc == nil {
		loc = time.UTC
	}
	return &Controller{
		store: store,
		loc:   loc,
		now:   time.Now,
		query: DefaultQuery(),
	}
}

// OnChange registers a callback fired after every committed state change.
// Callbacks run synchronously under no lock; keep them cheap.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	c.watchers = append(c.watchers, fn)
	c.mu.Unlock()
}

func (c *Controller) notify() {
	c.mu.RLock()
	ws := make([]func(), len(c.watchers))
	copy(ws, c.watchers)
	c.mu.RUnlock()
	for _, fn := range ws {
		fn()
	}
}

// Load replaces the order set from the store. On failure the previous set
// stays untouched and the error is kept as a display message.
func (c *Controller) Load(ctx context.Context) error {
	items, err := c.store.AdminAll(ctx)

	c.mu.Lock()
	if err != nil {
		c.loadErr = "Не удалось загрузить заказы."
		c.mu.Unlock()
		return err
	}
	c.orders = items
	c.loadErr = ""
	c.mu.Unlock()

	c.notify()
	return nil
}

// LoadError returns the user-facing message of the last failed Load,
// empty after a successful one.
func (c *Controller) LoadError() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadErr
}

func (c *Controller) SetSearch(term string) {
	c.mu.Lock()
	c.query.Search = term
	c.query.Page = 1
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) SetStatusFilter(status string) {
	c.mu.Lock()
	c.query.Status = status
	c.query.Page = 1
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) SetDateRange(r DateRange) {
	c.mu.Lock()
	c.query.Date = r
	c.query.Page = 1
	c.mu.Unlock()
	c.notify()
}

// ToggleSort flips the direction when field is already active, otherwise
// switches to field with ascending direction. One rule for every field.
func (c *Controller) ToggleSort(field SortField) {
	if !field.Valid() {
		return
	}
	c.mu.Lock()
	if c.query.Sort.Field == field {
		if c.query.Sort.Dir == SortAsc {
			c.query.Sort.Dir = SortDesc
		} else {
			c.query.Sort.Dir = SortAsc
		}
	} else {
		c.query.Sort = SortSpec{Field: field, Dir: SortAsc}
	}
	c.query.Page = 1
	c.mu.Unlock()
	c.notify()
}

// SetSort sets an explicit sort state, e.g. restored from URL params.
func (c *Controller) SetSort(field SortField, dir SortDir) {
	if !field.Valid() {
		return
	}
	if dir != SortAsc && dir != SortDesc {
		dir = SortAsc
	}
	c.mu.Lock()
	c.query.Sort = SortSpec{Field: field, Dir: dir}
	c.query.Page = 1
	c.mu.Unlock()
	c.notify()
}

// SetPage moves to page p; out-of-range values are a no-op.
func (c *Controller) SetPage(p int) {
	c.mu.Lock()
	view := Derive(c.orders, c.query, c.now(), c.loc)
	if p < 1 || p > view.TotalPages {
		c.mu.Unlock()
		return
	}
	c.query.Page = p
	c.mu.Unlock()
	c.notify()
}

// Query returns the current listing state.
func (c *Controller) Query() Query {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.query
}

// View derives the currently visible page.
func (c *Controller) View() PageView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Derive(c.orders, c.query, c.now(), c.loc)
}

// Get returns the in-memory copy of one order.
func (c *Controller) Get(orderID string) (Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, o := range c.orders {
		if o.ID == orderID {
			return o, true
		}
	}
	return Order{}, false
}

// ChangeStatus persists the status change through the store, then mutates
// only that order's in-memory status. On failure nothing changes.
func (c *Controller) ChangeStatus(ctx context.Context, in ChangeStatusInput) error {
	if !in.To.Valid() {
		return ErrUnknownStatus
	}

	c.mu.RLock()
	found := false
	for _, o := range c.orders {
		if o.ID == in.OrderID {
			found = true
			break
		}
	}
	c.mu.RUnlock()
	if !found {
		return ErrOrderNotFound
	}

	if err := c.store.UpdateStatus(ctx, in); err != nil {
		return err
	}

	c.mu.Lock()
	for i := range c.orders {
		if c.orders[i].ID == in.OrderID {
			c.orders[i].Status = in.To
			c.orders[i].UpdatedAt = c.now()
			break
		}
	}
	c.mu.Unlock()

	c.notify()
	return nil
}
