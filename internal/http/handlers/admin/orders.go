package admin

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"volnasup.ru/shop/internal/http/middleware"
	"volnasup.ru/shop/internal/http/render"
	"volnasup.ru/shop/internal/http/validation"
	"volnasup.ru/shop/internal/modules/orders"
	"volnasup.ru/shop/internal/shared/apperr"
	"volnasup.ru/shop/pkg/view"
)

// OrdersHandler exposes the back-office order list. Filter, sort and
// page state live in the shared controller, so what one request
// commits is what the next one sees.
type OrdersHandler struct {
	ctrl *orders.Controller
	wf   *orders.Workflow
	repo *orders.Repo
	loc  *time.Location

	loadOnce sync.Once
}

func NewOrdersHandler(ctrl *orders.Controller, wf *orders.Workflow, repo *orders.Repo, loc *time.Location) *OrdersHandler {
	return &OrdersHandler{ctrl: ctrl, wf: wf, repo: repo, loc: loc}
}

// List applies any filter/sort/page params present on the request to
// the controller, then returns the derived page. A sort param without
// an explicit dir toggles, matching a column-header click.
func (h *OrdersHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	h.loadOnce.Do(func() { _ = h.ctrl.Load(ctx) })
	if c.Query("refresh") == "1" {
		_ = h.ctrl.Load(ctx)
	}

	if term, ok := c.GetQuery("q"); ok {
		h.ctrl.SetSearch(term)
	}
	if status, ok := c.GetQuery("status"); ok {
		h.ctrl.SetStatusFilter(status)
	}
	if date, ok := c.GetQuery("date"); ok {
		if r := orders.DateRange(date); r.Valid() {
			h.ctrl.SetDateRange(r)
		}
	}
	if field, ok := c.GetQuery("sort"); ok {
		if dir, ok := c.GetQuery("dir"); ok {
			h.ctrl.SetSort(orders.SortField(field), orders.SortDir(dir))
		} else {
			h.ctrl.ToggleSort(orders.SortField(field))
		}
	}
	if p, ok := c.GetQuery("page"); ok {
		if n, err := strconv.Atoi(p); err == nil {
			h.ctrl.SetPage(n)
		}
	}

	render.JSON(c, http.StatusOK, h.page())
}

func (h *OrdersHandler) page() view.AdminOrdersPage {
	pv := h.ctrl.View()
	q := h.ctrl.Query()

	items := make([]view.AdminOrderListItem, 0, len(pv.Orders))
	for _, o := range pv.Orders {
		items = append(items, view.AdminOrderListItem{
			ID:          o.ID,
			Customer:    o.Customer,
			Email:       o.Email,
			Phone:       o.Phone,
			Status:      o.Status.String(),
			StatusBadge: view.StatusBadge(o.Status),
			StatusIcon:  view.StatusIcon(o.Status),
			Amount:      view.MoneyFromCents(o.AmountCents, "RUB"),
			CreatedAt:   view.FormatDate(o.CreatedAt, h.loc),
		})
	}

	return view.AdminOrdersPage{
		Items:        items,
		Search:       q.Search,
		StatusFilter: q.Status,
		DateFilter:   string(q.Date),
		SortField:    string(q.Sort.Field),
		SortDir:      string(q.Sort.Dir),
		Page:         pv.Page,
		TotalPages:   pv.TotalPages,
		Total:        pv.Total,
		Statuses:     view.StatusNames(),
		LoadErr:      h.ctrl.LoadError(),
	}
}

func (h *OrdersHandler) Detail(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	o, err := h.repo.GetWithItems(ctx, id)
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Заказ не найден."))
		return
	}
	events, err := h.repo.ListEvents(ctx, id)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	d := view.AdminOrderDetail{
		ID:            o.ID,
		Customer:      o.Customer,
		Email:         o.Email,
		Phone:         o.Phone,
		Address:       o.Address,
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status.String(),
		StatusBadge:   view.StatusBadge(o.Status),
		StatusIcon:    view.StatusIcon(o.Status),
		Amount:        view.MoneyFromCents(o.AmountCents, "RUB"),
		CreatedAt:     view.FormatDate(o.CreatedAt, h.loc),
		Items:         make([]view.AdminOrderItem, 0, len(o.Items)),
		Events:        make([]view.AdminOrderEvent, 0, len(events)),
	}
	if o.Notes != nil {
		d.Notes = *o.Notes
	}
	for _, it := range o.Items {
		d.Items = append(d.Items, view.AdminOrderItem{
			Name:     it.Name,
			Price:    view.MoneyFromCents(it.PriceCents, "RUB"),
			Quantity: it.Quantity,
			Line:     view.MoneyFromCents(it.PriceCents*int64(it.Quantity), "RUB"),
		})
	}
	for _, ev := range events {
		e := view.AdminOrderEvent{
			Actor: ev.Actor,
			From:  ev.FromStatus.String(),
			To:    ev.ToStatus.String(),
			At:    view.FormatDate(ev.CreatedAt, h.loc),
		}
		if ev.Note != nil {
			e.Note = *ev.Note
		}
		d.Events = append(d.Events, e)
	}

	render.JSON(c, http.StatusOK, d)
}

type statusInput struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note" binding:"max=2000"`
}

// UpdateStatus runs the full editor pass for one request: open the
// order, save the chosen status, report the editor state either way.
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	var in statusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Проверьте введённые данные.", validation.FromBindError(err, &in)))
		return
	}

	if err := h.wf.Open(c.Param("id")); err != nil {
		middleware.Fail(c, workflowErr(err))
		return
	}

	actor := "admin"
	if u, ok := middleware.CurrentUser(c); ok {
		actor = u.Email
	}

	if err := h.wf.Save(c.Request.Context(), orders.Status(in.Status), actor, in.Note); err != nil {
		middleware.Fail(c, workflowErr(err))
		return
	}

	render.JSON(c, http.StatusOK, gin.H{
		"editor": h.editorState(),
		"orders": h.page(),
	})
}

func (h *OrdersHandler) EditorState(c *gin.Context) {
	render.JSON(c, http.StatusOK, h.editorState())
}

func (h *OrdersHandler) CancelEdit(c *gin.Context) {
	if err := h.wf.Cancel(); err != nil {
		middleware.Fail(c, workflowErr(err))
		return
	}
	render.JSON(c, http.StatusOK, h.editorState())
}

func (h *OrdersHandler) editorState() view.AdminStatusEditor {
	phase, orderID, lastErr := h.wf.State()
	return view.AdminStatusEditor{
		Phase:    string(phase),
		OrderID:  orderID,
		Statuses: view.StatusNames(),
		Error:    lastErr,
	}
}

func workflowErr(err error) error {
	switch {
	case errors.Is(err, orders.ErrOrderNotFound):
		return apperr.NotFoundErr("Заказ не найден.")
	case errors.Is(err, orders.ErrUnknownStatus):
		return apperr.InvalidErr("Недопустимый статус заказа.", map[string]string{"status": "Выберите статус из списка."})
	case errors.Is(err, orders.ErrSubmitInFlight):
		return apperr.ConflictErr("Обновление статуса уже выполняется.")
	case errors.Is(err, orders.ErrNotEditing):
		return apperr.ConflictErr("Редактирование статуса не начато.")
	default:
		return apperr.UnavailableErr("Не удалось обновить статус заказа.", err)
	}
}
