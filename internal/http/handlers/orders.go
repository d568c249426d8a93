package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"volnasup.ru/shop/internal/http/middleware"
	"volnasup.ru/shop/internal/http/render"
	"volnasup.ru/shop/internal/modules/orders"
	"volnasup.ru/shop/internal/shared/apperr"
	"volnasup.ru/shop/pkg/view"
)

// OrdersHandler is the customer-facing order lookup. The random order
// id acts as the access capability, like a tracking number.
type OrdersHandler struct {
	repo *orders.Repo
	loc  *time.Location
}

func NewOrdersHandler(repo *orders.Repo, loc *time.Location) *OrdersHandler {
	return &OrdersHandler{repo: repo, loc: loc}
}

func (h *OrdersHandler) Detail(c *gin.Context) {
	o, err := h.repo.GetWithItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Заказ не найден."))
		return
	}

	d := view.OrderDetail{
		ID:            o.ID,
		Customer:      o.Customer,
		Status:        o.Status.String(),
		StatusBadge:   view.StatusBadge(o.Status),
		PaymentMethod: o.PaymentMethod,
		Amount:        view.MoneyFromCents(o.AmountCents, "RUB"),
		CreatedAt:     view.FormatDate(o.CreatedAt, h.loc),
		Items:         make([]view.OrderItem, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		d.Items = append(d.Items, view.OrderItem{
			Name:     it.Name,
			Price:    view.MoneyFromCents(it.PriceCents, "RUB"),
			Quantity: it.Quantity,
			Line:     view.MoneyFromCents(it.PriceCents*int64(it.Quantity), "RUB"),
		})
	}
	render.JSON(c, http.StatusOK, d)
}
