package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"volnasup.ru/shop/internal/http/cartcookie"
	"volnasup.ru/shop/internal/http/middleware"
	"volnasup.ru/shop/internal/http/render"
	"volnasup.ru/shop/internal/http/validation"
	"volnasup.ru/shop/internal/modules/cart"
	"volnasup.ru/shop/internal/modules/checkout"
	"volnasup.ru/shop/internal/shared/apperr"
	"volnasup.ru/shop/pkg/view"
)

type CheckoutHandler struct {
	svc      *checkout.Service
	cartRepo *cart.Repo
	codec    *cartcookie.Codec
}

func NewCheckoutHandler(svc *checkout.Service, cartRepo *cart.Repo, codec *cartcookie.Codec) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, cartRepo: cartRepo, codec: codec}
}

type checkoutInput struct {
	Customer      string `json:"customer" binding:"required,min=2,max=255"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required,min=6,max=32"`
	Address       string `json:"address" binding:"required,min=10,max=512"`
	Notes         string `json:"notes" binding:"max=2000"`
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=card sbp cash"`
}

func (h *CheckoutHandler) Post(c *gin.Context) {
	var in checkoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Проверьте введённые данные.", validation.FromBindError(err, &in)))
		return
	}

	lines, cartID, err := h.collectLines(c)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if len(lines) == 0 {
		middleware.Fail(c, apperr.InvalidErr("Корзина пуста.", nil))
		return
	}

	placed, err := h.svc.PlaceOrder(c.Request.Context(), checkout.PlaceOrderInput{
		CartID:        cartID,
		Customer:      in.Customer,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		Notes:         in.Notes,
		PaymentMethod: in.PaymentMethod,
		Lines:         lines,
	})
	if err != nil {
		var oos *checkout.OutOfStockError
		if errors.As(err, &oos) {
			middleware.Fail(c, apperr.ConflictErr("Часть товаров закончилась на складе."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	// Guest carts live in the cookie; drop it once the order exists.
	if _, ok := middleware.CurrentUser(c); !ok {
		h.codec.Clear(c)
	}

	render.JSON(c, http.StatusCreated, gin.H{
		"orderId": placed.ID,
		"status":  placed.Status.String(),
		"amount":  view.MoneyFromCents(placed.AmountCents, "RUB"),
	})
}

func (h *CheckoutHandler) collectLines(c *gin.Context) ([]checkout.StockLine, string, error) {
	if u, ok := middleware.CurrentUser(c); ok {
		dbCart, err := h.cartRepo.GetOrCreateOpenCart(c.Request.Context(), u.ID)
		if err != nil {
			return nil, "", err
		}
		items, err := h.cartRepo.Items(c.Request.Context(), dbCart.ID)
		if err != nil {
			return nil, "", err
		}
		lines := make([]checkout.StockLine, 0, len(items))
		for _, it := range items {
			lines = append(lines, checkout.StockLine{VariantID: it.VariantID, Qty: it.Quantity})
		}
		return lines, dbCart.ID, nil
	}

	guest, _ := h.codec.Get(c)
	if guest == nil {
		return nil, "", nil
	}
	lines := make([]checkout.StockLine, 0, len(guest.Items))
	for _, it := range guest.Items {
		lines = append(lines, checkout.StockLine{VariantID: it.VariantID, Qty: it.Qty})
	}
	return lines, "", nil
}
