package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"volnasup.ru/shop/internal/http/cartcookie"
	"volnasup.ru/shop/internal/http/middleware"
	"volnasup.ru/shop/internal/http/render"
	"volnasup.ru/shop/internal/http/validation"
	"volnasup.ru/shop/internal/modules/cart"
	"volnasup.ru/shop/internal/shared/apperr"
)

// CartHandler serves both cart backends: a DB cart for signed-in users
// and a signed cookie for guests.
type CartHandler struct {
	repo  *cart.Repo
	svc   *cart.Service
	codec *cartcookie.Codec
}

func NewCartHandler(repo *cart.Repo, svc *cart.Service, codec *cartcookie.Codec) *CartHandler {
	return &CartHandler{repo: repo, svc: svc, codec: codec}
}

func (h *CartHandler) Get(c *gin.Context) {
	if u, ok := middleware.CurrentUser(c); ok {
		page, err := h.svc.PageForUser(c.Request.Context(), u.ID)
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		render.JSON(c, http.StatusOK, page)
		return
	}

	guest, _ := h.codec.Get(c)
	page, err := h.svc.PageFromCookie(c.Request.Context(), guest)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.JSON(c, http.StatusOK, page)
}

type cartItemInput struct {
	VariantID string `json:"variantId" binding:"required"`
	Qty       int    `json:"qty" binding:"required,gt=0"`
}

func (h *CartHandler) Add(c *gin.Context) {
	var in cartItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Проверьте введённые данные.", validation.FromBindError(err, &in)))
		return
	}

	if u, ok := middleware.CurrentUser(c); ok {
		dbCart, err := h.repo.GetOrCreateOpenCart(c.Request.Context(), u.ID)
		if err == nil {
			err = h.repo.AddItem(c.Request.Context(), dbCart.ID, in.VariantID, in.Qty)
		}
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		h.Get(c)
		return
	}

	guest, _ := h.codec.Get(c)
	if guest == nil {
		guest = cartcookie.NewCart()
	}
	guest.AddItem(in.VariantID, in.Qty)
	h.codec.Set(c, guest)

	page, err := h.svc.PageFromCookie(c.Request.Context(), guest)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.JSON(c, http.StatusOK, page)
}

func (h *CartHandler) Remove(c *gin.Context) {
	variantID := c.Param("variantId")

	if u, ok := middleware.CurrentUser(c); ok {
		dbCart, err := h.repo.GetOrCreateOpenCart(c.Request.Context(), u.ID)
		if err == nil {
			err = h.repo.RemoveItem(c.Request.Context(), dbCart.ID, variantID)
		}
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		h.Get(c)
		return
	}

	guest, _ := h.codec.Get(c)
	if guest == nil {
		guest = cartcookie.NewCart()
	}
	guest.RemoveItem(variantID)
	h.codec.Set(c, guest)

	page, err := h.svc.PageFromCookie(c.Request.Context(), guest)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.JSON(c, http.StatusOK, page)
}

type cartUpdateInput struct {
	VariantID string `json:"variantId" binding:"required"`
	Qty       int    `json:"qty"` // zero removes the line
}

func (h *CartHandler) Update(c *gin.Context) {
	var in cartUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Проверьте введённые данные.", validation.FromBindError(err, &in)))
		return
	}

	if u, ok := middleware.CurrentUser(c); ok {
		dbCart, err := h.repo.GetOrCreateOpenCart(c.Request.Context(), u.ID)
		if err == nil {
			err = h.repo.UpdateItemQty(c.Request.Context(), dbCart.ID, in.VariantID, in.Qty)
		}
		if err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
		h.Get(c)
		return
	}

	guest, _ := h.codec.Get(c)
	if guest == nil {
		guest = cartcookie.NewCart()
	}
	guest.UpdateQuantity(in.VariantID, in.Qty)
	h.codec.Set(c, guest)

	page, err := h.svc.PageFromCookie(c.Request.Context(), guest)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	render.JSON(c, http.StatusOK, page)
}
