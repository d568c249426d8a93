package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"volnasup.ru/shop/internal/http/middleware"
	"volnasup.ru/shop/internal/http/render"
	"volnasup.ru/shop/internal/modules/products"
)

const catalogPageSize = 24

type ProductsHandler struct {
	svc *products.Service
}

func NewProductsHandler(svc *products.Service) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

func (h *ProductsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}

	cards, err := h.svc.Cards(c.Request.Context(), catalogPageSize, (page-1)*catalogPageSize)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, http.StatusOK, gin.H{"products": cards, "page": page})
}

func (h *ProductsHandler) Detail(c *gin.Context) {
	d, err := h.svc.Detail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	render.JSON(c, http.StatusOK, d)
}
