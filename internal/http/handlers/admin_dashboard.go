package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"volnasup.ru/shop/internal/http/middleware"
	"volnasup.ru/shop/internal/http/render"
	"volnasup.ru/shop/internal/modules/orders"
	"volnasup.ru/shop/internal/shared/apperr"
)

type AdminDashboardHandler struct {
	repo *orders.Repo
}

func NewAdminDashboardHandler(repo *orders.Repo) *AdminDashboardHandler {
	return &AdminDashboardHandler{repo: repo}
}

// Get returns one tile per status, every status present even at zero.
func (h *AdminDashboardHandler) Get(c *gin.Context) {
	counts, err := h.repo.CountByStatus(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	type tile struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	tiles := make([]tile, 0, len(orders.AllStatuses()))
	var total int64
	for _, s := range orders.AllStatuses() {
		tiles = append(tiles, tile{Status: s.String(), Count: counts[s]})
		total += counts[s]
	}

	render.JSON(c, http.StatusOK, gin.H{"tiles": tiles, "total": total})
}
