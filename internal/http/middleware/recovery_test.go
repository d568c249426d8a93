package middleware_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"volnasup.ru/shop/internal/http/middleware"
	"volnasup.ru/shop/internal/shared/apperr"
)

// newTestRouter mirrors the production middleware order.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.ErrorHandler(log))
	return r
}

func TestRecovery_PanicRendersErrorEnvelope(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Error     string `json:"error"`
		RequestID string `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "Произошла непредвиденная ошибка.", body.Error)
	require.NotEmpty(t, body.RequestID)
}

func TestErrorHandler_RendersFailedRequest(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	r.GET("/missing", func(c *gin.Context) {
		middleware.Fail(c, apperr.NotFoundErr("Заказ не найден."))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Заказ не найден.")
	require.Contains(t, w.Body.String(), "request_id")
}
