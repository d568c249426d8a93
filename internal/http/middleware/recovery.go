package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"volnasup.ru/shop/internal/shared/apperr"
)

// Recovery turns a handler panic into the JSON error envelope. The
// panic unwinds past ErrorHandler, so the response is written here.
func Recovery(l *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		rid := GetRequestID(c)
		l.LogAttrs(c.Request.Context(), slog.LevelError, "panic_recovered",
			slog.String("request_id", rid),
			slog.Any("panic", recovered),
			slog.String("stack", string(debug.Stack())),
		)

		err := apperr.Wrap(fmt.Errorf("panic: %v", recovered))
		_ = c.Error(err)
		c.AbortWithStatusJSON(apperr.HTTPStatus(err), gin.H{
			"error":      apperr.PublicMessage(err),
			"request_id": rid,
		})
	})
}
