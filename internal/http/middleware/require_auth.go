package middleware

import (
	"github.com/gin-gonic/gin"

	"volnasup.ru/shop/internal/shared/apperr"
)

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			Fail(c, apperr.UnauthorizedErr("Требуется вход в систему."))
			return
		}
		c.Next()
	}
}
