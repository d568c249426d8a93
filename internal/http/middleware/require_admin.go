package middleware

import (
	"github.com/gin-gonic/gin"

	"volnasup.ru/shop/internal/shared/apperr"
)

// RequireAdmin guards the back office. 401 for anonymous requests,
// 403 for signed-in customers.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			Fail(c, apperr.UnauthorizedErr("Требуется вход в систему."))
			return
		}
		if u.Role != "admin" {
			Fail(c, apperr.ForbiddenErr("Доступ только для администраторов."))
			return
		}
		c.Next()
	}
}
