package render

import "github.com/gin-gonic/gin"

// JSON writes the success envelope. Errors never go through here; they are
// collected with c.Error and rendered by the error-handler middleware.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"data": data})
}

// NoContent acknowledges an action that has nothing to return.
func NoContent(c *gin.Context) {
	c.Status(204)
}
