package identity

import "github.com/gin-gonic/gin"

// UserID returns the caller's user id stored by the Required middleware,
// or 0 when the request carried none.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(contextKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
