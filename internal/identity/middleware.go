package identity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Header carries the id of the user making the request. The contract is a
// trusted front gateway that has already authenticated the caller.
const Header = "X-Sharer-User-Id"

const contextKey = "identityUserID"

// Required is a Gin middleware that extracts the caller's user id from the
// X-Sharer-User-Id header and stores it in the request context. Requests
// without a parseable id are rejected.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(Header)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + Header + " header",
			})
			return
		}

		id, err := strconv.ParseInt(header, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + Header + " header",
			})
			return
		}

		c.Set(contextKey, id)
		c.Next()
	}
}
