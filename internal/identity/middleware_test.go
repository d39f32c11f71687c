package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testRouter() (*gin.Engine, *int64) {
	gin.SetMode(gin.TestMode)
	var seen int64

	r := gin.New()
	r.GET("/protected", Required(), func(c *gin.Context) {
		seen = UserID(c)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestRequired(t *testing.T) {
	t.Run("valid header passes the id through", func(t *testing.T) {
		r, seen := testRouter()

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set(Header, "42")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(42), *seen)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		r, _ := testRouter()

		req := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("garbage and non-positive ids are rejected", func(t *testing.T) {
		for _, v := range []string{"abc", "0", "-7", "1.5"} {
			r, _ := testRouter()

			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set(Header, v)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, v)
		}
	})
}

func TestUserIDWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Zero(t, UserID(c))
}
