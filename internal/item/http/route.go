package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, identityMiddleware gin.HandlerFunc) {
	group := g.Group("/items")

	// Search is public; everything else needs a caller identity.
	group.GET("/search", h.Search)

	authed := group.Group("")
	authed.Use(identityMiddleware)
	{
		authed.GET("", h.GetAll)
		authed.GET("/:itemId", h.Get)
		authed.POST("", h.Create)
		authed.PATCH("/:itemId", h.Update)
		authed.POST("/:itemId/comment", h.AddComment)
	}
}
