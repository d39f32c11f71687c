package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, identityMiddleware gin.HandlerFunc) {
	group := g.Group("/requests")
	group.Use(identityMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.GetOwn)
		group.GET("/all", h.GetAll)
		group.GET("/:requestId", h.Get)
	}
}
