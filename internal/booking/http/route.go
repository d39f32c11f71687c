package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, identityMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(identityMiddleware)
	{
		group.GET("", h.ListAsBooker)
		group.GET("/owner", h.ListAsOwner)
		group.GET("/:bookingId", h.Get)
		group.POST("", h.Create)
		group.PATCH("/:bookingId", h.Update)
	}
}
