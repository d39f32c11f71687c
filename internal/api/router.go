package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rentshare/rentshare-backend/internal/booking"
	bookingHttp "github.com/rentshare/rentshare-backend/internal/booking/http"
	"github.com/rentshare/rentshare-backend/internal/comment"
	"github.com/rentshare/rentshare-backend/internal/identity"
	"github.com/rentshare/rentshare-backend/internal/item"
	itemHttp "github.com/rentshare/rentshare-backend/internal/item/http"
	"github.com/rentshare/rentshare-backend/internal/request"
	requestHttp "github.com/rentshare/rentshare-backend/internal/request/http"
	"github.com/rentshare/rentshare-backend/internal/user"
	userHttp "github.com/rentshare/rentshare-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
	CommentService comment.Service
	RequestService request.Service
}

// NewRouter initializes the HTTP router engine.
// It assembles global middleware (Logger, Recovery, CORS) and registers
// the routes of each module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Sharer-User-Id"}
	r.Use(cors.New(corsConfig))

	// identityMiddleware: resolves the caller from the X-Sharer-User-Id header.
	identityMiddleware := identity.Required()

	// Initialize HTTP handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService, cfg.UserService, cfg.BookingService, cfg.CommentService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.ItemService, cfg.CommentService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, userHandler)
		itemHttp.RegisterRoutes(root, itemHandler, identityMiddleware)
		bookingHttp.RegisterRoutes(root, bookingHandler, identityMiddleware)
		requestHttp.RegisterRoutes(root, requestHandler, identityMiddleware)
	}

	return r
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
