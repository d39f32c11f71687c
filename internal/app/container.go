package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/rentshare/rentshare-backend/internal/api"
	"github.com/rentshare/rentshare-backend/internal/booking"
	"github.com/rentshare/rentshare-backend/internal/comment"
	"github.com/rentshare/rentshare-backend/internal/events"
	"github.com/rentshare/rentshare-backend/internal/item"
	"github.com/rentshare/rentshare-backend/internal/pkg/clock"
	"github.com/rentshare/rentshare-backend/internal/request"
	"github.com/rentshare/rentshare-backend/internal/sweeper"
	"github.com/rentshare/rentshare-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	SweepCron    string
	Publisher    events.Publisher
	Logger       *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router  *gin.Engine
	Sweeper *sweeper.Sweeper
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	clk := clock.System()

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo)

	// Item Module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, userService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, itemService, userService, clk, cfg.Publisher, cfg.Logger)

	// Comment Module
	commentRepo := comment.NewPgxRepository(cfg.DBPool)
	commentService := comment.NewService(commentRepo, userService, itemService, bookingRepo, clk)

	// Item Request Module
	requestRepo := request.NewPgxRepository(cfg.DBPool)
	requestService := request.NewService(requestRepo, userService, itemService, clk)

	// Background sweeper cancelling stale waiting bookings.
	sw, err := sweeper.New(cfg.SweepCron, bookingRepo, clk, cfg.Publisher, cfg.Logger)
	if err != nil {
		return nil, err
	}

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
		CommentService: commentService,
		RequestService: requestService,
	})

	return &Container{
		Router:  router,
		Sweeper: sw,
	}, nil
}
