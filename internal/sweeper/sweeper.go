package sweeper

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rentshare/rentshare-backend/internal/booking"
	"github.com/rentshare/rentshare-backend/internal/events"
	"github.com/rentshare/rentshare-backend/internal/pkg/clock"
)

// Sweeper cancels WAITING bookings whose end has already passed. The owner
// never decided on them, so they can no longer be acted on; this is the only
// path that produces the CANCELED status.
type Sweeper struct {
	cron      *cron.Cron
	bookings  booking.Repository
	clk       clock.Clock
	publisher events.Publisher
	logger    *zap.Logger
}

// New builds a sweeper running on the given cron schedule (standard five
// field syntax, UTC).
func New(schedule string, bookings booking.Repository, clk clock.Clock, publisher events.Publisher, logger *zap.Logger) (*Sweeper, error) {
	c := cron.New(cron.WithLocation(time.UTC))

	s := &Sweeper{
		cron:      c,
		bookings:  bookings,
		clk:       clk,
		publisher: publisher,
		logger:    logger,
	}

	if _, err := c.AddFunc(schedule, s.Run); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for an in-flight run to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Run performs one sweep. Exported so it can be triggered outside the
// schedule.
func (s *Sweeper) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := s.clk.Now()
	canceled, err := s.bookings.CancelOverdueWaiting(ctx, now)
	if err != nil {
		s.logger.Error("overdue booking sweep failed", zap.Error(err))
		return
	}
	if len(canceled) == 0 {
		return
	}

	s.logger.Info("canceled overdue waiting bookings", zap.Int("count", len(canceled)))

	for _, b := range canceled {
		ev := events.NewBookingEvent(b.ID, b.ItemID, b.BookerID, string(b.Status), now)
		if err := s.publisher.Publish(events.BookingCanceled, ev); err != nil {
			s.logger.Warn("failed to publish booking event",
				zap.String("routing_key", events.BookingCanceled),
				zap.Int64("booking_id", b.ID),
				zap.Error(err))
		}
	}
}
