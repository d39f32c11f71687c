package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rentshare/rentshare-backend/internal/events"
	"github.com/rentshare/rentshare-backend/internal/item"
	"github.com/rentshare/rentshare-backend/internal/pkg/clock"
	"github.com/rentshare/rentshare-backend/internal/user"
)

type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// Amendment carries the fields a booker may change on an existing booking.
type Amendment struct {
	Start  *time.Time
	End    *time.Time
	ItemID *int64
}

// UpdateRequest is a decision (owner), an amendment (booker), or — invalidly
// — neither.
type UpdateRequest struct {
	Approved  *bool
	Amendment *Amendment
}

// ItemSummary is the booking context of one item: its full booking list plus
// the closest past and future booking by start.
type ItemSummary struct {
	Bookings []*Booking
	Last     *Booking
	Next     *Booking
}

// Service implements the booking lifecycle and the temporal list queries.
type Service interface {
	GetByID(ctx context.Context, bookingID, actorID int64) (*Booking, error)
	ListByState(ctx context.Context, actorID int64, role Role, state State, page Page) ([]*Booking, error)
	Create(ctx context.Context, actorID int64, req CreateRequest) (*Booking, error)
	Update(ctx context.Context, bookingID, actorID int64, req UpdateRequest) (*Booking, error)

	// SummarizeItem collects an item's bookings and derives its last/next
	// booking. With excludeDropped set, rejected and canceled bookings are
	// left out entirely (the owner's item view works that way).
	SummarizeItem(ctx context.Context, itemID int64, excludeDropped bool) (*ItemSummary, error)
}

type service struct {
	repo        Repository
	itemService item.Service
	userService user.Service
	clk         clock.Clock
	publisher   events.Publisher
	logger      *zap.Logger
}

func NewService(
	repo Repository,
	itemService item.Service,
	userService user.Service,
	clk clock.Clock,
	publisher events.Publisher,
	logger *zap.Logger,
) Service {
	return &service{
		repo:        repo,
		itemService: itemService,
		userService: userService,
		clk:         clk,
		publisher:   publisher,
		logger:      logger,
	}
}

func (s *service) GetByID(ctx context.Context, bookingID, actorID int64) (*Booking, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := requireParticipant(actorID, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) ListByState(ctx context.Context, actorID int64, role Role, state State, page Page) ([]*Booking, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}
	return s.repo.ListByActor(ctx, actorID, role, state, s.clk.Now(), page)
}

func (s *service) Create(ctx context.Context, actorID int64, req CreateRequest) (*Booking, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}
	if !req.Start.Before(req.End) {
		return nil, ErrInvalidTime
	}

	it, err := s.checkBookable(ctx, actorID, req.ItemID)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		Start:    req.Start,
		End:      req.End,
		ItemID:   it.ID,
		BookerID: actorID,
		Status:   StatusWaiting,

		ItemName:      it.Name,
		ItemOwnerID:   it.OwnerID,
		ItemAvailable: it.Available,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.publish(events.BookingCreated, b)
	return b, nil
}

func (s *service) Update(ctx context.Context, bookingID, actorID int64, req UpdateRequest) (*Booking, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	var routingKey string
	switch {
	case req.Amendment != nil:
		if err := s.amend(ctx, actorID, b, req.Amendment); err != nil {
			return nil, err
		}
		routingKey = events.BookingAmended
	case req.Approved != nil:
		if routingKey, err = s.decide(actorID, b, *req.Approved); err != nil {
			return nil, err
		}
	default:
		return nil, ErrNothingToDo
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.publish(routingKey, b)
	return b, nil
}

// decide applies the owner's approval or rejection. The only blocked
// transition is re-asserting the status the booking already has; flipping an
// earlier decision is allowed.
func (s *service) decide(actorID int64, b *Booking, approved bool) (string, error) {
	if err := requireOwner(actorID, b); err != nil {
		return "", err
	}

	if approved {
		if b.Status == StatusApproved {
			return "", ErrIllegalStatus
		}
		b.Status = StatusApproved
		return events.BookingApproved, nil
	}

	if b.Status == StatusRejected {
		return "", ErrIllegalStatus
	}
	b.Status = StatusRejected
	return events.BookingRejected, nil
}

// amend lets the booker move the booking to new times or a different item.
// A changed item goes through the same checks as at creation, and the booker
// permission is re-checked against the amended booking.
func (s *service) amend(ctx context.Context, actorID int64, b *Booking, a *Amendment) error {
	if err := requireBooker(actorID, b); err != nil {
		return err
	}

	if a.ItemID != nil && *a.ItemID != b.ItemID {
		it, err := s.checkBookable(ctx, actorID, *a.ItemID)
		if err != nil {
			return err
		}
		b.ItemID = it.ID
		b.ItemName = it.Name
		b.ItemOwnerID = it.OwnerID
		b.ItemAvailable = it.Available
		if err := requireBooker(actorID, b); err != nil {
			return err
		}
	}

	if a.Start != nil {
		b.Start = *a.Start
	}
	if a.End != nil {
		b.End = *a.End
	}
	return nil
}

// checkBookable resolves the item and runs the creation-time checks: the
// actor must not own it and it must be available.
func (s *service) checkBookable(ctx context.Context, actorID, itemID int64) (*item.Item, error) {
	it, err := s.itemService.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := requireNotOwner(actorID, it); err != nil {
		return nil, err
	}
	if err := requireAvailable(it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) SummarizeItem(ctx context.Context, itemID int64, excludeDropped bool) (*ItemSummary, error) {
	bookings, err := s.repo.ListByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if excludeDropped {
		kept := bookings[:0:0]
		for _, b := range bookings {
			if notDropped(b) {
				kept = append(kept, b)
			}
		}
		bookings = kept
	}

	last, next := Summarize(bookings, s.clk.Now())
	return &ItemSummary{Bookings: bookings, Last: last, Next: next}, nil
}

// publish emits a lifecycle event. Best effort: a broker failure is logged
// and never fails the operation.
func (s *service) publish(routingKey string, b *Booking) {
	ev := events.NewBookingEvent(b.ID, b.ItemID, b.BookerID, string(b.Status), s.clk.Now())
	if err := s.publisher.Publish(routingKey, ev); err != nil {
		s.logger.Warn("failed to publish booking event",
			zap.String("routing_key", routingKey),
			zap.Int64("booking_id", b.ID),
			zap.Error(err))
	}
}
