package comment

import (
	"context"
	"strings"

	"github.com/rentshare/rentshare-backend/internal/booking"
	"github.com/rentshare/rentshare-backend/internal/item"
	"github.com/rentshare/rentshare-backend/internal/pkg/clock"
	"github.com/rentshare/rentshare-backend/internal/user"
)

// Service defines business logic related to comments.
type Service interface {
	GetByID(ctx context.Context, id int64) (*Comment, error)
	ListByItemID(ctx context.Context, itemID int64) ([]*Comment, error)

	// Add creates a comment on an item. Only users with a finished approved
	// booking of the item may comment, and never its owner.
	Add(ctx context.Context, authorID, itemID int64, text string) (*Comment, error)
}

type service struct {
	repo        Repository
	userService user.Service
	itemService item.Service
	bookings    booking.Repository
	clk         clock.Clock
}

func NewService(
	repo Repository,
	userService user.Service,
	itemService item.Service,
	bookings booking.Repository,
	clk clock.Clock,
) Service {
	return &service{
		repo:        repo,
		userService: userService,
		itemService: itemService,
		bookings:    bookings,
		clk:         clk,
	}
}

func (s *service) GetByID(ctx context.Context, id int64) (*Comment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByItemID(ctx context.Context, itemID int64) ([]*Comment, error) {
	return s.repo.ListByItemID(ctx, itemID)
}

func (s *service) Add(ctx context.Context, authorID, itemID int64, text string) (*Comment, error) {
	author, err := s.userService.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	it, err := s.itemService.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}
	if it.OwnerID == author.ID {
		return nil, ErrOwnItem
	}

	now := s.clk.Now()
	finished, err := s.bookings.ListFinishedApproved(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if len(finished) == 0 {
		return nil, ErrNeverBooked
	}

	c := &Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Created:    now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
