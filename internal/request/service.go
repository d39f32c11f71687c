package request

import (
	"context"
	"strings"

	"github.com/rentshare/rentshare-backend/internal/item"
	"github.com/rentshare/rentshare-backend/internal/pkg/clock"
	"github.com/rentshare/rentshare-backend/internal/user"
)

// RequestWithItems pairs an item request with the items listed in answer
// to it.
type RequestWithItems struct {
	Request *ItemRequest
	Items   []*item.Item
}

// Service defines business logic related to item requests.
type Service interface {
	Add(ctx context.Context, requesterID int64, description string) (*ItemRequest, error)
	GetByRequester(ctx context.Context, requesterID int64) ([]*RequestWithItems, error)
	GetAll(ctx context.Context, actorID int64, limit, offset int) ([]*RequestWithItems, error)
	GetByID(ctx context.Context, id, actorID int64) (*RequestWithItems, error)
}

type service struct {
	repo        Repository
	userService user.Service
	itemService item.Service
	clk         clock.Clock
}

func NewService(repo Repository, userService user.Service, itemService item.Service, clk clock.Clock) Service {
	return &service{
		repo:        repo,
		userService: userService,
		itemService: itemService,
		clk:         clk,
	}
}

func (s *service) Add(ctx context.Context, requesterID int64, description string) (*ItemRequest, error) {
	if _, err := s.userService.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}

	req := &ItemRequest{
		Description: description,
		RequesterID: requesterID,
		Created:     s.clk.Now(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) GetByRequester(ctx context.Context, requesterID int64) ([]*RequestWithItems, error) {
	if _, err := s.userService.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.GetByRequesterID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *service) GetAll(ctx context.Context, actorID int64, limit, offset int) ([]*RequestWithItems, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	requests, err := s.repo.GetAllExcept(ctx, actorID, limit, offset)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

func (s *service) GetByID(ctx context.Context, id, actorID int64) (*RequestWithItems, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	withItems, err := s.attachItems(ctx, []*ItemRequest{req})
	if err != nil {
		return nil, err
	}
	return withItems[0], nil
}

func (s *service) attachItems(ctx context.Context, requests []*ItemRequest) ([]*RequestWithItems, error) {
	ids := make([]int64, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
	}

	items, err := s.itemService.GetByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRequest := make(map[int64][]*item.Item, len(requests))
	for _, it := range items {
		if it.RequestID != nil {
			byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
		}
	}

	result := make([]*RequestWithItems, len(requests))
	for i, req := range requests {
		result[i] = &RequestWithItems{Request: req, Items: byRequest[req.ID]}
	}
	return result, nil
}
