package item

import (
	"context"
	"strings"

	"github.com/rentshare/rentshare-backend/internal/user"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// Service defines business logic related to items.
type Service interface {
	GetByID(ctx context.Context, id int64) (*Item, error)
	GetByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*Item, error)
	GetByRequestIDs(ctx context.Context, requestIDs []int64) ([]*Item, error)
	Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error)
	Update(ctx context.Context, id, actorID int64, req UpdateRequest) (*Item, error)
	Search(ctx context.Context, text string, limit, offset int) ([]*Item, error)
}

type service struct {
	repo        Repository
	userService user.Service
}

func NewService(repo Repository, userService user.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
	}
}

func (s *service) GetByID(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*Item, error) {
	if _, err := s.userService.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.repo.GetByOwnerID(ctx, ownerID, limit, offset)
}

func (s *service) GetByRequestIDs(ctx context.Context, requestIDs []int64) ([]*Item, error) {
	return s.repo.GetByRequestIDs(ctx, requestIDs)
}

func (s *service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error) {
	if _, err := s.userService.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	it := &Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, id, actorID int64, req UpdateRequest) (*Item, error) {
	if _, err := s.userService.GetByID(ctx, actorID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != actorID {
		return nil, ErrNoPermission
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		it.Name = *req.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Search(ctx context.Context, text string, limit, offset int) ([]*Item, error) {
	// Blank search text means "nothing matches", not "everything matches".
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text, limit, offset)
}
