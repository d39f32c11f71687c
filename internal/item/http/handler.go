package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rentshare/rentshare-backend/internal/booking"
	"github.com/rentshare/rentshare-backend/internal/comment"
	"github.com/rentshare/rentshare-backend/internal/identity"
	"github.com/rentshare/rentshare-backend/internal/item"
	"github.com/rentshare/rentshare-backend/internal/pkg/request"
	"github.com/rentshare/rentshare-backend/internal/pkg/response"
	"github.com/rentshare/rentshare-backend/internal/user"
)

type Handler struct {
	service        item.Service
	userService    user.Service
	bookingService booking.Service
	commentService comment.Service
}

func NewHandler(
	service item.Service,
	userService user.Service,
	bookingService booking.Service,
	commentService comment.Service,
) *Handler {
	return &Handler{
		service:        service,
		userService:    userService,
		bookingService: bookingService,
		commentService: commentService,
	}
}

// enrich attaches booking summary and comments to an item view.
func (h *Handler) enrich(c *gin.Context, it *item.Item, withSummary, excludeDropped bool) (ItemResponse, error) {
	ctx := c.Request.Context()

	var summary *booking.ItemSummary
	if withSummary {
		var err error
		summary, err = h.bookingService.SummarizeItem(ctx, it.ID, excludeDropped)
		if err != nil {
			return ItemResponse{}, err
		}
	}

	comments, err := h.commentService.ListByItemID(ctx, it.ID)
	if err != nil {
		return ItemResponse{}, err
	}
	return NewItemResponse(it, summary, comments), nil
}

// GetAll lists the caller's own items with their booking summaries.
func (h *Handler) GetAll(c *gin.Context) {
	page, err := request.PageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	actorID := identity.UserID(c)
	items, err := h.service.GetByOwner(c.Request.Context(), actorID, page.Size, page.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		r, err := h.enrich(c, it, true, false)
		if err != nil {
			response.Error(c, err)
			return
		}
		resp = append(resp, r)
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one item. The booking summary is visible to the owner only.
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	actorID := identity.UserID(c)
	if _, err := h.userService.GetByID(c.Request.Context(), actorID); err != nil {
		response.Error(c, err)
		return
	}

	it, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.enrich(c, it, it.OwnerID == actorID, true)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	it, err := h.service.Create(c.Request.Context(), identity.UserID(c), item.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   *body.Available,
		RequestID:   body.RequestID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewItemResponse(it, nil, nil))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var body UpdateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	it, err := h.service.Update(c.Request.Context(), id, identity.UserID(c), item.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.enrich(c, it, true, false)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Search is open: no caller identity is required.
func (h *Handler) Search(c *gin.Context) {
	page, err := request.PageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.service.Search(c.Request.Context(), c.Query("text"), page.Size, page.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, NewItemResponse(it, nil, nil))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) AddComment(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var body CreateCommentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	cm, err := h.commentService.Add(c.Request.Context(), identity.UserID(c), itemID, body.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewCommentResponse(cm))
}
