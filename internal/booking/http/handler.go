package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rentshare/rentshare-backend/internal/booking"
	"github.com/rentshare/rentshare-backend/internal/comment"
	"github.com/rentshare/rentshare-backend/internal/identity"
	"github.com/rentshare/rentshare-backend/internal/item"
	itemHttp "github.com/rentshare/rentshare-backend/internal/item/http"
	"github.com/rentshare/rentshare-backend/internal/pkg/request"
	"github.com/rentshare/rentshare-backend/internal/pkg/response"
)

type Handler struct {
	service        booking.Service
	itemService    item.Service
	commentService comment.Service
}

func NewHandler(service booking.Service, itemService item.Service, commentService comment.Service) *Handler {
	return &Handler{
		service:        service,
		itemService:    itemService,
		commentService: commentService,
	}
}

// respond renders a booking together with its item's booking and comment
// context.
func (h *Handler) respond(c *gin.Context, code int, b *booking.Booking) {
	ctx := c.Request.Context()

	it, err := h.itemService.GetByID(ctx, b.ItemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.service.SummarizeItem(ctx, b.ItemID, false)
	if err != nil {
		response.Error(c, err)
		return
	}
	comments, err := h.commentService.ListByItemID(ctx, b.ItemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(code, NewBookingResponse(b, itemHttp.NewItemResponse(it, summary, comments)))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, http.StatusOK, b)
}

// ListAsBooker lists the caller's own bookings bucketed by state.
func (h *Handler) ListAsBooker(c *gin.Context) {
	h.list(c, booking.AsBooker)
}

// ListAsOwner lists the bookings made against the caller's items.
func (h *Handler) ListAsOwner(c *gin.Context) {
	h.list(c, booking.AsOwner)
}

func (h *Handler) list(c *gin.Context, role booking.Role) {
	state, err := booking.ParseState(c.DefaultQuery("state", string(booking.StateAll)))
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := request.PageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, err := h.service.ListByState(c.Request.Context(), identity.UserID(c), role, state,
		booking.Page{From: page.From, Size: page.Size})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		it, err := h.itemService.GetByID(c.Request.Context(), b.ItemID)
		if err != nil {
			response.Error(c, err)
			return
		}
		summary, err := h.service.SummarizeItem(c.Request.Context(), b.ItemID, false)
		if err != nil {
			response.Error(c, err)
			return
		}
		comments, err := h.commentService.ListByItemID(c.Request.Context(), b.ItemID)
		if err != nil {
			response.Error(c, err)
			return
		}
		resp = append(resp, NewBookingResponse(b, itemHttp.NewItemResponse(it, summary, comments)))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), identity.UserID(c), booking.CreateRequest{
		ItemID: body.ItemID,
		Start:  body.Start,
		End:    body.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	it, err := h.itemService.GetByID(c.Request.Context(), b.ItemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	// Fresh bookings carry no item context yet.
	c.JSON(http.StatusCreated, NewBookingResponse(b, itemHttp.NewItemResponse(it, nil, nil)))
}

// Update is the combined decide/amend endpoint: a body means the booker is
// amending, an approved query parameter means the owner is deciding.
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	req := booking.UpdateRequest{}

	var body AmendBookingRequest
	switch err := c.ShouldBindJSON(&body); {
	case err == nil:
		req.Amendment = &booking.Amendment{
			Start:  body.Start,
			End:    body.End,
			ItemID: body.ItemID,
		}
	case errors.Is(err, io.EOF):
		// no body: decision-only request
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if req.Amendment == nil {
		if raw, ok := c.GetQuery("approved"); ok {
			approved, err := strconv.ParseBool(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid approved parameter"})
				return
			}
			req.Approved = &approved
		}
	}

	b, err := h.service.Update(c.Request.Context(), id, identity.UserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.respond(c, http.StatusOK, b)
}
