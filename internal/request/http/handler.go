package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rentshare/rentshare-backend/internal/identity"
	pkgrequest "github.com/rentshare/rentshare-backend/internal/pkg/request"
	"github.com/rentshare/rentshare-backend/internal/pkg/response"
	"github.com/rentshare/rentshare-backend/internal/request"
)

type Handler struct {
	service request.Service
}

func NewHandler(service request.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req, err := h.service.Add(c.Request.Context(), identity.UserID(c), body.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRequestResponse(&request.RequestWithItems{Request: req}))
}

// GetOwn lists the caller's requests with the items answering them.
func (h *Handler) GetOwn(c *gin.Context) {
	requests, err := h.service.GetByRequester(c.Request.Context(), identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(requests))
}

// GetAll lists other users' requests, paged.
func (h *Handler) GetAll(c *gin.Context) {
	page, err := pkgrequest.PageQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	requests, err := h.service.GetAll(c.Request.Context(), identity.UserID(c), page.Size, page.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(requests))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	req, err := h.service.GetByID(c.Request.Context(), id, identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRequestResponse(req))
}

func toResponses(requests []*request.RequestWithItems) []RequestResponse {
	resp := make([]RequestResponse, 0, len(requests))
	for _, rw := range requests {
		resp = append(resp, NewRequestResponse(rw))
	}
	return resp
}
