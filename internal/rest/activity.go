package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/platefeed/engagement/domain"
	"github.com/platefeed/engagement/internal/rest/request"
	"github.com/platefeed/engagement/internal/rest/response"
)

type activityHandler struct {
	Service domain.ActivityUsecase
}

func NewActivityHandler(svc domain.ActivityUsecase) *activityHandler {
	return &activityHandler{
		Service: svc,
	}
}

// RecordEvent appends one event to the caller's history
func (h *activityHandler) RecordEvent(c *gin.Context) {
	var req request.ActivityEvent
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := callerID(c)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx := c.Request.Context()
	if err := h.Service.Record(ctx, uid, req.ToDomain()); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Event recorded"})
}

// ClearHistory empties the caller's history
func (h *activityHandler) ClearHistory(c *gin.Context) {
	uid := callerID(c)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.Service.Clear(c.Request.Context(), uid); err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "History cleared"})
}

// QueryHistory returns one filtered page of the caller's history.
// Non-numeric page/limit params fall back to the defaults instead of erroring.
func (h *activityHandler) QueryHistory(c *gin.Context) {
	uid := callerID(c)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	page, err := strconv.ParseInt(c.Query("page"), 10, 64)
	if err != nil {
		page = 1
	}
	limit, err := strconv.ParseInt(c.Query("limit"), 10, 64)
	if err != nil {
		limit = 0 // usecase applies the default
	}

	q := domain.HistoryQuery{
		Page:  page,
		Limit: limit,
		Type:  domain.EventType(c.Query("type")),
		Text:  c.Query("q"),
	}

	pageRes, err := h.Service.Query(c.Request.Context(), uid, q)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.NewHistoryPageFromDomain(&pageRes))
}
