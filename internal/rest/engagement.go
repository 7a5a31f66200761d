package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/platefeed/engagement/domain"
	"github.com/platefeed/engagement/internal/rest/response"
)

const (
	DefaultFavoritesLimit = 50
	FavoritesMax          = 100
)

type engagementHandler struct {
	Service domain.EngagementUsecase
}

func NewEngagementHandler(svc domain.EngagementUsecase) *engagementHandler {
	return &engagementHandler{
		Service: svc,
	}
}

// ToggleLike flips the caller's like on the post
func (h *engagementHandler) ToggleLike(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	pid := int64(idP)

	uid := callerID(c)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	res, err := h.Service.ToggleLike(c.Request.Context(), pid, uid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_liked": res.Active, "like_count": res.Count})
}

// ToggleFavorite flips the caller's favorite on the post
func (h *engagementHandler) ToggleFavorite(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	pid := int64(idP)

	uid := callerID(c)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	active, err := h.Service.ToggleFavorite(c.Request.Context(), pid, uid)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_favorited": active})
}

// FetchFavorites lists the caller's favorited posts, newest first
func (h *engagementHandler) FetchFavorites(c *gin.Context) {
	uid := callerID(c)
	if uid == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	limitS := c.Query("limit")
	limit, err := strconv.ParseInt(limitS, 10, 64)
	if err != nil || limit < 1 || limit > FavoritesMax {
		limit = DefaultFavoritesLimit
	}

	posts, err := h.Service.FavoritePosts(c.Request.Context(), uid, limit)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.Post, len(posts))
	for i := range posts {
		res[i] = response.NewPostFromDomain(&posts[i])
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}
