package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/reelmate/reelmate-backend/internal/domain"
	"github.com/reelmate/reelmate-backend/internal/usecase/feed"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
	}
}

// GetCandidates handles GET /feed/candidates
// @Summary Candidate feed
// @Description Scored, sorted candidates for the current user
// @Tags feed
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Max results"
// @Success 200 {array} feed.ScoredCandidate
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /feed/candidates [get]
func (h *FeedHandler) GetCandidates(c *gin.Context) {
	uid, ok := currentUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	candidates, err := h.feedUseCase.GetCandidates(c.Request.Context(), uid, limit)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "profile not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to load candidates",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}
