package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reelmate/reelmate-backend/internal/domain"
	"github.com/reelmate/reelmate-backend/internal/usecase/swipe"
)

type SwipeHandler struct {
	swipeUseCase *swipe.SwipeUseCase
}

func NewSwipeHandler(swipeUseCase *swipe.SwipeUseCase) *SwipeHandler {
	return &SwipeHandler{
		swipeUseCase: swipeUseCase,
	}
}

// RecordSwipe handles POST /swipe
// @Summary Record a swipe decision
// @Description Records like or pass and reports whether a match formed
// @Tags swipe
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body swipe.SwipeRequest true "Swipe"
// @Success 200 {object} swipe.SwipeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /swipe [post]
func (h *SwipeHandler) RecordSwipe(c *gin.Context) {
	uid, ok := currentUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error: "unauthorized",
		})
		return
	}

	var req swipe.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request: " + err.Error(),
		})
		return
	}

	resp, err := h.swipeUseCase.RecordSwipe(c.Request.Context(), uid, &req)
	if err != nil {
		if errors.Is(err, domain.ErrCannotSwipeSelf) {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "cannot swipe on yourself",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to record swipe",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
