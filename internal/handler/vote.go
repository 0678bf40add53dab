package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"qaplatform/internal/middleware"
	"qaplatform/internal/model"
	"qaplatform/internal/repository"
)

// VoteCaster is what the vote endpoint needs from the voting engine.
type VoteCaster interface {
	Cast(ctx context.Context, actor model.Actor, target model.VoteableType, id uint64, requested model.VoteType) (int, error)
}

type VoteHandler struct {
	Votes VoteCaster
}

func NewVoteHandler(v VoteCaster) *VoteHandler { return &VoteHandler{Votes: v} }

type voteReq struct {
	VoteableID   uint64             `json:"voteableId"`
	VoteableType model.VoteableType `json:"voteableType"`
	VoteType     model.VoteType     `json:"voteType"`
}

// Cast records, removes or flips the caller's vote and returns the
// score change the transition produced.
func (h *VoteHandler) Cast(c echo.Context) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req voteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.VoteableID == 0 || !req.VoteableType.Valid() || !req.VoteType.Valid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "voteableId, voteableType and voteType are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	delta, err := h.Votes.Cast(ctx, actor, req.VoteableType, req.VoteableID, req.VoteType)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("%s not found", req.VoteableType)})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cannot vote on your own content"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "vote failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Vote recorded successfully", "scoreChange": delta})
}
