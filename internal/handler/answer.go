package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"qaplatform/internal/middleware"
	"qaplatform/internal/model"
	"qaplatform/internal/repository"
	"qaplatform/internal/service"
)

// AnswerHandler serves answer creation, acceptance and the admin
// delete.
type AnswerHandler struct {
	Answers   *repository.AnswerRepo
	Questions *repository.QuestionRepo
	Accepts   *service.AcceptService
	Notifier  service.Notifier
}

func NewAnswerHandler(a *repository.AnswerRepo, q *repository.QuestionRepo, acc *service.AcceptService, n service.Notifier) *AnswerHandler {
	return &AnswerHandler{Answers: a, Questions: q, Accepts: acc, Notifier: n}
}

type createAnswerReq struct {
	QuestionID uint64 `json:"questionId"`
	Content    string `json:"content"`
}

// Create stores an answer and notifies the question author.
func (h *AnswerHandler) Create(c echo.Context) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createAnswerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.QuestionID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "questionId is required"})
	}
	if len(req.Content) < 10 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Content must be at least 10 characters"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	questionAuthor, err := h.Questions.AuthorID(ctx, req.QuestionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Question not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load question failed"})
	}

	id, err := h.Answers.Create(ctx, req.QuestionID, actor.ID, req.Content)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create answer failed"})
	}

	if h.Notifier != nil && questionAuthor != actor.ID {
		n := model.Notification{
			UserID:  questionAuthor,
			Type:    model.NotificationAnswer,
			Title:   "New Answer",
			Message: fmt.Sprintf("%s answered your question", actor.Username),
			Link:    fmt.Sprintf("/questions/%d", req.QuestionID),
		}
		if err := h.Notifier.Notify(ctx, n); err != nil {
			c.Logger().Warnf("notify question author %d failed: %v", questionAuthor, err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"id": id, "message": "Answer created successfully"})
}

// Accept marks the answer as accepted for its question. Only the
// question author may do this; the acceptance engine enforces it.
func (h *AnswerHandler) Accept(c echo.Context) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid answer id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Accepts.Accept(ctx, actor, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Answer not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "Only question owner can accept answers"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "accept answer failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Answer accepted successfully"})
}

// Delete removes an answer. Admin only; the router enforces the role.
func (h *AnswerHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid answer id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Answers.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Answer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete answer failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Answer deleted successfully by admin"})
}
