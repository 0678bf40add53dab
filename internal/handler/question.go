package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"qaplatform/internal/middleware"
	"qaplatform/internal/model"
	"qaplatform/internal/repository"
)

// QuestionHandler serves question listing, detail, creation and the
// admin delete.
type QuestionHandler struct {
	Questions *repository.QuestionRepo
	Answers   *repository.AnswerRepo
	Votes     *repository.VoteRepo
}

func NewQuestionHandler(q *repository.QuestionRepo, a *repository.AnswerRepo, v *repository.VoteRepo) *QuestionHandler {
	return &QuestionHandler{Questions: q, Answers: a, Votes: v}
}

// List returns a page of questions filtered by tag or search term. For
// authenticated viewers each row is annotated with their own vote.
func (h *QuestionHandler) List(c echo.Context) error {
	f := repository.QuestionFilter{
		Page:   atoiDefault(c.QueryParam("page"), 1),
		Limit:  atoiDefault(c.QueryParam("limit"), 10),
		Tag:    c.QueryParam("tag"),
		Search: c.QueryParam("search"),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, err := h.Questions.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list questions failed"})
	}

	if actor, ok := middleware.Actor(c); ok && len(rows) > 0 {
		ids := make([]uint64, len(rows))
		for i, q := range rows {
			ids[i] = q.ID
		}
		votes, err := h.Votes.ForViewer(ctx, actor.ID, model.VoteableQuestion, ids)
		if err == nil {
			for i := range rows {
				if v, ok := votes[rows[i].ID]; ok {
					vt := v
					rows[i].UserVote = &vt
				}
			}
		}
	}
	return c.JSON(http.StatusOK, rows)
}

// Get returns one question with its answers. Every view bumps the view
// counter before the read so the response already reflects it.
func (h *QuestionHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid question id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	_ = h.Questions.IncrementViews(ctx, id)

	q, err := h.Questions.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Question not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load question failed"})
	}

	answers, err := h.Answers.ListByQuestion(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load answers failed"})
	}

	if actor, ok := middleware.Actor(c); ok {
		if votes, err := h.Votes.ForViewer(ctx, actor.ID, model.VoteableQuestion, []uint64{id}); err == nil {
			if v, ok := votes[id]; ok {
				vt := v
				q.UserVote = &vt
			}
		}
		if len(answers) > 0 {
			ids := make([]uint64, len(answers))
			for i, a := range answers {
				ids[i] = a.ID
			}
			if votes, err := h.Votes.ForViewer(ctx, actor.ID, model.VoteableAnswer, ids); err == nil {
				for i := range answers {
					if v, ok := votes[answers[i].ID]; ok {
						vt := v
						answers[i].UserVote = &vt
					}
				}
			}
		}
	}

	q.Answers = answers
	return c.JSON(http.StatusOK, q)
}

type createQuestionReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func validateQuestion(req createQuestionReq) string {
	if n := len(req.Title); n < 5 || n > 255 {
		return "Title must be between 5 and 255 characters"
	}
	if len(req.Description) < 10 {
		return "Description must be at least 10 characters"
	}
	if n := len(req.Tags); n < 1 || n > 5 {
		return "Between 1 and 5 tags are required"
	}
	for _, t := range req.Tags {
		if strings.TrimSpace(t) == "" {
			return "Tags must not be empty"
		}
	}
	return ""
}

// Create stores a new question together with its tags.
func (h *QuestionHandler) Create(c echo.Context) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createQuestionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if msg := validateQuestion(req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Questions.Create(ctx, req.Title, req.Description, actor.ID, req.Tags)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create question failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "message": "Question created successfully"})
}

// Delete removes a question. Admin only; the router enforces the role.
func (h *QuestionHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid question id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Questions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Question not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete question failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Question deleted successfully by admin"})
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
