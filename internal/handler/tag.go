package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"qaplatform/internal/repository"
)

type TagHandler struct {
	Tags *repository.TagRepo
}

func NewTagHandler(t *repository.TagRepo) *TagHandler { return &TagHandler{Tags: t} }

// List returns all tags, optionally filtered by a name substring.
func (h *TagHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tags, err := h.Tags.List(ctx, c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list tags failed"})
	}
	return c.JSON(http.StatusOK, tags)
}

// Popular returns the 20 most used tags.
func (h *TagHandler) Popular(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tags, err := h.Tags.Popular(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list popular tags failed"})
	}
	return c.JSON(http.StatusOK, tags)
}
