// Package router wires handlers onto the Echo instance. Route groups
// mirror the access tiers: public, authenticated and admin.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"qaplatform/internal/config"
	"qaplatform/internal/handler"
	"qaplatform/internal/middleware"
	"qaplatform/internal/model"
)

// Handlers collects every handler the API mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Questions     *handler.QuestionHandler
	Answers       *handler.AnswerHandler
	Votes         *handler.VoteHandler
	Tags          *handler.TagHandler
	Notifications *handler.NotificationHandler
}

// Register mounts all routes under /api. The token bucket limiter runs
// on the whole group; the Redis response cache covers only the tag
// reads, which are hot and rarely change.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	origin := cfg.FrontendBase
	if origin == "" {
		origin = "http://localhost:3000"
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	api := e.Group("/api", middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	api.GET("/health", handler.Health(cfg.Env))

	// ---- Public ----
	api.POST("/users/register", h.Auth.Register)
	api.POST("/users/login", h.Auth.Login)

	api.GET("/questions", h.Questions.List, middleware.OptionalAuth(cfg.JWTSecret))
	api.GET("/questions/:id", h.Questions.Get, middleware.OptionalAuth(cfg.JWTSecret))

	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	api.GET("/tags", h.Tags.List, cache)
	api.GET("/tags/popular", h.Tags.Popular, cache)

	// ---- Authenticated ----
	auth := api.Group("", middleware.JWTAuth(cfg.JWTSecret))
	auth.GET("/users/profile", h.Auth.Profile)
	auth.POST("/questions", h.Questions.Create)
	auth.POST("/answers", h.Answers.Create)
	auth.POST("/answers/:id/accept", h.Answers.Accept)
	auth.POST("/votes", h.Votes.Cast)
	auth.GET("/notifications", h.Notifications.List)
	auth.GET("/notifications/unread-count", h.Notifications.UnreadCount)
	auth.PATCH("/notifications/:id/read", h.Notifications.MarkRead)
	auth.PATCH("/notifications/read-all", h.Notifications.MarkAllRead)

	// ---- Admin ----
	admin := api.Group("", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireRole(model.RoleAdmin))
	admin.GET("/users", h.Users.List)
	admin.PATCH("/users/:id/role", h.Users.UpdateRole)
	admin.DELETE("/questions/:id", h.Questions.Delete)
	admin.DELETE("/answers/:id", h.Answers.Delete)
}
