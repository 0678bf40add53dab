package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"qaplatform/internal/model"
)

// actorKey is the context key under which the authenticated actor is
// stored. Handlers read it back through Actor().
const actorKey = "actor"

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the authenticated actor into the request context.
// The provided secret must match the one used when issuing tokens.
// Protected routes wrap with this so handlers can call Actor(c).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := actorFromHeader(c, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
			}
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// OptionalAuth behaves like JWTAuth but lets unauthenticated requests
// through as anonymous. Listing endpoints use it so signed-in viewers
// get their own votes annotated while guests still see the page.
func OptionalAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if actor, err := actorFromHeader(c, secret); err == nil {
				c.Set(actorKey, actor)
			}
			return next(c)
		}
	}
}

// Actor returns the authenticated actor stored by JWTAuth or
// OptionalAuth. ok is false for anonymous requests.
func Actor(c echo.Context) (model.Actor, bool) {
	a, ok := c.Get(actorKey).(model.Actor)
	return a, ok && a.ID != 0
}

func actorFromHeader(c echo.Context, secret string) (model.Actor, error) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return model.Actor{}, errors.New("missing bearer token")
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	// Parse with HS256 only; any other signing method is rejected.
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return model.Actor{}, errors.New("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return model.Actor{}, errors.New("invalid claims")
	}

	var actor model.Actor
	// Numeric claims come back as float64 from encoding/json.
	if sub, ok := claims["sub"].(float64); ok {
		actor.ID = uint64(sub)
	}
	if actor.ID == 0 {
		return model.Actor{}, errors.New("invalid claims")
	}
	actor.Username, _ = claims["username"].(string)
	actor.Role, _ = claims["role"].(string)
	return actor, nil
}
