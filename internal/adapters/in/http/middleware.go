package http

import (
	"context"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// Actor is the authenticated caller resolved by the auth middleware.
type Actor struct {
	ID   kernel.UUID
	Role user.Role
}

// authenticate resolves the bearer token to an Actor and stores it in
// the request context. Disabled accounts are rejected even with a
// still-valid token.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return respondUnauthenticated(ctx, "missing bearer token")
		}

		actor, err := s.resolveToken(ctx.Request().Context(), token)
		if err != nil {
			return respondUnauthenticated(ctx, "invalid or expired token")
		}

		ctx.Set(actorContextKey, actor)
		return next(ctx)
	}
}

func (s *Server) resolveToken(ctx context.Context, token string) (Actor, error) {
	username, err := s.tokens.Verify(token)
	if err != nil {
		return Actor{}, err
	}

	aggregate, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return Actor{}, err
	}
	if aggregate.IsDisabled() {
		return Actor{}, errs.NewUnauthorizedError("authenticate")
	}

	return Actor{ID: aggregate.ID(), Role: aggregate.Role()}, nil
}

func actorFromContext(ctx echo.Context) (Actor, error) {
	actor, ok := ctx.Get(actorContextKey).(Actor)
	if !ok {
		return Actor{}, errs.NewUnauthorizedError("authenticate")
	}
	return actor, nil
}
