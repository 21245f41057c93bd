package http

import (
	"errors"
	"net/http"
	"strings"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "authenticatedActor"

var errNoActor = errors.New("no authenticated actor in request context")

// accessClaims is the token payload. The subject is the staff member's user
// ID and the role claim must name one of the defined roles.
type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the Bearer token on every request and resolves it
// to a domain actor. Requests without a valid token, or with a subject or
// role that does not parse, are rejected before reaching any handler.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			authHeader := ctx.Request().Header.Get("Authorization")
			tokenStr, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found {
				return unauthorized(ctx, "missing bearer token")
			}

			claims := &accessClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
			if err != nil || !token.Valid {
				return unauthorized(ctx, "invalid token")
			}

			act, err := actorFromClaims(claims)
			if err != nil {
				return unauthorized(ctx, "invalid token subject or role")
			}

			ctx.Set(actorContextKey, act)
			return next(ctx)
		}
	}
}

func actorFromClaims(claims *accessClaims) (actor.Actor, error) {
	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return actor.Actor{}, err
	}

	role, err := actor.RoleFromString(claims.Role)
	if err != nil {
		return actor.Actor{}, err
	}

	return actor.NewActor(userID, role)
}

// actorFromContext retrieves the actor placed by AuthMiddleware.
func actorFromContext(ctx echo.Context) (actor.Actor, error) {
	act, ok := ctx.Get(actorContextKey).(actor.Actor)
	if !ok {
		return actor.Actor{}, errNoActor
	}
	return act, nil
}

func unauthorized(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}
