package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskhub/project-system/internal/core/domain"
)

// RevocationChecker is the read side of the logout denylist.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Context keys set by Auth and read by handlers.
const (
	ctxActorID    = "actor_id"
	ctxActorName  = "actor_name"
	ctxActorEmail = "actor_email"
	ctxActorRole  = "actor_role"
	ctxTokenID    = "token_jti"
	ctxTokenExp   = "token_exp"
)

// Auth validates the bearer JWT, rejects revoked tokens, and injects
// the actor's identity into the request context. The actor is resolved
// exactly once per request here.
func Auth(jwtSecret string, revoked RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			jti, _ := claims["jti"].(string)
			if revoked != nil && jti != "" {
				isRevoked, err := revoked.IsRevoked(c.Request().Context(), jti)
				if err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "token validation unavailable")
				}
				if isRevoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}

			c.Set(ctxActorID, claims["sub"])
			c.Set(ctxActorName, claims["name"])
			c.Set(ctxActorEmail, claims["email"])
			c.Set(ctxActorRole, claims["role"])
			c.Set(ctxTokenID, jti)
			if exp, ok := claims["exp"].(float64); ok {
				c.Set(ctxTokenExp, time.Unix(int64(exp), 0).UTC())
			}

			return next(c)
		}
	}
}

// ActorFromContext rebuilds the authenticated actor from the claims the
// Auth middleware stored.
func ActorFromContext(c echo.Context) (domain.Actor, bool) {
	id, _ := c.Get(ctxActorID).(string)
	role, _ := c.Get(ctxActorRole).(string)
	if id == "" || role == "" {
		return domain.Actor{}, false
	}
	name, _ := c.Get(ctxActorName).(string)
	email, _ := c.Get(ctxActorEmail).(string)
	return domain.Actor{ID: id, Name: name, Email: email, Role: domain.Role(role)}, true
}

// TokenFromContext returns the token id and expiry stored by Auth, for
// logout.
func TokenFromContext(c echo.Context) (jti string, expiresAt time.Time, ok bool) {
	jti, _ = c.Get(ctxTokenID).(string)
	expiresAt, hasExp := c.Get(ctxTokenExp).(time.Time)
	return jti, expiresAt, jti != "" && hasExp
}
