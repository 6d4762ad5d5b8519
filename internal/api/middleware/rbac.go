package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/project-system/internal/api/metrics"
	"github.com/taskhub/project-system/internal/core/authz"
	"github.com/taskhub/project-system/internal/core/domain"
)

// Authorize gates a management route through the authorization policy.
// It runs after Auth, so a denial short-circuits before any request
// validation or store access.
func Authorize(policy *authz.Policy, resource authz.Resource, action authz.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if !policy.CanPerform(actor.Role, resource, action) {
				metrics.AuthzDenialsTotal.WithLabelValues(string(resource), string(action)).Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": domain.ErrForbidden.Error()})
			}
			return next(c)
		}
	}
}

// RequireRole restricts a route group to an explicit set of roles. Used
// for the role-scoped dashboards, whose row-level visibility the policy
// then narrows further.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, ok := allowed[actor.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": domain.ErrForbidden.Error()})
			}
			return next(c)
		}
	}
}
