package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/project-system/internal/api/middleware"
	"github.com/taskhub/project-system/internal/core/domain"
)

// ctxActor extracts the authenticated actor injected by the Auth middleware.
// Presence of a valid role proves the middleware ran; a request reaching a
// handler without it is a routing mistake, not a client error we can name.
func ctxActor(c echo.Context) (domain.Actor, error) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok || !actor.Role.Valid() {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}
