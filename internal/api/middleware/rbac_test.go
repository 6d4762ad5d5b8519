package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/project-system/internal/core/authz"
	"github.com/taskhub/project-system/internal/core/domain"
)

func contextWithActor(e *echo.Echo, rec *httptest.ResponseRecorder, id string, role domain.Role) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, rec)
	c.Set(ctxActorID, id)
	c.Set(ctxActorRole, string(role))
	return c
}

func TestAuthorize_AdminAllowed(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := contextWithActor(e, rec, "a1", domain.RoleAdmin)

	called := false
	mw := Authorize(authz.NewPolicy(), authz.ResourceUser, authz.ActionList)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthorize_NonAdminForbidden(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleTeamLeader, domain.RoleUser, domain.RoleClient} {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := contextWithActor(e, rec, "x1", role)

		mw := Authorize(authz.NewPolicy(), authz.ResourceProject, authz.ActionCreate)
		handler := mw(func(c echo.Context) error {
			t.Fatalf("%s must not reach next handler", role)
			return nil
		})

		_ = handler(c)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s: expected 403, got %d", role, rec.Code)
		}
	}
}

func TestAuthorize_MissingActor(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Authorize(authz.NewPolicy(), authz.ResourceUser, authz.ActionList)
	handler := mw(func(c echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_Allows(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := contextWithActor(e, rec, "l1", domain.RoleTeamLeader)

	called := false
	mw := RequireRole(domain.RoleTeamLeader)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next handler not called")
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := contextWithActor(e, rec, "c1", domain.RoleClient)

	mw := RequireRole(domain.RoleTeamLeader, domain.RoleUser)
	handler := mw(func(c echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})

	_ = handler(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
