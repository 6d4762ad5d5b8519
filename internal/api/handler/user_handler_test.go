package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/project-system/internal/core/domain"
	"github.com/taskhub/project-system/internal/core/ports"
)

type stubUserService struct {
	listFn   func(ctx context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error)
	createFn func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, actor domain.Actor, id string) error
}

func (s *stubUserService) List(ctx context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) Get(context.Context, domain.Actor, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Update(context.Context, ports.UpdateUserInput) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return s.deleteFn(ctx, actor, id)
}

// newAdminContext builds a request context carrying admin claims, the
// way the Auth middleware would after token validation.
func newAdminContext(e *echo.Echo, rec *httptest.ResponseRecorder, method, target, body string) echo.Context {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	c := e.NewContext(req, rec)
	c.Set("actor_id", "admin1")
	c.Set("actor_name", "Admin")
	c.Set("actor_email", "admin@example.com")
	c.Set("actor_role", "admin")
	return c
}

func TestUserHandler_List_PassesQueryParams(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		listFn: func(_ context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
			if in.Search != "ana" || in.Role != "user" || in.Page != "2" {
				t.Fatalf("raw params not forwarded: %+v", in)
			}
			if in.Actor.ID != "admin1" || in.Actor.Role != domain.RoleAdmin {
				t.Fatalf("actor not forwarded: %+v", in.Actor)
			}
			return &ports.ListUsersResult{
				Users:   []*domain.User{{ID: "u1", Name: "Ana", Email: "ana@example.com", Role: domain.RoleUser}},
				Filters: ports.UserFilters{Search: "ana", Role: "user"},
			}, nil
		},
	}
	handler := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := newAdminContext(e, rec, http.MethodGet, "/v1/admin/users?search=ana&role=user&page=2", "")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("expected one row, got %+v", resp["data"])
	}
	row := data[0].(map[string]any)
	if _, leaked := row["password_hash"]; leaked {
		t.Fatal("password hash must never appear in a response")
	}
}

func TestUserHandler_Create_ValidationFailureSkipsService(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubUserService{
		createFn: func(context.Context, ports.CreateUserInput) (*domain.User, error) {
			t.Fatal("service must not be called on invalid payload")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	// Short password and mismatched confirmation.
	body := `{"name":"Ana","email":"ana@example.com","role":"user","password":"short","password_confirmation":"other"}`
	rec := httptest.NewRecorder()
	c := newAdminContext(e, rec, http.MethodPost, "/v1/admin/users", body)

	err := handler.Create(c)
	if err == nil {
		t.Fatal("expected validation error")
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if _, ok := ve.Fields["password"]; !ok {
		t.Errorf("expected a password field message, got %+v", ve.Fields)
	}
}

func TestUserHandler_Create_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubUserService{
		createFn: func(_ context.Context, in ports.CreateUserInput) (*domain.User, error) {
			if in.Role != domain.RoleTeamLeader || in.Password != "a-long-password" {
				t.Fatalf("input not forwarded: %+v", in)
			}
			return &domain.User{ID: "u9", Name: in.Name, Email: in.Email, Role: in.Role}, nil
		},
	}
	handler := NewUserHandler(stub)

	body := `{"name":"Laura","email":"laura@example.com","role":"team_leader","password":"a-long-password","password_confirmation":"a-long-password"}`
	rec := httptest.NewRecorder()
	c := newAdminContext(e, rec, http.MethodPost, "/v1/admin/users", body)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User created successfully." {
		t.Errorf("unexpected message: %v", resp["message"])
	}
}

func TestUserHandler_Delete_PropagatesDomainError(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		deleteFn: func(_ context.Context, actor domain.Actor, id string) error {
			return domain.ErrSelfDelete
		},
	}
	handler := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := newAdminContext(e, rec, http.MethodDelete, "/v1/admin/users/admin1", "")
	c.SetParamNames("id")
	c.SetParamValues("admin1")

	err := handler.Delete(c)
	if !errors.Is(err, domain.ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete to propagate, got %v", err)
	}
}
