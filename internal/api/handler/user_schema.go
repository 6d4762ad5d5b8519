package handler

import (
	"time"

	"github.com/taskhub/project-system/internal/core/domain"
	"github.com/taskhub/project-system/internal/core/ports"
	"github.com/taskhub/project-system/internal/core/query"
)

// --- Request / Response types ---

type createUserRequest struct {
	Name                 string `json:"name"                  validate:"required,max=255"`
	Email                string `json:"email"                 validate:"required,lowercase,email,max=255"`
	Role                 string `json:"role"                  validate:"required,oneof=admin team_leader user client"`
	Password             string `json:"password"              validate:"required,min=8,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
}

type updateUserRequest struct {
	Name                 string `json:"name"                  validate:"required,max=255"`
	Email                string `json:"email"                 validate:"required,lowercase,email,max=255"`
	Role                 string `json:"role"                  validate:"required,oneof=admin team_leader user client"`
	Password             string `json:"password"              validate:"omitempty,min=8,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation" validate:"omitempty"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// paginationResponse is the shared page envelope for all list endpoints.
type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

func toPaginationResponse(m query.PageMeta) paginationResponse {
	return paginationResponse{
		Total:      m.Total,
		Page:       m.Page,
		PerPage:    m.PerPage,
		TotalPages: m.TotalPages,
		From:       m.From,
		To:         m.To,
	}
}

type listUsersResponse struct {
	Data       []userResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
	Filters    ports.UserFilters  `json:"filters"`
}

type userMessageResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

// messageResponse is the body for mutations that return no resource.
type messageResponse struct {
	Message string `json:"message"`
}
