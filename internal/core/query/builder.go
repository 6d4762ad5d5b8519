// Package query normalizes untrusted list parameters into fully
// specified, deterministic query descriptions: validated equality
// filters, an optional substring search, a fixed newest-first sort, and
// a 10-row page window. Repositories execute these descriptions; they
// never see raw request values.
package query

import (
	"fmt"
	"strconv"

	"github.com/taskhub/project-system/internal/core/domain"
)

// PageSize is the fixed page window applied to every list query.
const PageSize = 10

// FilterAll is the sentinel meaning "impose no constraint on this
// dimension". An absent parameter is treated identically.
const FilterAll = "all"

// UserList is the normalized query for listing users. An empty Role
// means unfiltered; Search matches name OR email by substring, and that
// OR is scoped inside the search clause, AND-ed with the role filter.
type UserList struct {
	Search string
	Role   domain.Role
	Page   int
}

// ProjectList is the normalized query for listing projects. Search
// matches the project name by substring.
type ProjectList struct {
	Search string
	Status domain.ProjectStatus
	Page   int
}

// TaskList is the normalized query for listing tasks. Search matches
// the task title by substring.
type TaskList struct {
	Search   string
	Status   domain.TaskStatus
	Priority domain.TaskPriority
	Page     int
}

// BuildUserList validates raw request parameters into a UserList.
// Unknown role values are rejected with ErrInvalidFilter, never dropped.
func BuildUserList(search, role, page string) (UserList, error) {
	q := UserList{Search: search}

	if role != "" && role != FilterAll {
		r := domain.Role(role)
		if !r.Valid() {
			return UserList{}, fmt.Errorf("%w: role %q", domain.ErrInvalidFilter, role)
		}
		q.Role = r
	}

	p, err := parsePage(page)
	if err != nil {
		return UserList{}, err
	}
	q.Page = p
	return q, nil
}

// BuildProjectList validates raw request parameters into a ProjectList.
func BuildProjectList(search, status, page string) (ProjectList, error) {
	q := ProjectList{Search: search}

	if status != "" && status != FilterAll {
		s := domain.ProjectStatus(status)
		if !s.Valid() {
			return ProjectList{}, fmt.Errorf("%w: status %q", domain.ErrInvalidFilter, status)
		}
		q.Status = s
	}

	p, err := parsePage(page)
	if err != nil {
		return ProjectList{}, err
	}
	q.Page = p
	return q, nil
}

// BuildTaskList validates raw request parameters into a TaskList.
func BuildTaskList(search, status, priority, page string) (TaskList, error) {
	q := TaskList{Search: search}

	if status != "" && status != FilterAll {
		s := domain.TaskStatus(status)
		if !s.Valid() {
			return TaskList{}, fmt.Errorf("%w: status %q", domain.ErrInvalidFilter, status)
		}
		q.Status = s
	}

	if priority != "" && priority != FilterAll {
		p := domain.TaskPriority(priority)
		if !p.Valid() {
			return TaskList{}, fmt.Errorf("%w: priority %q", domain.ErrInvalidFilter, priority)
		}
		q.Priority = p
	}

	p, err := parsePage(page)
	if err != nil {
		return TaskList{}, err
	}
	q.Page = p
	return q, nil
}

// parsePage converts the raw page parameter to a positive integer,
// defaulting to 1 when absent.
func parsePage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: page %q", domain.ErrInvalidFilter, raw)
	}
	return n, nil
}

// Offset returns the number of rows to skip for a 1-based page.
func Offset(page int) int {
	return (page - 1) * PageSize
}

// PageMeta carries everything a caller needs to render "Showing X to Y
// of Z" and page links without further querying.
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
	From       int   `json:"from"`
	To         int   `json:"to"`
}

// NewPageMeta derives pagination metadata from the requested page, the
// total matching row count, and the number of rows actually returned.
func NewPageMeta(page int, total int64, returned int) PageMeta {
	meta := PageMeta{
		Total:      total,
		Page:       page,
		PerPage:    PageSize,
		TotalPages: int((total + PageSize - 1) / PageSize),
	}
	if returned > 0 {
		meta.From = Offset(page) + 1
		meta.To = Offset(page) + returned
	}
	return meta
}
