package admin

import "user-portal-backend/users"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// AdminUser is a user record enriched with its active session count.
type AdminUser struct {
	users.UserResponse
	ActiveSessions int64 `json:"activeSessions"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type ListUsersResponse struct {
	Users      []AdminUser `json:"users"`
	Pagination Pagination  `json:"pagination"`
}

type UpdateRoleRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}
