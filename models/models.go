package models

import "github.com/golang-jwt/jwt/v4"

// --- JWT & Auth ---

// Token roles.
const (
	RoleViewer = "viewer"
	RoleAdmin  = "admin"
)

// JwtClaims are the claims carried by dashboard access tokens.
type JwtClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Password string `json:"password" form:"password"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// --- Pagination ---

// Pagination details for paginated responses.
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}

// PaginatedRecordsResponse is the structure for GET /api/v1/records.
type PaginatedRecordsResponse struct {
	Items      []SalesRecord `json:"items"`
	Pagination Pagination    `json:"pagination"`
}
