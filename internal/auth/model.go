package auth

import "time"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Session is an issued admin session: the signed cookie value plus the
// CSRF token the client must echo on mutating requests.
type Session struct {
	Token     string
	CSRFToken string
	Actor     string
	ExpiresAt time.Time
}

type LoginResponse struct {
	Actor     string `json:"actor"`
	CSRFToken string `json:"csrf_token"`
}
