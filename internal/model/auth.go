package model

// SessionUser is the identity carried by a session token. There is exactly one
// user, the shared admin.
type SessionUser struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// AdminUser is the identity granted by a successful password check.
var AdminUser = SessionUser{ID: "admin", Name: "Admin", IsAuthenticated: true}

// LoginRequest represents a login submission.
type LoginRequest struct {
	Password string `json:"password"`
}

// AuthResponse is returned by login and verify.
type AuthResponse struct {
	Success bool        `json:"success"`
	User    SessionUser `json:"user"`
}

// SuccessResponse acknowledges mutations that return no entity.
type SuccessResponse struct {
	Success bool `json:"success"`
}
