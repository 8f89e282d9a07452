package models

import "time"

// User is the library member as reported by the upstream backend.
type User struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name,omitempty"`
	Role       string `json:"role,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
	Department string `json:"department,omitempty"`
	IsActive   bool   `json:"is_active"`
}

// Session is a signed-in member's server-side record.
type Session struct {
	ID            string    `json:"id"`
	User          User      `json:"user"`
	TokenHash     string    `json:"tokenHash"`
	UpstreamToken string    `json:"upstreamToken,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// AuthState is the per-request view of authentication, resolved once by
// middleware and read by pages and the debug overlay.
type AuthState struct {
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsLoading       bool   `json:"isLoading"`
	LastError       string `json:"lastError,omitempty"`
	TokenPresent    bool   `json:"tokenPresent"`
}
