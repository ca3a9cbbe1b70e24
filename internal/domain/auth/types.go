package auth

// Package auth contains domain-level types for the admin sign-in flow.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents a principal's authorization role as reported by the
// identity service. Kept in string form for easy persistence.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStandard Role = "standard"
)

// Principal is the authenticated entity's identity record.
type Principal struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Role        Role   `json:"role"`
}

// IsAdmin returns true if the principal carries the admin role.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// Session is the durable pairing of an issued token with its admitted
// principal. Exactly one admin session exists at a time; a later successful
// sign-in fully replaces it.
type Session struct {
	Token     string    `json:"token"`
	Principal Principal `json:"principal"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionEvent is the immutable payload broadcast once per successful
// admission (and once per logout, with the session being torn down).
type SessionEvent struct {
	ID         string    `json:"id"`
	Principal  Principal `json:"principal"`
	Token      string    `json:"token"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Event bus channel names. Any subsystem may subscribe; the sign-in flow
// makes no contract about what subscribers do.
const (
	ChannelAdminLoginSuccess = "adminLoginSuccess"
	ChannelAdminLogout       = "adminLogout"
)
