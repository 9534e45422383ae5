package dto

import (
	"time"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest payload for credential rotation.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangeEmailRequest payload for address changes.
type ChangeEmailRequest struct {
	NewEmail string `json:"new_email"`
}

// ChangeDisplayNameRequest payload for display name changes.
type ChangeDisplayNameRequest struct {
	DisplayName string `json:"display_name"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AccountResponse is the public view of an account. The credential never
// leaves the core.
type AccountResponse struct {
	ID          string      `json:"id"`
	Role        domain.Role `json:"role"`
	Email       string      `json:"email"`
	DisplayName string      `json:"display_name"`
}

// NewAccountResponse maps a domain account.
func NewAccountResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID.String(),
		Role:        account.Role,
		Email:       account.Email,
		DisplayName: account.DisplayName,
	}
}

// AuditEntryResponse is the public view of one audit log entry.
type AuditEntryResponse struct {
	AccountID  string    `json:"account_id"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    string    `json:"payload,omitempty"`
}

// NewAuditEntryResponse maps a domain audit entry.
func NewAuditEntryResponse(entry domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		AccountID:  entry.AccountID.String(),
		Kind:       string(entry.Kind),
		OccurredAt: entry.OccurredAt,
		Payload:    entry.Payload,
	}
}
