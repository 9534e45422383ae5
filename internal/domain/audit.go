package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditKind enumerates the account events recorded in the audit log.
type AuditKind string

const (
	AuditLogin             AuditKind = "LOGIN"
	AuditRegister          AuditKind = "REGISTER"
	AuditChangePassword    AuditKind = "CHANGE_PASSWORD"
	AuditChangeEmail       AuditKind = "CHANGE_EMAIL"
	AuditChangeDisplayName AuditKind = "CHANGE_DISPLAY_NAME"
)

// ParseAuditKind maps a stored value to an AuditKind.
func ParseAuditKind(value string) (AuditKind, bool) {
	switch AuditKind(value) {
	case AuditLogin, AuditRegister, AuditChangePassword, AuditChangeEmail, AuditChangeDisplayName:
		return AuditKind(value), true
	}
	return "", false
}

// AuditEntry records one account event. Entries are append-only and are never
// mutated or deleted once written.
type AuditEntry struct {
	AccountID  uuid.UUID
	Kind       AuditKind
	OccurredAt time.Time
	Payload    string
}
