package repository

import (
	"path/filepath"
	"strings"

	"github.com/spec-kit/storefront-service/internal/codec"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/flatfile"
)

// AuditRepository persists the append-only audit log of one role.
type AuditRepository interface {
	LoadAll() ([]domain.AuditEntry, error)
	SaveAll(entries []domain.AuditEntry) error
}

type auditRepository struct {
	store *flatfile.Store[domain.AuditEntry]
}

// NewAuditRepository returns a flat-file-backed implementation scoped to one
// role's audit file. Entry order in the file is the order events occurred.
func NewAuditRepository(dataDir string, role domain.Role, reg *codec.Registry) AuditRepository {
	path := filepath.Join(dataDir, strings.ToLower(string(role))+"_audit_log.txt")
	return &auditRepository{store: flatfile.NewStore[domain.AuditEntry](path, reg, SerializerAuditEntry)}
}

func (r *auditRepository) LoadAll() ([]domain.AuditEntry, error) {
	return r.store.LoadAll()
}

func (r *auditRepository) SaveAll(entries []domain.AuditEntry) error {
	return r.store.SaveAll(entries)
}
