package repository

import (
	"path/filepath"
	"strings"

	"github.com/spec-kit/storefront-service/internal/codec"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/flatfile"
)

// AccountRepository persists the full account population of one role.
type AccountRepository interface {
	LoadAll() ([]domain.Account, error)
	SaveAll(accounts []domain.Account) error
}

type accountRepository struct {
	store *flatfile.Store[domain.Account]
}

// NewAccountRepository returns a flat-file-backed implementation scoped to
// one role's account file.
func NewAccountRepository(dataDir string, role domain.Role, reg *codec.Registry) AccountRepository {
	path := filepath.Join(dataDir, strings.ToLower(string(role))+"_accounts.txt")
	return &accountRepository{store: flatfile.NewStore[domain.Account](path, reg, SerializerAccount)}
}

func (r *accountRepository) LoadAll() ([]domain.Account, error) {
	return r.store.LoadAll()
}

func (r *accountRepository) SaveAll(accounts []domain.Account) error {
	return r.store.SaveAll(accounts)
}
