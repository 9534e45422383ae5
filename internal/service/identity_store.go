package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// IdentityStore manages one role's account population and its audit log.
// Every mutation persists before returning; a failed save leaves the
// in-memory population untouched.
type IdentityStore struct {
	role     domain.Role
	accounts []domain.Account
	audit    []domain.AuditEntry

	accountRepo repository.AccountRepository
	auditRepo   repository.AuditRepository

	bcryptCost        int
	minPasswordLength int
	logger            *zap.Logger
}

// IdentityDependencies encapsulates repo requirements for an identity store.
type IdentityDependencies struct {
	AccountRepo repository.AccountRepository
	AuditRepo   repository.AuditRepository
}

// NewIdentityStore builds the store for one role and loads its population.
func NewIdentityStore(role domain.Role, cfg config.AuthConfig, deps IdentityDependencies, logger *zap.Logger) (*IdentityStore, error) {
	s := &IdentityStore{
		role:              role,
		accountRepo:       deps.AccountRepo,
		auditRepo:         deps.AuditRepo,
		bcryptCost:        cfg.BcryptCost,
		minPasswordLength: cfg.MinPasswordLength,
		logger:            logger,
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Role returns the role this store owns.
func (s *IdentityStore) Role() domain.Role {
	return s.role
}

// Load clears in-memory state and re-reads both backing files.
func (s *IdentityStore) Load() error {
	accounts, err := s.accountRepo.LoadAll()
	if err != nil {
		return err
	}
	audit, err := s.auditRepo.LoadAll()
	if err != nil {
		return err
	}
	s.accounts = accounts
	s.audit = audit
	return nil
}

// Register creates a new account, records a REGISTER audit entry and
// persists both files.
func (s *IdentityStore) Register(email, displayName, password string) (domain.Account, error) {
	if _, exists := s.GetByEmail(email); exists {
		return domain.Account{}, ErrDuplicateEmail
	}
	if !auth.ValidEmail(email) {
		return domain.Account{}, ErrInvalidEmail
	}
	if !auth.StrongPassword(password, s.minPasswordLength) {
		return domain.Account{}, ErrWeakPassword
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return domain.Account{}, err
	}

	// Collisions are astronomically unlikely but still retried against the
	// current population rather than assumed away.
	id := uuid.New()
	for {
		if _, taken := s.GetByID(id); !taken {
			break
		}
		id = uuid.New()
	}

	account := domain.Account{
		Role:         s.role,
		ID:           id,
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
	}

	accounts := append(s.copyAccounts(), account)
	audit := s.appendAudit(account.ID, domain.AuditRegister, "")
	if err := s.persist(accounts, audit); err != nil {
		return domain.Account{}, err
	}

	s.logger.Info("account registered",
		zap.String("role", string(s.role)),
		zap.String("account_id", account.ID.String()))
	return account, nil
}

// Login verifies credentials. A missing account and a wrong password fail
// with the same error so callers cannot enumerate registered emails.
func (s *IdentityStore) Login(email, password string) (domain.Account, error) {
	account, exists := s.GetByEmail(email)
	if !exists {
		return domain.Account{}, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return domain.Account{}, ErrInvalidCredentials
	}

	audit := s.appendAudit(account.ID, domain.AuditLogin, "")
	if err := s.persist(s.copyAccounts(), audit); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

// ChangePassword replaces the credential after verifying the old one.
func (s *IdentityStore) ChangePassword(id uuid.UUID, oldPassword, newPassword string) error {
	idx := s.indexByID(id)
	if idx < 0 {
		return ErrInvalidCredentials
	}
	current := s.accounts[idx]

	if err := auth.ComparePassword(current.PasswordHash, oldPassword); err != nil {
		return ErrInvalidCredentials
	}
	if auth.ComparePassword(current.PasswordHash, newPassword) == nil {
		return ErrPasswordUnchanged
	}
	if !auth.StrongPassword(newPassword, s.minPasswordLength) {
		return ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	accounts := s.copyAccounts()
	accounts[idx].PasswordHash = hash
	audit := s.appendAudit(id, domain.AuditChangePassword, "")
	return s.persist(accounts, audit)
}

// ChangeEmail updates the address after re-validating grammar and uniqueness
// within this role's population.
func (s *IdentityStore) ChangeEmail(id uuid.UUID, newEmail string) error {
	idx := s.indexByID(id)
	if idx < 0 {
		return ErrInvalidCredentials
	}
	if other, exists := s.GetByEmail(newEmail); exists && other.ID != id {
		return ErrDuplicateEmail
	}
	if !auth.ValidEmail(newEmail) {
		return ErrInvalidEmail
	}

	accounts := s.copyAccounts()
	previous := accounts[idx].Email
	accounts[idx].Email = newEmail
	audit := s.appendAudit(id, domain.AuditChangeEmail, previous)
	return s.persist(accounts, audit)
}

// ChangeDisplayName updates the display name.
func (s *IdentityStore) ChangeDisplayName(id uuid.UUID, displayName string) error {
	idx := s.indexByID(id)
	if idx < 0 {
		return ErrInvalidCredentials
	}

	accounts := s.copyAccounts()
	previous := accounts[idx].DisplayName
	accounts[idx].DisplayName = displayName
	audit := s.appendAudit(id, domain.AuditChangeDisplayName, previous)
	return s.persist(accounts, audit)
}

// Delete removes the account from the population. Cross-store consequences
// (orphaned catalog items, order history) are the caller's concern.
func (s *IdentityStore) Delete(id uuid.UUID) error {
	idx := s.indexByID(id)
	if idx < 0 {
		return nil
	}

	accounts := s.copyAccounts()
	accounts = append(accounts[:idx], accounts[idx+1:]...)
	return s.persist(accounts, s.copyAudit())
}

// GetByEmail scans for an account with the given address.
func (s *IdentityStore) GetByEmail(email string) (domain.Account, bool) {
	for _, account := range s.accounts {
		if account.Email == email {
			return account, true
		}
	}
	return domain.Account{}, false
}

// GetByID scans for an account with the given id.
func (s *IdentityStore) GetByID(id uuid.UUID) (domain.Account, bool) {
	idx := s.indexByID(id)
	if idx < 0 {
		return domain.Account{}, false
	}
	return s.accounts[idx], true
}

// Accounts returns a copy of the population.
func (s *IdentityStore) Accounts() []domain.Account {
	return s.copyAccounts()
}

// AuditLog returns a copy of the audit entries in the order they occurred.
func (s *IdentityStore) AuditLog() []domain.AuditEntry {
	return s.copyAudit()
}

func (s *IdentityStore) indexByID(id uuid.UUID) int {
	for i, account := range s.accounts {
		if account.ID == id {
			return i
		}
	}
	return -1
}

func (s *IdentityStore) copyAccounts() []domain.Account {
	return append([]domain.Account(nil), s.accounts...)
}

func (s *IdentityStore) copyAudit() []domain.AuditEntry {
	return append([]domain.AuditEntry(nil), s.audit...)
}

func (s *IdentityStore) appendAudit(id uuid.UUID, kind domain.AuditKind, payload string) []domain.AuditEntry {
	return append(s.copyAudit(), domain.AuditEntry{
		AccountID:  id,
		Kind:       kind,
		OccurredAt: time.Now(),
		Payload:    payload,
	})
}

// persist writes both files and only then commits the new state in memory.
func (s *IdentityStore) persist(accounts []domain.Account, audit []domain.AuditEntry) error {
	if err := s.accountRepo.SaveAll(accounts); err != nil {
		return err
	}
	if err := s.auditRepo.SaveAll(audit); err != nil {
		return err
	}
	s.accounts = accounts
	s.audit = audit
	return nil
}
