// Package memory provides mutex-guarded in-memory implementations of the
// store contracts. Used by the test suite and as the default store when no
// DATABASE_URL is configured.
package memory

import (
	"context"
	"sync"

	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/models"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/storage"
)

// UserStore indexes users by id and by normalized email.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]models.User
	byEmail map[string]string // email -> user id
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:    make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func (s *UserStore) Put(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.byID[user.ID]; ok && prev.Email != user.Email {
		delete(s.byEmail, prev.Email)
	}
	s.byID[user.ID] = *user
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, normalizedEmail string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[normalizedEmail]
	if !ok {
		return nil, storage.ErrNotFound
	}
	user := s.byID[id]
	return &user, nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	delete(s.byID, id)
	delete(s.byEmail, user.Email)
	return nil
}

func (s *UserStore) ExistsByEmail(ctx context.Context, normalizedEmail string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[normalizedEmail]
	return ok, nil
}

// AccountStore holds account records plus the account->owner index.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]models.Account
	owners   map[string]string // account number -> user id
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]models.Account),
		owners:   make(map[string]string),
	}
}

func (s *AccountStore) Put(ctx context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.AccountNumber] = *account
	return nil
}

func (s *AccountStore) GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[accountNumber]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &account, nil
}

func (s *AccountStore) GetAllByOwner(ctx context.Context, userID string) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var accounts []models.Account
	for number, owner := range s.owners {
		if owner != userID {
			continue
		}
		if account, ok := s.accounts[number]; ok {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}

func (s *AccountStore) Delete(ctx context.Context, accountNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[accountNumber]; !ok {
		return storage.ErrNotFound
	}
	delete(s.accounts, accountNumber)
	return nil
}

func (s *AccountStore) ExistsByNumber(ctx context.Context, accountNumber string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[accountNumber]
	return ok, nil
}

func (s *AccountStore) SetOwner(ctx context.Context, accountNumber, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners[accountNumber] = userID
	return nil
}

func (s *AccountStore) GetOwner(ctx context.Context, accountNumber string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owner, ok := s.owners[accountNumber]
	if !ok {
		return "", storage.ErrNotFound
	}
	return owner, nil
}

func (s *AccountStore) ClearOwner(ctx context.Context, accountNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.owners, accountNumber)
	return nil
}

// TransactionStore keeps an append-only slice of transactions per account.
type TransactionStore struct {
	mu      sync.RWMutex
	ledgers map[string][]models.Transaction
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{ledgers: make(map[string][]models.Transaction)}
}

func (s *TransactionStore) Append(ctx context.Context, accountNumber string, transaction *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledgers[accountNumber] = append(s.ledgers[accountNumber], *transaction)
	return nil
}

func (s *TransactionStore) ListByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ledger := s.ledgers[accountNumber]
	out := make([]models.Transaction, len(ledger))
	copy(out, ledger)
	return out, nil
}

func (s *TransactionStore) GetByID(ctx context.Context, accountNumber, transactionID string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tx := range s.ledgers[accountNumber] {
		if tx.ID == transactionID {
			t := tx
			return &t, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *TransactionStore) DeleteAllForAccount(ctx context.Context, accountNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ledgers, accountNumber)
	return nil
}
