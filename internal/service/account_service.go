package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/apperr"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/events"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/models"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/storage"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/utils"
)

// maxAccountNumberAttempts bounds the verified-unique generation loop. At any
// realistic account count the first attempt succeeds; the bound only guards
// against a near-full number space.
const maxAccountNumberAttempts = 20

// AccountService manages bank account records and their ownership links.
type AccountService struct {
	store  storage.AccountStore
	ledger storage.TransactionStore
	events events.Publisher
	locks  *accountLocks
}

func NewAccountService(store storage.AccountStore, ledger storage.TransactionStore, publisher events.Publisher) *AccountService {
	return &AccountService{
		store:  store,
		ledger: ledger,
		events: publisher,
		locks:  newAccountLocks(),
	}
}

// UpdateAccountPatch carries the client-settable account fields. A blank Name
// or AccountType leaves the stored value unchanged. Balance, currency, sort
// code and the creation timestamp are never client-settable.
type UpdateAccountPatch struct {
	Name        string
	AccountType string
}

// Create opens a new account for userID with a zero balance. The account
// record and its ownership link are two writes; if the second fails the first
// is rolled back so a half-created account is never visible.
func (s *AccountService) Create(ctx context.Context, userID, name, accountType string) (*models.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.InvalidInput("account name must not be blank")
	}
	if accountType == "" {
		accountType = models.AccountTypePersonal
	}
	if accountType != models.AccountTypePersonal {
		return nil, apperr.InvalidInput("unsupported account type")
	}

	accountNumber, err := s.uniqueAccountNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &models.Account{
		AccountNumber: accountNumber,
		SortCode:      models.DefaultSortCode,
		Name:          name,
		AccountType:   accountType,
		Balance:       0.00,
		Currency:      models.CurrencyGBP,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	unlock := s.locks.acquire(accountNumber)
	defer unlock()

	if err := s.store.Put(ctx, account); err != nil {
		return nil, err
	}
	if err := s.store.SetOwner(ctx, accountNumber, userID); err != nil {
		if delErr := s.store.Delete(ctx, accountNumber); delErr != nil {
			log.Printf("Failed to roll back account %s after owner write failure: %v", accountNumber, delErr)
		}
		return nil, err
	}

	if err := s.events.Publish(ctx, events.AccountEventsStream, events.AccountCreated, events.AccountCreatedEvent{
		AccountNumber: account.AccountNumber,
		UserID:        userID,
		Name:          account.Name,
		AccountType:   account.AccountType,
	}); err != nil {
		log.Printf("Failed to publish account.created event: %v", err)
	}
	return account, nil
}

// List returns every account owned by userID. Order is unspecified.
func (s *AccountService) List(ctx context.Context, userID string) ([]models.Account, error) {
	return s.store.GetAllByOwner(ctx, userID)
}

// Fetch returns the account if it exists and userID owns it.
func (s *AccountService) Fetch(ctx context.Context, accountNumber, userID string) (*models.Account, error) {
	return s.fetchOwned(ctx, accountNumber, userID)
}

// Update applies the patch to an owned account and refreshes its
// updatedTimestamp.
func (s *AccountService) Update(ctx context.Context, accountNumber, userID string, patch UpdateAccountPatch) (*models.Account, error) {
	unlock := s.locks.acquire(accountNumber)
	defer unlock()

	account, err := s.fetchOwned(ctx, accountNumber, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(patch.Name); name != "" {
		account.Name = name
	}
	if patch.AccountType != "" {
		if patch.AccountType != models.AccountTypePersonal {
			return nil, apperr.InvalidInput("unsupported account type")
		}
		account.AccountType = patch.AccountType
	}
	account.UpdatedAt = time.Now().UTC()

	if err := s.store.Put(ctx, account); err != nil {
		return nil, err
	}

	if err := s.events.Publish(ctx, events.AccountEventsStream, events.AccountUpdated, events.AccountUpdatedEvent{
		AccountNumber: account.AccountNumber,
		Name:          account.Name,
	}); err != nil {
		log.Printf("Failed to publish account.updated event: %v", err)
	}
	return account, nil
}

// Delete removes an owned account, its ownership link and its transaction
// history. Nothing prevents deleting an account with a non-zero balance.
func (s *AccountService) Delete(ctx context.Context, accountNumber, userID string) error {
	unlock := s.locks.acquire(accountNumber)
	defer unlock()

	if _, err := s.fetchOwned(ctx, accountNumber, userID); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, accountNumber); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("bank account not found")
		}
		return err
	}
	if err := s.store.ClearOwner(ctx, accountNumber); err != nil {
		return err
	}
	if err := s.ledger.DeleteAllForAccount(ctx, accountNumber); err != nil {
		return err
	}

	if err := s.events.Publish(ctx, events.AccountEventsStream, events.AccountDeleted, events.AccountDeletedEvent{
		AccountNumber: accountNumber,
		UserID:        userID,
	}); err != nil {
		log.Printf("Failed to publish account.deleted event: %v", err)
	}
	return nil
}

// HasAnyAccount reports whether userID currently owns at least one account.
// The user manager uses this to gate identity deletion.
func (s *AccountService) HasAnyAccount(ctx context.Context, userID string) (bool, error) {
	accounts, err := s.store.GetAllByOwner(ctx, userID)
	if err != nil {
		return false, err
	}
	return len(accounts) > 0, nil
}

// fetchOwned loads an account and enforces ownership. An unknown account is
// NotFound; a known account whose ownership record is missing, unreadable or
// held by someone else is Forbidden. NotFound is checked first so an unknown
// account never leaks through the ownership error.
func (s *AccountService) fetchOwned(ctx context.Context, accountNumber, userID string) (*models.Account, error) {
	account, err := s.store.GetByNumber(ctx, accountNumber)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound("bank account not found")
	}
	if err != nil {
		return nil, err
	}

	owner, err := s.store.GetOwner(ctx, accountNumber)
	if err != nil {
		// Fails closed: an account with no determinable owner is denied.
		return nil, apperr.Forbidden("account ownership not found")
	}
	if err := Authorize(owner, userID); err != nil {
		return nil, err
	}
	return account, nil
}

// applyBalance persists a new balance through the regular account update
// path, refreshing updatedTimestamp. The caller must hold the account lock.
func (s *AccountService) applyBalance(ctx context.Context, account *models.Account, newBalance float64) error {
	account.Balance = newBalance
	account.UpdatedAt = time.Now().UTC()
	return s.store.Put(ctx, account)
}

// lockAccount exposes the per-account lock to the transaction manager, which
// needs to hold it across its fetch-check-write sequence.
func (s *AccountService) lockAccount(accountNumber string) func() {
	return s.locks.acquire(accountNumber)
}

func (s *AccountService) uniqueAccountNumber(ctx context.Context) (string, error) {
	for i := 0; i < maxAccountNumberAttempts; i++ {
		accountNumber := utils.GenerateAccountNumber()
		exists, err := s.store.ExistsByNumber(ctx, accountNumber)
		if err != nil {
			return "", err
		}
		if !exists {
			return accountNumber, nil
		}
	}
	return "", fmt.Errorf("could not allocate an unused account number after %d attempts", maxAccountNumberAttempts)
}
