package service

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/apperr"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/events"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/models"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/storage"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/utils"
)

// Transaction amount bounds, enforced again here in case a caller bypasses
// request validation.
const (
	minTransactionAmount = 0.01
	maxTransactionAmount = 10000.00
)

// TransactionService posts transactions against accounts and reads the
// per-account ledger. All balance arithmetic happens here, under the account
// lock shared with the account manager.
type TransactionService struct {
	accounts *AccountService
	ledger   storage.TransactionStore
	events   events.Publisher
}

func NewTransactionService(accounts *AccountService, ledger storage.TransactionStore, publisher events.Publisher) *TransactionService {
	return &TransactionService{
		accounts: accounts,
		ledger:   ledger,
		events:   publisher,
	}
}

// CreateTransactionInput carries the client-supplied transaction fields.
type CreateTransactionInput struct {
	Amount    float64
	Currency  string
	Type      string
	Reference string
}

// Create posts a transaction: ownership check, funds check for withdrawals,
// balance update, ledger append. The whole sequence runs under the account
// lock; a failed ledger append rolls the balance back so the two writes are
// never visibly out of step.
func (s *TransactionService) Create(ctx context.Context, accountNumber, userID string, in CreateTransactionInput) (*models.Transaction, error) {
	if err := validateTransactionInput(in); err != nil {
		return nil, err
	}

	unlock := s.accounts.lockAccount(accountNumber)
	defer unlock()

	account, err := s.accounts.fetchOwned(ctx, accountNumber, userID)
	if err != nil {
		return nil, err
	}

	// Only withdrawals are subject to the funds check. Debits intentionally
	// may drive the balance negative; see the compatibility note in DESIGN.md.
	if in.Type == models.TransactionWithdrawal && in.Amount > account.Balance {
		return nil, apperr.Unprocessable("insufficient funds")
	}

	oldBalance := account.Balance
	newBalance := applyAmount(account.Balance, in.Amount, in.Type)

	if err := s.accounts.applyBalance(ctx, account, newBalance); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		ID:            utils.GenerateNumericID("tan", 9),
		AccountNumber: accountNumber,
		UserID:        userID,
		Amount:        in.Amount,
		Currency:      in.Currency,
		Type:          in.Type,
		Reference:     in.Reference,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.ledger.Append(ctx, accountNumber, transaction); err != nil {
		// Undo the balance write so the balance and the ledger stay consistent.
		if undoErr := s.accounts.applyBalance(ctx, account, oldBalance); undoErr != nil {
			log.Printf("Failed to restore balance for account %s after ledger append failure: %v", accountNumber, undoErr)
		}
		return nil, err
	}

	if err := s.events.Publish(ctx, events.TransactionEventsStream, events.TransactionCreated, events.TransactionCreatedEvent{
		TransactionID: transaction.ID,
		AccountNumber: accountNumber,
		UserID:        userID,
		Amount:        in.Amount,
		Type:          in.Type,
		Currency:      in.Currency,
	}); err != nil {
		log.Printf("Failed to publish transaction.created event: %v", err)
	}
	if err := s.events.Publish(ctx, events.AccountEventsStream, events.BalanceUpdated, events.BalanceUpdatedEvent{
		AccountNumber: accountNumber,
		NewBalance:    newBalance,
		Change:        in.Amount,
	}); err != nil {
		log.Printf("Failed to publish balance.updated event: %v", err)
	}
	return transaction, nil
}

// List returns the account's full ledger in insertion order, subject to the
// ownership check.
func (s *TransactionService) List(ctx context.Context, accountNumber, userID string) ([]models.Transaction, error) {
	if _, err := s.accounts.fetchOwned(ctx, accountNumber, userID); err != nil {
		return nil, err
	}
	return s.ledger.ListByAccount(ctx, accountNumber)
}

// Fetch returns a single transaction from an owned account's ledger.
func (s *TransactionService) Fetch(ctx context.Context, accountNumber, transactionID, userID string) (*models.Transaction, error) {
	if _, err := s.accounts.fetchOwned(ctx, accountNumber, userID); err != nil {
		return nil, err
	}
	transaction, err := s.ledger.GetByID(ctx, accountNumber, transactionID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound("transaction not found")
	}
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

func validateTransactionInput(in CreateTransactionInput) error {
	switch in.Type {
	case models.TransactionDeposit, models.TransactionWithdrawal,
		models.TransactionCredit, models.TransactionDebit:
	default:
		return apperr.InvalidInput("unsupported transaction type")
	}
	if in.Amount < minTransactionAmount || in.Amount > maxTransactionAmount {
		return apperr.InvalidInput("amount must be between 0.01 and 10000.00")
	}
	if in.Currency != models.CurrencyGBP {
		return apperr.InvalidInput("unsupported currency")
	}
	return nil
}

// applyAmount computes the balance after a transaction, rounded half-up at
// cent granularity.
func applyAmount(balance, amount float64, transactionType string) float64 {
	switch transactionType {
	case models.TransactionDeposit, models.TransactionCredit:
		balance += amount
	case models.TransactionWithdrawal, models.TransactionDebit:
		balance -= amount
	}
	return math.Round(balance*100) / 100
}
