// Package storage defines the store contracts the core services depend on.
// Implementations live in the subpackages: memory (tests, local dev),
// postgres (production write store) and rediscache (read-through decorator).
package storage

import (
	"context"
	"errors"

	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/models"
)

// ErrNotFound is returned by any lookup whose key is absent. Services map it
// to the appropriate apperr kind; stores stay transport- and domain-agnostic.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a write violates a uniqueness constraint.
var ErrConflict = errors.New("record already exists")

// UserStore is the identity store: user records indexed by id and by
// normalized email.
type UserStore interface {
	Put(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, normalizedEmail string) (*models.User, error)
	Delete(ctx context.Context, id string) error
	ExistsByEmail(ctx context.Context, normalizedEmail string) (bool, error)
}

// AccountStore holds account records keyed by account number plus the
// account->owner index. Owner operations are separate from Put/Delete so
// ownership can be reassigned without rewriting the account record.
type AccountStore interface {
	Put(ctx context.Context, account *models.Account) error
	GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error)
	GetAllByOwner(ctx context.Context, userID string) ([]models.Account, error)
	Delete(ctx context.Context, accountNumber string) error
	ExistsByNumber(ctx context.Context, accountNumber string) (bool, error)

	SetOwner(ctx context.Context, accountNumber, userID string) error
	GetOwner(ctx context.Context, accountNumber string) (string, error)
	ClearOwner(ctx context.Context, accountNumber string) error
}

// TransactionStore is the append-only per-account ledger.
type TransactionStore interface {
	Append(ctx context.Context, accountNumber string, transaction *models.Transaction) error
	ListByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error)
	GetByID(ctx context.Context, accountNumber, transactionID string) (*models.Transaction, error)
	DeleteAllForAccount(ctx context.Context, accountNumber string) error
}
