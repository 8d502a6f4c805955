package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/models"
)

// TransactionStore persists the append-only ledger. The seq column preserves
// insertion order per account.
type TransactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func (s *TransactionStore) Append(ctx context.Context, accountNumber string, transaction *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, account_number, user_id, amount, currency, type, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		transaction.ID, accountNumber, transaction.UserID,
		transaction.Amount, transaction.Currency, transaction.Type,
		nullString(transaction.Reference), transaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", translateErr(err))
	}
	return nil
}

func (s *TransactionStore) ListByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	query := `
		SELECT id, account_number, user_id, amount, currency, type, reference, created_at
		FROM transactions
		WHERE account_number = $1
		ORDER BY seq
	`
	rows, err := s.db.QueryContext(ctx, query, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *tx)
	}
	return transactions, rows.Err()
}

func (s *TransactionStore) GetByID(ctx context.Context, accountNumber, transactionID string) (*models.Transaction, error) {
	query := `
		SELECT id, account_number, user_id, amount, currency, type, reference, created_at
		FROM transactions
		WHERE account_number = $1 AND id = $2
	`
	row := s.db.QueryRowContext(ctx, query, accountNumber, transactionID)
	tx, err := scanTransaction(row.Scan)
	if err != nil {
		return nil, translateErr(err)
	}
	return tx, nil
}

func (s *TransactionStore) DeleteAllForAccount(ctx context.Context, accountNumber string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE account_number = $1`, accountNumber,
	); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	return nil
}

func scanTransaction(scan func(...any) error) (*models.Transaction, error) {
	var tx models.Transaction
	var reference sql.NullString
	err := scan(
		&tx.ID, &tx.AccountNumber, &tx.UserID,
		&tx.Amount, &tx.Currency, &tx.Type,
		&reference, &tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	tx.Reference = reference.String
	return &tx, nil
}
