package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/models"
)

// AccountStore persists account records and the account_owners index.
// Ownership deliberately lives in its own table so it can be reassigned
// without rewriting the account row.
type AccountStore struct {
	db *sql.DB
}

func NewAccountStore(db *sql.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Put(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (account_number, sort_code, name, account_type, balance, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (account_number) DO UPDATE SET
			name = EXCLUDED.name, account_type = EXCLUDED.account_type,
			balance = EXCLUDED.balance, updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		account.AccountNumber, account.SortCode, account.Name,
		account.AccountType, account.Balance, account.Currency,
		account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", translateErr(err))
	}
	return nil
}

func (s *AccountStore) GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	query := `
		SELECT account_number, sort_code, name, account_type, balance, currency, created_at, updated_at
		FROM accounts
		WHERE account_number = $1
	`
	var account models.Account
	err := s.db.QueryRowContext(ctx, query, accountNumber).Scan(
		&account.AccountNumber, &account.SortCode, &account.Name,
		&account.AccountType, &account.Balance, &account.Currency,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	return &account, nil
}

func (s *AccountStore) GetAllByOwner(ctx context.Context, userID string) ([]models.Account, error) {
	query := `
		SELECT a.account_number, a.sort_code, a.name, a.account_type, a.balance, a.currency, a.created_at, a.updated_at
		FROM accounts a
		JOIN account_owners o ON o.account_number = a.account_number
		WHERE o.user_id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var account models.Account
		if err := rows.Scan(
			&account.AccountNumber, &account.SortCode, &account.Name,
			&account.AccountType, &account.Balance, &account.Currency,
			&account.CreatedAt, &account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (s *AccountStore) Delete(ctx context.Context, accountNumber string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE account_number = $1`, accountNumber)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return translateErr(sql.ErrNoRows)
	}
	return nil
}

func (s *AccountStore) ExistsByNumber(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE account_number = $1)`, accountNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account number: %w", err)
	}
	return exists, nil
}

func (s *AccountStore) SetOwner(ctx context.Context, accountNumber, userID string) error {
	query := `
		INSERT INTO account_owners (account_number, user_id)
		VALUES ($1, $2)
		ON CONFLICT (account_number) DO UPDATE SET user_id = EXCLUDED.user_id
	`
	if _, err := s.db.ExecContext(ctx, query, accountNumber, userID); err != nil {
		return fmt.Errorf("failed to set account owner: %w", err)
	}
	return nil
}

func (s *AccountStore) GetOwner(ctx context.Context, accountNumber string) (string, error) {
	var userID string
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id FROM account_owners WHERE account_number = $1`, accountNumber,
	).Scan(&userID)
	if err != nil {
		return "", translateErr(err)
	}
	return userID, nil
}

func (s *AccountStore) ClearOwner(ctx context.Context, accountNumber string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM account_owners WHERE account_number = $1`, accountNumber,
	); err != nil {
		return fmt.Errorf("failed to clear account owner: %w", err)
	}
	return nil
}
