// Package postgres implements the store contracts on PostgreSQL via
// database/sql and lib/pq. Expected schema:
//
//	users(id, name, email, password_hash, phone_number,
//	      address_line1, address_line2, address_line3,
//	      address_town, address_county, address_postcode,
//	      created_at, updated_at)                       -- unique(email)
//	accounts(account_number, sort_code, name, account_type,
//	         balance, currency, created_at, updated_at)
//	account_owners(account_number, user_id)             -- the ownership index
//	transactions(id, account_number, user_id, amount, currency,
//	             type, reference, created_at, seq bigserial)
package postgres

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/storage"
)

const uniqueViolation = "23505"

// translateErr maps driver-level errors onto the storage sentinels.
func translateErr(err error) error {
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
		return storage.ErrConflict
	}
	return err
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
