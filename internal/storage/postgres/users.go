package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/models"
)

// UserStore persists user records in the users table, keyed by id with a
// unique index on email.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Put(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, phone_number,
			address_line1, address_line2, address_line3, address_town, address_county, address_postcode,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash, phone_number = EXCLUDED.phone_number,
			address_line1 = EXCLUDED.address_line1, address_line2 = EXCLUDED.address_line2,
			address_line3 = EXCLUDED.address_line3, address_town = EXCLUDED.address_town,
			address_county = EXCLUDED.address_county, address_postcode = EXCLUDED.address_postcode,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.PhoneNumber,
		user.Address.Line1, nullString(user.Address.Line2), nullString(user.Address.Line3),
		user.Address.Town, user.Address.County, user.Address.Postcode,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", translateErr(err))
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.getWhere(ctx, "id = $1", id)
}

func (s *UserStore) GetByEmail(ctx context.Context, normalizedEmail string) (*models.User, error) {
	return s.getWhere(ctx, "email = $1", normalizedEmail)
}

func (s *UserStore) getWhere(ctx context.Context, where, arg string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, phone_number,
			   address_line1, address_line2, address_line3, address_town, address_county, address_postcode,
			   created_at, updated_at
		FROM users
		WHERE ` + where
	var user models.User
	var line2, line3 sql.NullString

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.PhoneNumber,
		&user.Address.Line1, &line2, &line3, &user.Address.Town, &user.Address.County, &user.Address.Postcode,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	user.Address.Line2 = line2.String
	user.Address.Line3 = line3.String
	return &user, nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
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

func (s *UserStore) ExistsByEmail(ctx context.Context, normalizedEmail string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, normalizedEmail,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}
