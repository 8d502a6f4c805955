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

// UserService manages user identities. It leans on the account manager to
// block deletion of users that still own accounts.
type UserService struct {
	store    storage.UserStore
	accounts *AccountService
	events   events.Publisher
}

func NewUserService(store storage.UserStore, accounts *AccountService, publisher events.Publisher) *UserService {
	return &UserService{
		store:    store,
		accounts: accounts,
		events:   publisher,
	}
}

type CreateUserInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	Address     models.Address
}

// UpdateUserPatch distinguishes absent fields (nil) from present-but-empty
// ones. Name keeps its stored value when blank; PhoneNumber is replaced
// whenever present, including with an empty value; Address replaces the
// stored address wholesale.
type UpdateUserPatch struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	Address     *models.Address
}

// Create registers a new identity. Email is normalized (trimmed, lowercased)
// before the uniqueness check and is stored in that form.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	email := utils.NormalizeEmail(in.Email)
	if email == "" {
		return nil, apperr.InvalidInput("email must not be blank")
	}

	exists, err := s.store.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("user with this email already exists")
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           utils.GenerateID("usr"),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: passwordHash,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.Put(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, apperr.Conflict("user with this email already exists")
		}
		return nil, err
	}

	if err := s.events.Publish(ctx, events.UserEventsStream, events.UserCreated, events.UserCreatedEvent{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}); err != nil {
		log.Printf("Failed to publish user.created event: %v", err)
	}
	return user, nil
}

// Fetch returns a user's own record. Users may only read themselves; an
// unknown id reads as NotFound before the ownership check applies.
func (s *UserService) Fetch(ctx context.Context, userID, principalID string) (*models.User, error) {
	user, err := s.store.GetByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	if err := Authorize(userID, principalID); err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail looks a user up by normalized email. An absent or blank email
// yields an empty result, not an error.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	user, err := s.store.GetByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial update to the caller's own record. A changed email
// is re-checked for uniqueness against all other identities; re-saving the
// current email is not a conflict.
func (s *UserService) Update(ctx context.Context, userID, principalID string, patch UpdateUserPatch) (*models.User, error) {
	user, err := s.store.GetByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	if err := Authorize(userID, principalID); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != "" {
			user.Name = name
		}
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Email != nil {
		if email := utils.NormalizeEmail(*patch.Email); email != "" && email != user.Email {
			exists, err := s.store.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, apperr.Conflict("user with this email already exists")
			}
			user.Email = email
		}
	}
	if patch.Address != nil {
		user.Address = *patch.Address
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.store.Put(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, apperr.Conflict("user with this email already exists")
		}
		return nil, err
	}

	if err := s.events.Publish(ctx, events.UserEventsStream, events.UserUpdated, events.UserUpdatedEvent{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}); err != nil {
		log.Printf("Failed to publish user.updated event: %v", err)
	}
	return user, nil
}

// Delete removes the caller's own identity, rejecting with Conflict while the
// user still owns any bank account.
func (s *UserService) Delete(ctx context.Context, userID, principalID string) error {
	if _, err := s.store.GetByID(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return err
	}
	if err := Authorize(userID, principalID); err != nil {
		return err
	}

	hasAccounts, err := s.accounts.HasAnyAccount(ctx, userID)
	if err != nil {
		return err
	}
	if hasAccounts {
		return apperr.Conflict("a user cannot be deleted when they are associated with a bank account")
	}

	if err := s.store.Delete(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return err
	}

	if err := s.events.Publish(ctx, events.UserEventsStream, events.UserDeleted, events.UserDeletedEvent{
		UserID: userID,
	}); err != nil {
		log.Printf("Failed to publish user.deleted event: %v", err)
	}
	return nil
}
