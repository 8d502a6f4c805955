// Package rediscache decorates the account and user stores with a
// read-through Redis cache. Reads try Redis first and fall back to the inner
// store, warming the cache; writes go through to the inner store and refresh
// the cached view. Ownership lookups are never cached: the authorization path
// always reads from the source of truth.
package rediscache

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/cache"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/models"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/storage"
)

const (
	accountViewKeyPrefix = "account:view:"
	userViewKeyPrefix    = "user:view:"
)

// AccountStore wraps an AccountStore with cached GetByNumber reads.
type AccountStore struct {
	storage.AccountStore
	cache *cache.ViewCache[models.Account]
}

func NewAccountStore(inner storage.AccountStore, client *goredis.Client, ttl time.Duration) *AccountStore {
	return &AccountStore{
		AccountStore: inner,
		cache:        cache.NewViewCache[models.Account](client, ttl),
	}
}

func (s *AccountStore) Put(ctx context.Context, account *models.Account) error {
	if err := s.AccountStore.Put(ctx, account); err != nil {
		return err
	}
	s.cache.Set(ctx, accountViewKeyPrefix+account.AccountNumber, account)
	return nil
}

func (s *AccountStore) GetByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	key := accountViewKeyPrefix + accountNumber
	if account, ok := s.cache.Get(ctx, key); ok {
		return account, nil
	}
	account, err := s.AccountStore.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, account)
	return account, nil
}

func (s *AccountStore) Delete(ctx context.Context, accountNumber string) error {
	if err := s.AccountStore.Delete(ctx, accountNumber); err != nil {
		return err
	}
	s.cache.Delete(ctx, accountViewKeyPrefix+accountNumber)
	return nil
}

// userCacheEntry is the internal Redis representation of a user. Unlike
// models.User it serialises PasswordHash, so a read-through hit returns a
// record identical to the one in the inner store.
type userCacheEntry struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"passwordHash"`
	PhoneNumber  string         `json:"phoneNumber"`
	Address      models.Address `json:"address"`
	CreatedAt    time.Time      `json:"createdTimestamp"`
	UpdatedAt    time.Time      `json:"updatedTimestamp"`
}

func toUserEntry(u *models.User) *userCacheEntry {
	return &userCacheEntry{
		ID: u.ID, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash,
		PhoneNumber: u.PhoneNumber, Address: u.Address,
		CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func fromUserEntry(e *userCacheEntry) *models.User {
	return &models.User{
		ID: e.ID, Name: e.Name, Email: e.Email, PasswordHash: e.PasswordHash,
		PhoneNumber: e.PhoneNumber, Address: e.Address,
		CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt,
	}
}

// UserStore wraps a UserStore with cached GetByID reads. Email lookups pass
// through: they only serve registration and login, which are rare compared to
// principal lookups.
type UserStore struct {
	storage.UserStore
	cache *cache.ViewCache[userCacheEntry]
}

func NewUserStore(inner storage.UserStore, client *goredis.Client, ttl time.Duration) *UserStore {
	return &UserStore{
		UserStore: inner,
		cache:     cache.NewViewCache[userCacheEntry](client, ttl),
	}
}

func (s *UserStore) Put(ctx context.Context, user *models.User) error {
	if err := s.UserStore.Put(ctx, user); err != nil {
		return err
	}
	s.cache.Set(ctx, userViewKeyPrefix+user.ID, toUserEntry(user))
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	key := userViewKeyPrefix + id
	if entry, ok := s.cache.Get(ctx, key); ok {
		return fromUserEntry(entry), nil
	}
	user, err := s.UserStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, toUserEntry(user))
	return user, nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	if err := s.UserStore.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, userViewKeyPrefix+id)
	return nil
}
