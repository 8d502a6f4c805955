// Package events publishes and consumes domain events over Redis Streams.
// Events are notifications, not the source of truth: every state change is
// already durable in the store before its event is published.
package events

import (
	"context"
	"time"
)

// Event types
const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
	UserDeleted = "user.deleted"

	AccountCreated = "account.created"
	AccountUpdated = "account.updated"
	AccountDeleted = "account.deleted"

	TransactionCreated = "transaction.created"
	BalanceUpdated     = "balance.updated"
)

// Stream names
const (
	UserEventsStream        = "user.events"
	AccountEventsStream     = "account.events"
	TransactionEventsStream = "transaction.events"
)

// Publisher is the write-side event sink. The Redis Streams implementation is
// StreamPublisher; Discard drops everything when Redis is not configured.
type Publisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// Discard is a Publisher that drops all events.
type Discard struct{}

func (Discard) Publish(ctx context.Context, stream, eventType string, data any) error { return nil }

type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type UserCreatedEvent struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type UserUpdatedEvent struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type UserDeletedEvent struct {
	UserID string `json:"userId"`
}

type AccountCreatedEvent struct {
	AccountNumber string `json:"accountNumber"`
	UserID        string `json:"userId"`
	Name          string `json:"name"`
	AccountType   string `json:"accountType"`
}

type AccountUpdatedEvent struct {
	AccountNumber string `json:"accountNumber"`
	Name          string `json:"name"`
}

type AccountDeletedEvent struct {
	AccountNumber string `json:"accountNumber"`
	UserID        string `json:"userId"`
}

type TransactionCreatedEvent struct {
	TransactionID string  `json:"transactionId"`
	AccountNumber string  `json:"accountNumber"`
	UserID        string  `json:"userId"`
	Amount        float64 `json:"amount"`
	Type          string  `json:"type"`
	Currency      string  `json:"currency"`
}

type BalanceUpdatedEvent struct {
	AccountNumber string  `json:"accountNumber"`
	NewBalance    float64 `json:"newBalance"`
	Change        float64 `json:"change"`
}
