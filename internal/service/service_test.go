package service

import (
	"context"
	"sync"
	"testing"

	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/models"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/storage/memory"
)

// capturePublisher records published event types for assertions.
type capturePublisher struct {
	mu    sync.Mutex
	types []string
}

func (p *capturePublisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, eventType)
	return nil
}

type testEnv struct {
	users        *UserService
	accounts     *AccountService
	transactions *TransactionService
	published    *capturePublisher
}

func newTestEnv() *testEnv {
	published := &capturePublisher{}
	accountStore := memory.NewAccountStore()
	transactionStore := memory.NewTransactionStore()
	userStore := memory.NewUserStore()

	accounts := NewAccountService(accountStore, transactionStore, published)
	transactions := NewTransactionService(accounts, transactionStore, published)
	users := NewUserService(userStore, accounts, published)

	return &testEnv{
		users:        users,
		accounts:     accounts,
		transactions: transactions,
		published:    published,
	}
}

func mustCreateUser(t *testing.T, env *testEnv, name, email string) *models.User {
	t.Helper()
	user, err := env.users.Create(context.Background(), CreateUserInput{
		Name:        name,
		Email:       email,
		Password:    "correct-horse-battery",
		PhoneNumber: "+441234567890",
		Address: models.Address{
			Line1:    "1 High Street",
			Town:     "London",
			County:   "Greater London",
			Postcode: "E1 6AN",
		},
	})
	if err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func mustCreateAccount(t *testing.T, env *testEnv, userID string) *models.Account {
	t.Helper()
	account, err := env.accounts.Create(context.Background(), userID, "Main Account", models.AccountTypePersonal)
	if err != nil {
		t.Fatalf("failed to create account for %s: %v", userID, err)
	}
	return account
}

func mustDeposit(t *testing.T, env *testEnv, accountNumber, userID string, amount float64) *models.Transaction {
	t.Helper()
	tx, err := env.transactions.Create(context.Background(), accountNumber, userID, CreateTransactionInput{
		Amount:   amount,
		Currency: models.CurrencyGBP,
		Type:     models.TransactionDeposit,
	})
	if err != nil {
		t.Fatalf("failed to deposit %.2f into %s: %v", amount, accountNumber, err)
	}
	return tx
}
