package service

import (
	"context"
	"strings"
	"testing"

	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/apperr"
	"github.com/YigitCengiz7/Barclays-Take-Home-Test/internal/models"
)

func TestCreateTransactionBalanceArithmetic(t *testing.T) {
	tests := []struct {
		name        string
		setup       float64 // initial deposit, 0 to skip
		txType      string
		amount      float64
		wantBalance float64
	}{
		{"deposit adds", 0, models.TransactionDeposit, 100.00, 100.00},
		{"credit adds", 50.00, models.TransactionCredit, 25.50, 75.50},
		{"withdrawal subtracts", 100.00, models.TransactionWithdrawal, 40.25, 59.75},
		{"debit subtracts", 100.00, models.TransactionDebit, 30.00, 70.00},
		{"debit may overdraw", 10.00, models.TransactionDebit, 25.00, -15.00},
		{"sum rounds at cent granularity", 0.10, models.TransactionDeposit, 0.20, 0.30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			ctx := context.Background()
			user := mustCreateUser(t, env, "Jane", "jane@example.com")
			account := mustCreateAccount(t, env, user.ID)
			if tt.setup > 0 {
				mustDeposit(t, env, account.AccountNumber, user.ID, tt.setup)
			}

			tx, err := env.transactions.Create(ctx, account.AccountNumber, user.ID, CreateTransactionInput{
				Amount:   tt.amount,
				Currency: models.CurrencyGBP,
				Type:     tt.txType,
			})
			if err != nil {
				t.Fatalf("Create returned error: %v", err)
			}
			if !strings.HasPrefix(tx.ID, "tan-") {
				t.Errorf("transaction id %q lacks tan- prefix", tx.ID)
			}
			if tx.Amount != tt.amount || tx.Type != tt.txType {
				t.Errorf("stored transaction %v does not echo input", tx)
			}

			account2, err := env.accounts.Fetch(ctx, account.AccountNumber, user.ID)
			if err != nil {
				t.Fatalf("Fetch returned error: %v", err)
			}
			if account2.Balance != tt.wantBalance {
				t.Errorf("expected balance %.2f, got %.2f", tt.wantBalance, account2.Balance)
			}
		})
	}
}

func TestCreateTransactionInsufficientFunds(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	user := mustCreateUser(t, env, "Jane", "jane@example.com")
	account := mustCreateAccount(t, env, user.ID)
	mustDeposit(t, env, account.AccountNumber, user.ID, 100.00)

	_, err := env.transactions.Create(ctx, account.AccountNumber, user.ID, CreateTransactionInput{
		Amount:   150.00,
		Currency: models.CurrencyGBP,
		Type:     models.TransactionWithdrawal,
	})
	if !apperr.IsKind(err, apperr.KindUnprocessable) {
		t.Fatalf("expected Unprocessable, got %v", err)
	}

	// A rejected withdrawal must leave both the balance and the ledger alone.
	account2, err := env.accounts.Fetch(ctx, account.AccountNumber, user.ID)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if account2.Balance != 100.00 {
		t.Errorf("balance changed after rejected withdrawal: %.2f", account2.Balance)
	}
	ledger, err := env.transactions.List(ctx, account.AccountNumber, user.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(ledger) != 1 {
		t.Errorf("rejected withdrawal must not be recorded, ledger has %d entries", len(ledger))
	}
}

func TestCreateTransactionExactBalanceWithdrawal(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	user := mustCreateUser(t, env, "Jane", "jane@example.com")
	account := mustCreateAccount(t, env, user.ID)
	mustDeposit(t, env, account.AccountNumber, user.ID, 100.00)

	_, err := env.transactions.Create(ctx, account.AccountNumber, user.ID, CreateTransactionInput{
		Amount:   100.00,
		Currency: models.CurrencyGBP,
		Type:     models.TransactionWithdrawal,
	})
	if err != nil {
		t.Fatalf("withdrawing the exact balance should succeed: %v", err)
	}

	account2, _ := env.accounts.Fetch(ctx, account.AccountNumber, user.ID)
	if account2.Balance != 0.00 {
		t.Errorf("expected zero balance, got %.2f", account2.Balance)
	}
}

func TestCreateTransactionInvalidInput(t *testing.T) {
	env := newTestEnv()
	user := mustCreateUser(t, env, "Jane", "jane@example.com")
	account := mustCreateAccount(t, env, user.ID)

	tests := []struct {
		name  string
		input CreateTransactionInput
	}{
		{"zero amount", CreateTransactionInput{Amount: 0, Currency: models.CurrencyGBP, Type: models.TransactionDeposit}},
		{"amount below minimum", CreateTransactionInput{Amount: 0.001, Currency: models.CurrencyGBP, Type: models.TransactionDeposit}},
		{"amount above maximum", CreateTransactionInput{Amount: 10000.01, Currency: models.CurrencyGBP, Type: models.TransactionDeposit}},
		{"negative amount", CreateTransactionInput{Amount: -5.00, Currency: models.CurrencyGBP, Type: models.TransactionDeposit}},
		{"unsupported currency", CreateTransactionInput{Amount: 10.00, Currency: "USD", Type: models.TransactionDeposit}},
		{"unknown type", CreateTransactionInput{Amount: 10.00, Currency: models.CurrencyGBP, Type: "transfer"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.transactions.Create(context.Background(), account.AccountNumber, user.ID, tt.input)
			if !apperr.IsKind(err, apperr.KindInvalidInput) {
				t.Errorf("expected InvalidInput, got %v", err)
			}
		})
	}
}

func TestCreateTransactionAccessControl(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	owner := mustCreateUser(t, env, "Jane", "jane@example.com")
	stranger := mustCreateUser(t, env, "John", "john@example.com")
	account := mustCreateAccount(t, env, owner.ID)

	input := CreateTransactionInput{Amount: 10.00, Currency: models.CurrencyGBP, Type: models.TransactionDeposit}

	if _, err := env.transactions.Create(ctx, account.AccountNumber, stranger.ID, input); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("expected Forbidden, got %v", err)
	}
	if _, err := env.transactions.Create(ctx, "01999999", owner.ID, input); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestListTransactionsInsertionOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	user := mustCreateUser(t, env, "Jane", "jane@example.com")
	account := mustCreateAccount(t, env, user.ID)

	first := mustDeposit(t, env, account.AccountNumber, user.ID, 10.00)
	second := mustDeposit(t, env, account.AccountNumber, user.ID, 20.00)
	third := mustDeposit(t, env, account.AccountNumber, user.ID, 30.00)

	ledger, err := env.transactions.List(ctx, account.AccountNumber, user.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(ledger) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(ledger))
	}
	wantOrder := []string{first.ID, second.ID, third.ID}
	for i, want := range wantOrder {
		if ledger[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, ledger[i].ID)
		}
	}
}

func TestFetchTransaction(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	owner := mustCreateUser(t, env, "Jane", "jane@example.com")
	stranger := mustCreateUser(t, env, "John", "john@example.com")
	account := mustCreateAccount(t, env, owner.ID)
	otherAccount := mustCreateAccount(t, env, owner.ID)
	tx := mustDeposit(t, env, account.AccountNumber, owner.ID, 10.00)

	got, err := env.transactions.Fetch(ctx, account.AccountNumber, tx.ID, owner.ID)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if got.ID != tx.ID || got.Amount != 10.00 {
		t.Errorf("fetched wrong transaction: %+v", got)
	}

	// A transaction is only visible through the account it was posted to.
	if _, err := env.transactions.Fetch(ctx, otherAccount.AccountNumber, tx.ID, owner.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound via wrong account, got %v", err)
	}
	if _, err := env.transactions.Fetch(ctx, account.AccountNumber, "tan-000000000", owner.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected NotFound for unknown transaction, got %v", err)
	}
	if _, err := env.transactions.Fetch(ctx, account.AccountNumber, tx.ID, stranger.ID); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("expected Forbidden for non-owner, got %v", err)
	}
}

// TestAccountLifecycleScenario walks a user through registration, account
// opening, a deposit, a rejected withdrawal and a successful one.
func TestAccountLifecycleScenario(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	jane, err := env.users.Create(ctx, CreateUserInput{
		Name:     "Jane Doe",
		Email:    "  Jane@Example.com ",
		Password: "correct-horse-battery",
		Address:  models.Address{Line1: "1 High Street", Town: "London", County: "Greater London", Postcode: "E1 6AN"},
	})
	if err != nil {
		t.Fatalf("failed to register Jane: %v", err)
	}
	if jane.Email != "jane@example.com" {
		t.Fatalf("email not normalized: %q", jane.Email)
	}

	account, err := env.accounts.Create(ctx, jane.ID, "Jane's Account", models.AccountTypePersonal)
	if err != nil {
		t.Fatalf("failed to open account: %v", err)
	}
	if !accountNumberRe.MatchString(account.AccountNumber) || account.Balance != 0 {
		t.Fatalf("unexpected new account state: %+v", account)
	}

	mustDeposit(t, env, account.AccountNumber, jane.ID, 100.00)

	if _, err := env.transactions.Create(ctx, account.AccountNumber, jane.ID, CreateTransactionInput{
		Amount: 150.00, Currency: models.CurrencyGBP, Type: models.TransactionWithdrawal,
	}); !apperr.IsKind(err, apperr.KindUnprocessable) {
		t.Fatalf("overdrawing withdrawal should be rejected, got %v", err)
	}

	if _, err := env.transactions.Create(ctx, account.AccountNumber, jane.ID, CreateTransactionInput{
		Amount: 50.00, Currency: models.CurrencyGBP, Type: models.TransactionWithdrawal,
	}); err != nil {
		t.Fatalf("withdrawal failed: %v", err)
	}

	account2, _ := env.accounts.Fetch(ctx, account.AccountNumber, jane.ID)
	if account2.Balance != 50.00 {
		t.Errorf("expected final balance 50.00, got %.2f", account2.Balance)
	}
	ledger, _ := env.transactions.List(ctx, account.AccountNumber, jane.ID)
	if len(ledger) != 2 {
		t.Errorf("expected 2 ledger entries, got %d", len(ledger))
	}
}
