package withdrawal

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/storetest"
	"github.com/nyasamarket/escrow-service/internal/usecase/wallet"
)

func newTestUsecase(store *storetest.Store) *Usecase {
	return NewUsecase(store, store, store, wallet.NewLedger(), nil, nil, nil)
}

func validInput(amount int64) *RequestInput {
	return &RequestInput{
		Amount:        decimal.NewFromInt(amount),
		Method:        domain.WithdrawalMethodMobileMoney,
		AccountNumber: "+265888123456",
		AccountName:   "Chimwemwe Banda",
	}
}

func TestRequest(t *testing.T) {
	t.Run("below the minimum", func(t *testing.T) {
		store := storetest.New()
		store.SeedWallet(&domain.Wallet{UserID: "seller-1", Balance: decimal.NewFromInt(5000)})
		uc := newTestUsecase(store)

		_, err := uc.Request(context.Background(), "seller-1", validInput(999))
		if !errors.Is(err, domain.ErrAmountBelowMinimum) {
			t.Fatalf("expected ErrAmountBelowMinimum, got %v", err)
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		store := storetest.New()
		uc := newTestUsecase(store)

		input := validInput(2000)
		input.Method = "carrier_pigeon"
		if _, err := uc.Request(context.Background(), "seller-1", input); err == nil {
			t.Fatal("expected error for unknown withdrawal method")
		}
	})

	t.Run("amount above balance is rejected up front", func(t *testing.T) {
		store := storetest.New()
		store.SeedWallet(&domain.Wallet{UserID: "seller-1", Balance: decimal.NewFromInt(5000)})
		uc := newTestUsecase(store)

		_, err := uc.Request(context.Background(), "seller-1", validInput(6000))
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
	})

	t.Run("creates a pending request", func(t *testing.T) {
		store := storetest.New()
		store.SeedWallet(&domain.Wallet{UserID: "seller-1", Balance: decimal.NewFromInt(5000)})
		uc := newTestUsecase(store)

		request, err := uc.Request(context.Background(), "seller-1", validInput(3000))
		if err != nil {
			t.Fatalf("Request: %v", err)
		}
		if request.Status != domain.WithdrawalStatusPending {
			t.Errorf("status: got %s, want pending", request.Status)
		}
		if request.Currency != domain.DefaultCurrency {
			t.Errorf("currency: got %s, want %s", request.Currency, domain.DefaultCurrency)
		}

		// Requesting does not move funds.
		if got := store.WalletBalance("seller-1"); !got.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("balance after request: got %s, want 5000", got)
		}

		stored, err := store.GetWithdrawalByID(request.ID)
		if err != nil {
			t.Fatalf("request not persisted: %v", err)
		}
		if stored.AccountNumber != "+265888123456" {
			t.Errorf("account number: got %s", stored.AccountNumber)
		}
	})
}

func TestProcess(t *testing.T) {
	seed := func(balance int64) (*storetest.Store, *Usecase, *domain.WithdrawalRequest) {
		store := storetest.New()
		store.SeedWallet(&domain.Wallet{UserID: "seller-1", Balance: decimal.NewFromInt(balance)})
		uc := newTestUsecase(store)
		request, err := uc.Request(context.Background(), "seller-1", validInput(3000))
		if err != nil {
			t.Fatalf("seed request: %v", err)
		}
		return store, uc, request
	}

	t.Run("approval debits the wallet", func(t *testing.T) {
		store, uc, request := seed(5000)

		processed, err := uc.Process(context.Background(), request.ID, true, "admin-1", "paid via mpamba")
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if processed.Status != domain.WithdrawalStatusCompleted {
			t.Errorf("status: got %s, want completed", processed.Status)
		}
		if processed.ProcessedBy != "admin-1" || processed.ProcessedAt == nil {
			t.Errorf("audit fields not set: %s %v", processed.ProcessedBy, processed.ProcessedAt)
		}
		if got := store.WalletBalance("seller-1"); !got.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("balance: got %s, want 2000", got)
		}
		if txns := store.TransactionsByReference("withdrawal_" + request.ID); len(txns) != 1 {
			t.Errorf("withdrawal ledger rows: got %d, want 1", len(txns))
		}
	})

	t.Run("rejection moves no funds", func(t *testing.T) {
		store, uc, request := seed(5000)

		processed, err := uc.Process(context.Background(), request.ID, false, "admin-1", "account name mismatch")
		if err != nil {
			t.Fatalf("Process: %v", err)
		}
		if processed.Status != domain.WithdrawalStatusRejected {
			t.Errorf("status: got %s, want rejected", processed.Status)
		}
		if processed.AdminNotes != "account name mismatch" {
			t.Errorf("admin notes: got %s", processed.AdminNotes)
		}
		if got := store.WalletBalance("seller-1"); !got.Equal(decimal.NewFromInt(5000)) {
			t.Errorf("balance after rejection: got %s, want 5000", got)
		}
	})

	t.Run("already processed requests are rejected", func(t *testing.T) {
		_, uc, request := seed(5000)

		if _, err := uc.Process(context.Background(), request.ID, true, "admin-1", ""); err != nil {
			t.Fatalf("first Process: %v", err)
		}
		_, err := uc.Process(context.Background(), request.ID, true, "admin-2", "")
		if !errors.Is(err, domain.ErrWithdrawalAlreadyProcessed) {
			t.Fatalf("expected ErrWithdrawalAlreadyProcessed, got %v", err)
		}
	})

	t.Run("competing approvals cannot overdraw the wallet", func(t *testing.T) {
		store, uc, first := seed(5000)
		second, err := uc.Request(context.Background(), "seller-1", validInput(3000))
		if err != nil {
			t.Fatalf("second request: %v", err)
		}

		if _, err := uc.Process(context.Background(), first.ID, true, "admin-1", ""); err != nil {
			t.Fatalf("first approval: %v", err)
		}

		// 2000 left, the second 3000 must fail against the locked row.
		_, err = uc.Process(context.Background(), second.ID, true, "admin-1", "")
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
		if got := store.WalletBalance("seller-1"); !got.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("balance: got %s, want 2000", got)
		}

		// The failed approval rolled back, the request is still pending.
		stored, err := store.GetWithdrawalByID(second.ID)
		if err != nil {
			t.Fatalf("GetWithdrawalByID: %v", err)
		}
		if stored.Status != domain.WithdrawalStatusPending {
			t.Errorf("second request status: got %s, want pending", stored.Status)
		}
	})

	t.Run("parallel approvals settle exactly one request", func(t *testing.T) {
		store, uc, first := seed(5000)
		second, err := uc.Request(context.Background(), "seller-1", validInput(3000))
		if err != nil {
			t.Fatalf("second request: %v", err)
		}

		var wg sync.WaitGroup
		results := make([]error, 2)
		for i, id := range []string{first.ID, second.ID} {
			wg.Add(1)
			go func(i int, id string) {
				defer wg.Done()
				_, results[i] = uc.Process(context.Background(), id, true, "admin-1", "")
			}(i, id)
		}
		wg.Wait()

		var approved, insufficient int
		for _, err := range results {
			switch {
			case err == nil:
				approved++
			case errors.Is(err, domain.ErrInsufficientFunds):
				insufficient++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if approved != 1 || insufficient != 1 {
			t.Fatalf("got %d approved and %d insufficient, want exactly one of each", approved, insufficient)
		}
		if got := store.WalletBalance("seller-1"); !got.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("balance: got %s, want 2000", got)
		}
	})

	t.Run("unknown request", func(t *testing.T) {
		store := storetest.New()
		uc := newTestUsecase(store)

		if _, err := uc.Process(context.Background(), "missing", true, "admin-1", ""); !errors.Is(err, domain.ErrWithdrawalNotFound) {
			t.Fatalf("expected ErrWithdrawalNotFound, got %v", err)
		}
	})
}
