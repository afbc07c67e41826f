package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/storetest"
)

func creditOnce(t *testing.T, store *storetest.Store, ledger *Ledger, userID string, amount int64, reference string) decimal.Decimal {
	t.Helper()
	var after decimal.Decimal
	err := store.WithinTx(context.Background(), func(tx domain.SettlementTx) error {
		var err error
		after, err = ledger.Credit(tx, userID, decimal.NewFromInt(amount), "test credit", reference)
		return err
	})
	if err != nil {
		t.Fatalf("credit %d: %v", amount, err)
	}
	return after
}

func TestLedgerCredit(t *testing.T) {
	t.Run("creates the wallet lazily on first credit", func(t *testing.T) {
		store := storetest.New()
		ledger := NewLedger()

		after := creditOnce(t, store, ledger, "seller-1", 1000, "ref-1")
		if !after.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("balance after: got %s, want 1000", after)
		}

		w, err := store.GetWalletByUserID("seller-1")
		if err != nil {
			t.Fatalf("wallet not created: %v", err)
		}
		if w.Currency != domain.DefaultCurrency {
			t.Errorf("currency: got %s, want %s", w.Currency, domain.DefaultCurrency)
		}
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		store := storetest.New()
		ledger := NewLedger()

		err := store.WithinTx(context.Background(), func(tx domain.SettlementTx) error {
			_, err := ledger.Credit(tx, "seller-1", decimal.Zero, "test", "ref")
			return err
		})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestLedgerDebit(t *testing.T) {
	t.Run("fails closed when amount exceeds balance", func(t *testing.T) {
		store := storetest.New()
		store.SeedWallet(&domain.Wallet{UserID: "seller-1", Balance: decimal.NewFromInt(500)})
		ledger := NewLedger()

		err := store.WithinTx(context.Background(), func(tx domain.SettlementTx) error {
			_, err := ledger.Debit(tx, "seller-1", decimal.NewFromInt(501), "test debit", "ref-1")
			return err
		})
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
		if got := store.WalletBalance("seller-1"); !got.Equal(decimal.NewFromInt(500)) {
			t.Errorf("balance mutated on failed debit: got %s", got)
		}
		if txns, _, _ := store.GetTransactions("seller-1", domain.TransactionFilters{}, 1, 10); len(txns) != 0 {
			t.Errorf("ledger rows written on failed debit: %d", len(txns))
		}
	})

	t.Run("debit of the exact balance drains to zero", func(t *testing.T) {
		store := storetest.New()
		store.SeedWallet(&domain.Wallet{UserID: "seller-1", Balance: decimal.NewFromInt(500)})
		ledger := NewLedger()

		var after decimal.Decimal
		err := store.WithinTx(context.Background(), func(tx domain.SettlementTx) error {
			var err error
			after, err = ledger.Debit(tx, "seller-1", decimal.NewFromInt(500), "test debit", "ref-1")
			return err
		})
		if err != nil {
			t.Fatalf("Debit: %v", err)
		}
		if !after.Equal(decimal.Zero) {
			t.Errorf("balance after: got %s, want 0", after)
		}
	})

	t.Run("unknown wallet cannot be debited", func(t *testing.T) {
		store := storetest.New()
		ledger := NewLedger()

		err := store.WithinTx(context.Background(), func(tx domain.SettlementTx) error {
			_, err := ledger.Debit(tx, "nobody", decimal.NewFromInt(100), "test", "ref")
			return err
		})
		if !errors.Is(err, domain.ErrWalletNotFound) {
			t.Fatalf("expected ErrWalletNotFound, got %v", err)
		}
	})
}

func TestBalanceAfterChain(t *testing.T) {
	store := storetest.New()
	ledger := NewLedger()

	creditOnce(t, store, ledger, "seller-1", 1000, "ref-1")
	creditOnce(t, store, ledger, "seller-1", 500, "ref-2")

	err := store.WithinTx(context.Background(), func(tx domain.SettlementTx) error {
		_, err := ledger.Debit(tx, "seller-1", decimal.NewFromInt(300), "test debit", "ref-3")
		return err
	})
	if err != nil {
		t.Fatalf("Debit: %v", err)
	}

	txns, total, err := store.GetTransactions("seller-1", domain.TransactionFilters{}, 1, 10)
	if err != nil {
		t.Fatalf("GetTransactions: %v", err)
	}
	if total != 3 {
		t.Fatalf("transaction count: got %d, want 3", total)
	}

	// Replaying the rows from zero must land on the stored balance.
	replayed := decimal.Zero
	for _, txn := range txns {
		switch txn.Type {
		case domain.TransactionTypeCredit:
			replayed = replayed.Add(txn.Amount)
		case domain.TransactionTypeDebit:
			replayed = replayed.Sub(txn.Amount)
		}
		if !txn.BalanceAfter.Equal(replayed) {
			t.Errorf("balance_after for %s: got %s, want %s", txn.Reference, txn.BalanceAfter, replayed)
		}
	}
	if got := store.WalletBalance("seller-1"); !got.Equal(replayed) {
		t.Errorf("stored balance %s diverges from replayed %s", got, replayed)
	}
}

func TestTopUp(t *testing.T) {
	t.Run("credits the wallet and reports the reference", func(t *testing.T) {
		store := storetest.New()
		uc := NewUsecase(store, store, NewLedger(), nil)

		result, err := uc.TopUp(context.Background(), "buyer-1", decimal.NewFromInt(2000), "mobile_money")
		if err != nil {
			t.Fatalf("TopUp: %v", err)
		}
		if !result.BalanceAfter.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("balance after: got %s, want 2000", result.BalanceAfter)
		}
		if result.Reference == "" {
			t.Error("top up reference not assigned")
		}
		if got := store.WalletBalance("buyer-1"); !got.Equal(decimal.NewFromInt(2000)) {
			t.Errorf("stored balance: got %s, want 2000", got)
		}
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		store := storetest.New()
		uc := NewUsecase(store, store, NewLedger(), nil)

		if _, err := uc.TopUp(context.Background(), "buyer-1", decimal.NewFromInt(-5), "mobile_money"); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestGetBalance(t *testing.T) {
	t.Run("missing wallet reads as zero", func(t *testing.T) {
		store := storetest.New()
		uc := NewUsecase(store, store, NewLedger(), nil)

		balance, currency, err := uc.GetBalance(context.Background(), "nobody")
		if err != nil {
			t.Fatalf("GetBalance: %v", err)
		}
		if !balance.Equal(decimal.Zero) || currency != domain.DefaultCurrency {
			t.Errorf("got %s %s, want 0 %s", balance, currency, domain.DefaultCurrency)
		}
	})

	t.Run("existing wallet reads stored balance", func(t *testing.T) {
		store := storetest.New()
		store.SeedWallet(&domain.Wallet{UserID: "seller-1", Balance: decimal.NewFromInt(750)})
		uc := NewUsecase(store, store, NewLedger(), nil)

		balance, _, err := uc.GetBalance(context.Background(), "seller-1")
		if err != nil {
			t.Fatalf("GetBalance: %v", err)
		}
		if !balance.Equal(decimal.NewFromInt(750)) {
			t.Errorf("balance: got %s, want 750", balance)
		}
	})
}
