package wallet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
)

type Usecase struct {
	Store   domain.SettlementStore
	Wallets domain.WalletRepository
	Ledger  *Ledger
	Cache   domain.BalanceCache
}

func NewUsecase(store domain.SettlementStore, wallets domain.WalletRepository, ledger *Ledger, cache domain.BalanceCache) *Usecase {
	return &Usecase{
		Store:   store,
		Wallets: wallets,
		Ledger:  ledger,
		Cache:   cache,
	}
}

type TopUpResult struct {
	Reference    string
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	Currency     string
}

func (uc *Usecase) TopUp(ctx context.Context, userID string, amount decimal.Decimal, paymentMethod string) (*TopUpResult, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	reference := fmt.Sprintf("topup_%d", time.Now().UnixMilli())
	var balanceAfter decimal.Decimal

	err := uc.Store.WithinTx(ctx, func(tx domain.SettlementTx) error {
		var err error
		balanceAfter, err = uc.Ledger.Credit(tx, userID, amount, "Top up via "+paymentMethod, reference)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.cacheBalance(ctx, userID, balanceAfter)

	return &TopUpResult{
		Reference:    reference,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Currency:     domain.DefaultCurrency,
	}, nil
}

// GetBalance serves reads through the cache when possible. A missing
// wallet reads as a zero balance: wallets are created lazily by the
// first credit or debit, not by lookups.
func (uc *Usecase) GetBalance(ctx context.Context, userID string) (decimal.Decimal, string, error) {
	if uc.Cache != nil {
		if balance, ok, err := uc.Cache.GetBalance(ctx, userID); err == nil && ok {
			return balance, domain.DefaultCurrency, nil
		}
	}

	w, err := uc.Wallets.GetWalletByUserID(userID)
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return decimal.Zero, domain.DefaultCurrency, nil
		}
		return decimal.Zero, "", err
	}

	uc.cacheBalance(ctx, userID, w.Balance)
	return w.Balance, w.Currency, nil
}

func (uc *Usecase) GetTransactions(userID string, filters domain.TransactionFilters, page, limit int64) ([]*domain.WalletTransaction, int64, error) {
	return uc.Wallets.GetTransactions(userID, filters, page, limit)
}

func (uc *Usecase) cacheBalance(ctx context.Context, userID string, balance decimal.Decimal) {
	if uc.Cache == nil {
		return
	}
	if err := uc.Cache.SetBalance(ctx, userID, balance); err != nil {
		slog.Warn("failed to update balance cache", "user_id", userID, "error", err.Error())
	}
}
