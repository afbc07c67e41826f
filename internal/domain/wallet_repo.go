package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type TransactionFilters struct {
	Type TransactionType
}

type WalletRepository interface {
	GetWalletByUserID(userID string) (*Wallet, error)
	GetTransactions(userID string, filters TransactionFilters, page, limit int64) ([]*WalletTransaction, int64, error)
}

// BalanceCache is a read-side cache only. Settlement preconditions are
// always validated against the locked wallet row, never the cache.
type BalanceCache interface {
	SetBalance(ctx context.Context, userID string, balance decimal.Decimal) error
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, bool, error)
}
