package wallet

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
)

// Ledger is the only legal writer of wallet balances. Every credit and
// debit appends exactly one WalletTransaction whose BalanceAfter is
// computed inside the same settlement transaction as the balance
// update, so the two can never disagree.
type Ledger struct{}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Credit adds amount to the user's wallet, creating the wallet lazily
// on first use. Returns the balance after the credit applied.
func (l *Ledger) Credit(tx domain.SettlementTx, userID string, amount decimal.Decimal, description, reference string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	w, err := tx.GetWalletForUpdate(userID)
	if err != nil {
		if !errors.Is(err, domain.ErrWalletNotFound) {
			return decimal.Zero, fmt.Errorf("lock wallet: %w", err)
		}
		w = &domain.Wallet{
			ID:       uuid.NewString(),
			UserID:   userID,
			Balance:  decimal.Zero,
			Currency: domain.DefaultCurrency,
		}
		if err := tx.CreateWallet(w); err != nil {
			return decimal.Zero, fmt.Errorf("create wallet: %w", err)
		}
	}

	balanceAfter := w.Balance.Add(amount)
	if err := l.apply(tx, w, domain.TransactionTypeCredit, amount, balanceAfter, description, reference); err != nil {
		return decimal.Zero, err
	}
	return balanceAfter, nil
}

// Debit subtracts amount from the user's wallet. It fails closed: if
// the amount exceeds the balance read under lock, nothing is mutated
// and ErrInsufficientFunds is returned with the available balance.
func (l *Ledger) Debit(tx domain.SettlementTx, userID string, amount decimal.Decimal, description, reference string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	w, err := tx.GetWalletForUpdate(userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("lock wallet: %w", err)
	}

	if amount.GreaterThan(w.Balance) {
		return decimal.Zero, fmt.Errorf("%w: available %s %s", domain.ErrInsufficientFunds, w.Currency, w.Balance.StringFixed(2))
	}

	balanceAfter := w.Balance.Sub(amount)
	if err := l.apply(tx, w, domain.TransactionTypeDebit, amount, balanceAfter, description, reference); err != nil {
		return decimal.Zero, err
	}
	return balanceAfter, nil
}

func (l *Ledger) apply(tx domain.SettlementTx, w *domain.Wallet, txnType domain.TransactionType, amount, balanceAfter decimal.Decimal, description, reference string) error {
	if err := tx.UpdateWalletBalance(w.ID, balanceAfter); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}

	txn := &domain.WalletTransaction{
		ID:           uuid.NewString(),
		WalletID:     w.ID,
		UserID:       w.UserID,
		Type:         txnType,
		Amount:       amount,
		Currency:     w.Currency,
		Description:  description,
		Reference:    reference,
		Status:       domain.TransactionStatusCompleted,
		BalanceAfter: balanceAfter,
		CreatedAt:    time.Now(),
	}
	if err := tx.CreateWalletTransaction(txn); err != nil {
		return fmt.Errorf("append wallet transaction: %w", err)
	}
	return nil
}
