package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustodianAccountID is the platform-owned account whose wallet holds
// escrowed funds between payment and release. It is a fixed singleton
// id, deliberately not tied to any admin user row.
const CustodianAccountID = "00000000-0000-0000-0000-000000000001"

const DefaultCurrency = "MWK"

type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

type Wallet struct {
	ID        string
	UserID    string
	Balance   decimal.Decimal
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WalletTransaction is an append-only ledger row. BalanceAfter snapshots
// the wallet balance immediately after the transaction applied, so the
// full balance history can be reconstructed by replaying rows from zero.
type WalletTransaction struct {
	ID           string
	WalletID     string
	UserID       string
	Type         TransactionType
	Amount       decimal.Decimal
	Currency     string
	Description  string
	Reference    string
	Status       TransactionStatus
	BalanceAfter decimal.Decimal
	CreatedAt    time.Time
}
