package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPending    WithdrawalStatus = "pending"
	WithdrawalStatusProcessing WithdrawalStatus = "processing"
	WithdrawalStatusCompleted  WithdrawalStatus = "completed"
	WithdrawalStatusRejected   WithdrawalStatus = "rejected"
)

type WithdrawalMethod string

const (
	WithdrawalMethodMobileMoney  WithdrawalMethod = "mobile_money"
	WithdrawalMethodBankTransfer WithdrawalMethod = "bank_transfer"
)

type WithdrawalRequest struct {
	ID               string
	UserID           string
	Amount           decimal.Decimal
	Currency         string
	Status           WithdrawalStatus
	WithdrawalMethod WithdrawalMethod
	AccountNumber    string
	AccountName      string
	AdminNotes       string
	ProcessedBy      string
	ProcessedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Processable reports whether the request may still be approved or
// rejected. Completed and rejected are terminal.
func (s WithdrawalStatus) Processable() bool {
	return s == WithdrawalStatusPending || s == WithdrawalStatusProcessing
}
