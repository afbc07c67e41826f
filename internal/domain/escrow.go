package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Escrow is the durable ledger entry for funds held on behalf of a
// seller for a single order. Amount is immutable after creation; only
// the status and the one-shot timestamps may change.
type Escrow struct {
	ID         string
	OrderID    string
	SellerID   string
	Amount     decimal.Decimal
	Currency   string
	Status     EscrowStatus
	HeldAt     *time.Time
	ReleasedAt *time.Time
	RefundedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
