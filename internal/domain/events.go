package domain

import "github.com/shopspring/decimal"

type EventKind string

const (
	EventOrderCreated        EventKind = "order_created"
	EventEscrowHeld          EventKind = "escrow_held"
	EventOrderDelivered      EventKind = "order_delivered"
	EventFundsReleased       EventKind = "funds_released"
	EventOrderCancelled      EventKind = "order_cancelled"
	EventWithdrawalCompleted EventKind = "withdrawal_completed"
	EventWithdrawalRejected  EventKind = "withdrawal_rejected"
)

// SettlementEvent is emitted after a settlement transaction commits.
// Delivery is best-effort: the notification side must never be able to
// unwind a committed money movement.
type SettlementEvent struct {
	RecipientUserID string          `json:"recipient_user_id"`
	Kind            EventKind       `json:"kind"`
	OrderID         string          `json:"order_id,omitempty"`
	OrderNumber     string          `json:"order_number,omitempty"`
	WithdrawalID    string          `json:"withdrawal_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
}

type EventPublisher interface {
	PublishSettlement(event SettlementEvent) error
}
