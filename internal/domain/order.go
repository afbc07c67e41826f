package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type EscrowStatus string

const (
	EscrowStatusPending  EscrowStatus = "pending"
	EscrowStatusHeld     EscrowStatus = "held"
	EscrowStatusReleased EscrowStatus = "released"
	EscrowStatusRefunded EscrowStatus = "refunded"
)

type Order struct {
	ID               string
	OrderNumber      string
	UserID           string
	SellerID         string
	Status           OrderStatus
	PaymentStatus    PaymentStatus
	EscrowStatus     EscrowStatus
	TotalAmount      decimal.Decimal
	EscrowAmount     decimal.Decimal
	Currency         string
	ShippingAddress  string
	ShippingCity     string
	ShippingPhone    string
	PaymentMethod    string
	PaymentReference string
	Notes            string
	// DeliveryConfirmedAt is the one-shot guard against double release:
	// once non-nil, ConfirmDelivery must never run again.
	DeliveryConfirmedAt *time.Time
	FundsReleasedAt     *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Items               []*OrderItem
}

type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int32
	Price       decimal.Decimal
	Subtotal    decimal.Decimal
}

// IsTerminal reports whether no further fulfilment transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// nextFulfilmentStatus enumerates the legal forward edges of the
// fulfilment state machine. Cancellation is handled separately.
var nextFulfilmentStatus = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusShipped,
	OrderStatusShipped:    OrderStatusDelivered,
}

// CanAdvanceTo reports whether moving from s to target is a legal
// forward fulfilment transition.
func (s OrderStatus) CanAdvanceTo(target OrderStatus) bool {
	next, ok := nextFulfilmentStatus[s]
	return ok && next == target
}
