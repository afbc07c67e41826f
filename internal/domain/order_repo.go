package domain

import "github.com/shopspring/decimal"

type OrderFilters struct {
	Status       OrderStatus
	EscrowStatus EscrowStatus
}

// OrderRepository serves non-transactional reads. Settlement mutations
// never go through here; they run on a SettlementTx.
type OrderRepository interface {
	GetOrderByID(orderID string) (*Order, error)
	GetOrderByNumber(orderNumber string) (*Order, error)
	GetOrdersByUserID(userID string, page, limit int64) ([]*Order, int64, error)
	GetOrdersBySellerID(sellerID string, filters OrderFilters, limit int64) ([]*Order, error)
	SumEscrowAmount(sellerID string, escrowStatus EscrowStatus) (decimal.Decimal, error)
}

type EscrowRepository interface {
	GetEscrowByOrderID(orderID string) (*Escrow, error)
}
