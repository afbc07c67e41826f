package settlement

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
)

func (e *Engine) GetOrderByID(orderID string) (*domain.Order, error) {
	return e.Orders.GetOrderByID(orderID)
}

func (e *Engine) GetOrdersByUserID(userID string, page, limit int64) ([]*domain.Order, int64, error) {
	return e.Orders.GetOrdersByUserID(userID, page, limit)
}

func (e *Engine) GetEscrowByOrderID(orderID string) (*domain.Escrow, error) {
	return e.Escrows.GetEscrowByOrderID(orderID)
}

type EarningsSummary struct {
	AvailableBalance decimal.Decimal
	PendingEscrow    decimal.Decimal
	TotalReleased    decimal.Decimal
	Currency         string
	OrdersInEscrow   []*domain.Order
}

// GetEarnings summarizes a seller's position: withdrawable wallet
// balance, funds still held in escrow, and the lifetime total released.
func (e *Engine) GetEarnings(sellerID string) (*EarningsSummary, error) {
	summary := &EarningsSummary{
		AvailableBalance: decimal.Zero,
		Currency:         domain.DefaultCurrency,
	}

	w, err := e.Wallets.GetWalletByUserID(sellerID)
	if err != nil && !errors.Is(err, domain.ErrWalletNotFound) {
		return nil, err
	}
	if err == nil {
		summary.AvailableBalance = w.Balance
		summary.Currency = w.Currency
	}

	pending, err := e.Orders.SumEscrowAmount(sellerID, domain.EscrowStatusHeld)
	if err != nil {
		return nil, err
	}
	summary.PendingEscrow = pending

	released, err := e.Orders.SumEscrowAmount(sellerID, domain.EscrowStatusReleased)
	if err != nil {
		return nil, err
	}
	summary.TotalReleased = released

	inEscrow, err := e.Orders.GetOrdersBySellerID(sellerID, domain.OrderFilters{EscrowStatus: domain.EscrowStatusHeld}, 20)
	if err != nil {
		return nil, err
	}
	summary.OrdersInEscrow = inEscrow

	return summary, nil
}
