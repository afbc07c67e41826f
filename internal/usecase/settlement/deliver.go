package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
)

// ConfirmDelivery releases held escrow to the seller: the custodian
// wallet is debited and the seller wallet credited by the escrow
// amount, with the order and escrow rows moving to released in the same
// transaction. The null check on DeliveryConfirmedAt is the single
// source of truth against double release; the status checks on their
// own could be raced.
func (e *Engine) ConfirmDelivery(ctx context.Context, orderID, userID string) (err error) {
	start := time.Now()
	defer func() { e.observe("confirm_delivery", start, err) }()

	var (
		order            *domain.Order
		released         decimal.Decimal
		custodianBalance decimal.Decimal
		sellerBalance    decimal.Decimal
	)

	err = e.Store.WithinTx(ctx, func(tx domain.SettlementTx) error {
		var err error
		order, err = tx.GetOrderForUpdate(orderID)
		if err != nil {
			return err
		}

		if order.UserID != userID {
			return domain.ErrNotOrderOwner
		}
		if order.DeliveryConfirmedAt != nil {
			return domain.ErrDeliveryAlreadyConfirmed
		}
		if order.Status != domain.OrderStatusDelivered {
			return domain.ErrOrderNotDelivered
		}
		if order.EscrowStatus != domain.EscrowStatusHeld || order.PaymentStatus != domain.PaymentStatusPaid {
			return domain.ErrEscrowNotHeld
		}

		escrow, err := tx.GetEscrowForUpdate(orderID)
		if err != nil {
			return err
		}
		if escrow.Status != domain.EscrowStatusHeld {
			return domain.ErrEscrowNotHeld
		}

		now := time.Now()
		order.DeliveryConfirmedAt = &now
		order.FundsReleasedAt = &now
		order.EscrowStatus = domain.EscrowStatusReleased
		if err := tx.UpdateOrder(order); err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		escrow.Status = domain.EscrowStatusReleased
		escrow.ReleasedAt = &now
		if err := tx.UpdateEscrow(escrow); err != nil {
			return fmt.Errorf("update escrow: %w", err)
		}

		// The escrow row's amount is the authoritative figure for the
		// release, not the order's.
		released = escrow.Amount

		custodianBalance, err = e.Ledger.Debit(
			tx,
			domain.CustodianAccountID,
			released,
			"Escrow release for order "+order.OrderNumber,
			"escrow_release_"+order.ID,
		)
		if err != nil {
			return fmt.Errorf("debit custodian: %w", err)
		}

		sellerBalance, err = e.Ledger.Credit(
			tx,
			order.SellerID,
			released,
			"Funds released for order "+order.OrderNumber,
			"escrow_release_"+order.ID,
		)
		if err != nil {
			return fmt.Errorf("credit seller: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if e.Metrics != nil {
		e.Metrics.EscrowReleasedTotal.Inc()
		e.Metrics.EscrowReleasedAmountTotal.Add(released.InexactFloat64())
	}

	e.cacheBalance(ctx, domain.CustodianAccountID, custodianBalance)
	e.cacheBalance(ctx, order.SellerID, sellerBalance)

	e.publishEvent(domain.SettlementEvent{
		RecipientUserID: order.SellerID,
		Kind:            domain.EventFundsReleased,
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Amount:          released,
		Currency:        order.Currency,
	})

	return nil
}
