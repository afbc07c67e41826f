package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
)

// MarkPaid completes payment for an order: payment status moves to
// paid, escrow to held, the escrow ledger row is created and the
// custodian wallet is credited by the escrow amount. A retried webhook
// or duplicate client call hits the paid precondition and is rejected
// before any mutation, so the custodian can never be double-credited.
func (e *Engine) MarkPaid(ctx context.Context, orderID, paymentReference string) (err error) {
	start := time.Now()
	defer func() { e.observe("mark_paid", start, err) }()

	var (
		order            *domain.Order
		custodianBalance decimal.Decimal
	)

	err = e.Store.WithinTx(ctx, func(tx domain.SettlementTx) error {
		var err error
		order, err = tx.GetOrderForUpdate(orderID)
		if err != nil {
			return err
		}

		// A late webhook may land after cancellation; holding escrow for
		// an order that can never be delivered would strand the funds.
		if order.Status == domain.OrderStatusCancelled {
			return fmt.Errorf("%w: order is cancelled", domain.ErrOrderNotPayable)
		}
		if order.PaymentStatus == domain.PaymentStatusPaid {
			return domain.ErrAlreadyPaid
		}

		now := time.Now()
		order.PaymentStatus = domain.PaymentStatusPaid
		order.EscrowStatus = domain.EscrowStatusHeld
		order.PaymentReference = paymentReference
		if err := tx.UpdateOrder(order); err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		escrow := &domain.Escrow{
			ID:       uuid.NewString(),
			OrderID:  order.ID,
			SellerID: order.SellerID,
			Amount:   order.EscrowAmount,
			Currency: order.Currency,
			Status:   domain.EscrowStatusHeld,
			HeldAt:   &now,
		}
		if err := tx.CreateEscrow(escrow); err != nil {
			return fmt.Errorf("create escrow: %w", err)
		}

		custodianBalance, err = e.Ledger.Credit(
			tx,
			domain.CustodianAccountID,
			order.EscrowAmount,
			"Escrow hold for order "+order.OrderNumber,
			"escrow_hold_"+order.ID,
		)
		if err != nil {
			return fmt.Errorf("credit custodian: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if e.Metrics != nil {
		e.Metrics.OrdersPaidTotal.Inc()
		e.Metrics.EscrowHeldAmountTotal.Add(order.EscrowAmount.InexactFloat64())
	}

	e.cacheBalance(ctx, domain.CustodianAccountID, custodianBalance)

	e.publishEvent(domain.SettlementEvent{
		RecipientUserID: order.SellerID,
		Kind:            domain.EventEscrowHeld,
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Amount:          order.EscrowAmount,
		Currency:        order.Currency,
	})

	return nil
}
