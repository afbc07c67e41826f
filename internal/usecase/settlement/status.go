package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/nyasamarket/escrow-service/internal/domain"
)

// UpdateStatus advances fulfilment one step along
// pending -> processing -> shipped -> delivered. Cancellation and the
// money-moving transitions have their own operations.
func (e *Engine) UpdateStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus) (err error) {
	start := time.Now()
	defer func() { e.observe("update_status", start, err) }()

	var order *domain.Order

	err = e.Store.WithinTx(ctx, func(tx domain.SettlementTx) error {
		var err error
		order, err = tx.GetOrderForUpdate(orderID)
		if err != nil {
			return err
		}

		if !order.Status.CanAdvanceTo(newStatus) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatusTransition, order.Status, newStatus)
		}

		order.Status = newStatus
		if err := tx.UpdateOrder(order); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if newStatus == domain.OrderStatusDelivered {
		e.publishEvent(domain.SettlementEvent{
			RecipientUserID: order.UserID,
			Kind:            domain.EventOrderDelivered,
			OrderID:         order.ID,
			OrderNumber:     order.OrderNumber,
			Amount:          order.TotalAmount,
			Currency:        order.Currency,
		})
	}

	return nil
}
