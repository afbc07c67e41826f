package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/nyasamarket/escrow-service/internal/domain"
)

// Cancel aborts an undelivered order and restores every line's stock.
// Cancellation before payment or delivery has no funds to move, so this
// path never touches escrow or wallets.
func (e *Engine) Cancel(ctx context.Context, orderID, userID string) (err error) {
	start := time.Now()
	defer func() { e.observe("cancel", start, err) }()

	var order *domain.Order

	err = e.Store.WithinTx(ctx, func(tx domain.SettlementTx) error {
		var err error
		order, err = tx.GetOrderForUpdate(orderID)
		if err != nil {
			return err
		}

		if order.UserID != userID {
			return domain.ErrNotOrderOwner
		}
		if order.Status.IsTerminal() {
			return fmt.Errorf("cannot cancel order with status %s: %w", order.Status, domain.ErrOrderNotCancellable)
		}

		items, err := tx.GetOrderItems(order.ID)
		if err != nil {
			return fmt.Errorf("load order items: %w", err)
		}

		for _, item := range items {
			product, err := tx.GetProductForUpdate(item.ProductID)
			if err != nil {
				return fmt.Errorf("lock product %s: %w", item.ProductID, err)
			}
			if err := tx.UpdateProductStock(product.ID, product.Stock+item.Quantity); err != nil {
				return fmt.Errorf("restore stock for %s: %w", product.ID, err)
			}
		}

		order.Status = domain.OrderStatusCancelled
		if err := tx.UpdateOrder(order); err != nil {
			return fmt.Errorf("update order: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if e.Metrics != nil {
		e.Metrics.OrdersCancelledTotal.Inc()
	}

	e.publishEvent(domain.SettlementEvent{
		RecipientUserID: order.UserID,
		Kind:            domain.EventOrderCancelled,
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Amount:          order.TotalAmount,
		Currency:        order.Currency,
	})

	return nil
}
