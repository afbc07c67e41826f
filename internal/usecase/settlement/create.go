package settlement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
)

type CheckoutInput struct {
	ShippingAddress string
	ShippingCity    string
	ShippingPhone   string
	PaymentMethod   string
	Notes           string
}

// CreateOrder turns the user's cart into a pending order: duplicate
// lines are merged per product, stock is checked and decremented under
// product row locks, the seller is resolved from the first cart line's
// product, and the escrow amount is computed as the sum of that
// seller's line subtotals. The order, items, stock updates and cart
// clearing commit as one transaction.
func (e *Engine) CreateOrder(ctx context.Context, userID string, input *CheckoutInput) (order *domain.Order, err error) {
	start := time.Now()
	defer func() { e.observe("create_order", start, err) }()

	err = e.Store.WithinTx(ctx, func(tx domain.SettlementTx) error {
		cartItems, err := tx.GetCartItems(userID)
		if err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		if len(cartItems) == 0 {
			return domain.ErrCartEmpty
		}

		// Collapse duplicate cart lines first: a product's stock must be
		// checked and decremented once, against the combined quantity.
		quantities := make(map[string]int32, len(cartItems))
		productIDs := make([]string, 0, len(cartItems))
		for _, cartItem := range cartItems {
			if _, seen := quantities[cartItem.ProductID]; !seen {
				productIDs = append(productIDs, cartItem.ProductID)
			}
			quantities[cartItem.ProductID] += cartItem.Quantity
		}

		var (
			sellerID     string
			totalAmount  = decimal.Zero
			escrowAmount = decimal.Zero
			orderItems   = make([]*domain.OrderItem, 0, len(productIDs))
			products     = make([]*domain.Product, 0, len(productIDs))
		)

		for _, productID := range productIDs {
			product, err := tx.GetProductForUpdate(productID)
			if err != nil {
				return fmt.Errorf("lock product %s: %w", productID, err)
			}

			quantity := quantities[productID]
			if product.Stock < quantity {
				return fmt.Errorf("%w for %s: only %d available", domain.ErrInsufficientStock, product.Name, product.Stock)
			}

			// Single-seller simplification: the shop owning the first
			// cart line sells the whole order.
			if sellerID == "" {
				sellerID = product.SellerID
			}

			subtotal := product.Price.Mul(decimal.NewFromInt32(quantity))
			totalAmount = totalAmount.Add(subtotal)
			if product.SellerID == sellerID {
				escrowAmount = escrowAmount.Add(subtotal)
			}

			orderItems = append(orderItems, &domain.OrderItem{
				ID:          uuid.NewString(),
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    quantity,
				Price:       product.Price,
				Subtotal:    subtotal,
			})
			products = append(products, product)
		}

		order = &domain.Order{
			ID:              uuid.NewString(),
			OrderNumber:     e.orderNumber(),
			UserID:          userID,
			SellerID:        sellerID,
			Status:          domain.OrderStatusPending,
			PaymentStatus:   domain.PaymentStatusPending,
			EscrowStatus:    domain.EscrowStatusPending,
			TotalAmount:     totalAmount,
			EscrowAmount:    escrowAmount,
			Currency:        domain.DefaultCurrency,
			ShippingAddress: input.ShippingAddress,
			ShippingCity:    input.ShippingCity,
			ShippingPhone:   input.ShippingPhone,
			PaymentMethod:   input.PaymentMethod,
			Notes:           input.Notes,
		}
		for _, item := range orderItems {
			item.OrderID = order.ID
		}
		order.Items = orderItems

		if err := tx.CreateOrder(order, orderItems); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, product := range products {
			if err := tx.UpdateProductStock(product.ID, product.Stock-quantities[product.ID]); err != nil {
				return fmt.Errorf("decrement stock for %s: %w", product.ID, err)
			}
		}

		if err := tx.ClearCart(userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if e.Metrics != nil {
		e.Metrics.OrdersCreatedTotal.Inc()
	}

	e.publishEvent(domain.SettlementEvent{
		RecipientUserID: userID,
		Kind:            domain.EventOrderCreated,
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Amount:          order.TotalAmount,
		Currency:        order.Currency,
	})

	return order, nil
}
