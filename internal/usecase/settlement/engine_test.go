package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/storetest"
	"github.com/nyasamarket/escrow-service/internal/usecase/wallet"
)

func newTestEngine(store *storetest.Store) *Engine {
	return MustNewEngine(store, store, store, store, wallet.NewLedger(), nil, nil, nil)
}

func seedCatalog(store *storetest.Store) (sellerID string) {
	sellerID = "seller-1"
	store.SeedProduct(&domain.Product{
		ID:       "prod-1",
		SellerID: sellerID,
		Name:     "Chitenje fabric",
		Price:    decimal.NewFromInt(2500),
		Stock:    10,
	})
	store.SeedProduct(&domain.Product{
		ID:       "prod-2",
		SellerID: sellerID,
		Name:     "Woven basket",
		Price:    decimal.NewFromInt(1500),
		Stock:    3,
	})
	return sellerID
}

func TestCreateOrder(t *testing.T) {
	checkout := &CheckoutInput{
		ShippingAddress: "Area 47, Lilongwe",
		ShippingPhone:   "+265888123456",
		PaymentMethod:   "mobile_money",
	}

	t.Run("empty cart", func(t *testing.T) {
		store := storetest.New()
		engine := newTestEngine(store)

		_, err := engine.CreateOrder(context.Background(), "buyer-1", checkout)
		if !errors.Is(err, domain.ErrCartEmpty) {
			t.Fatalf("expected ErrCartEmpty, got %v", err)
		}
	})

	t.Run("insufficient stock leaves everything untouched", func(t *testing.T) {
		store := storetest.New()
		seedCatalog(store)
		store.SeedCartItem(&domain.CartItem{UserID: "buyer-1", ProductID: "prod-2", Quantity: 5})
		engine := newTestEngine(store)

		_, err := engine.CreateOrder(context.Background(), "buyer-1", checkout)
		if !errors.Is(err, domain.ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		if got := store.ProductStock("prod-2"); got != 3 {
			t.Errorf("stock changed on failed checkout: got %d, want 3", got)
		}
	})

	t.Run("checkout commits order, stock and cart together", func(t *testing.T) {
		store := storetest.New()
		sellerID := seedCatalog(store)
		store.SeedCartItem(&domain.CartItem{UserID: "buyer-1", ProductID: "prod-1", Quantity: 2})
		store.SeedCartItem(&domain.CartItem{UserID: "buyer-1", ProductID: "prod-2", Quantity: 3})
		engine := newTestEngine(store)

		order, err := engine.CreateOrder(context.Background(), "buyer-1", checkout)
		if err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}

		if order.SellerID != sellerID {
			t.Errorf("seller id: got %s, want %s", order.SellerID, sellerID)
		}
		if want := decimal.NewFromInt(9500); !order.TotalAmount.Equal(want) {
			t.Errorf("total amount: got %s, want %s", order.TotalAmount, want)
		}
		if !order.EscrowAmount.Equal(order.TotalAmount) {
			t.Errorf("escrow amount: got %s, want %s", order.EscrowAmount, order.TotalAmount)
		}
		if order.Status != domain.OrderStatusPending || order.PaymentStatus != domain.PaymentStatusPending {
			t.Errorf("new order must start pending, got %s/%s", order.Status, order.PaymentStatus)
		}
		if order.EscrowStatus != domain.EscrowStatusPending {
			t.Errorf("escrow status: got %s, want pending", order.EscrowStatus)
		}
		if len(order.OrderNumber) == 0 {
			t.Error("order number not assigned")
		}
		if got := store.ProductStock("prod-1"); got != 8 {
			t.Errorf("prod-1 stock: got %d, want 8", got)
		}
		if got := store.ProductStock("prod-2"); got != 0 {
			t.Errorf("prod-2 stock: got %d, want 0", got)
		}

		if _, err := engine.CreateOrder(context.Background(), "buyer-1", checkout); !errors.Is(err, domain.ErrCartEmpty) {
			t.Errorf("cart not cleared after checkout: got %v", err)
		}
	})

	t.Run("duplicate cart lines are merged before the stock check", func(t *testing.T) {
		store := storetest.New()
		seedCatalog(store)
		store.SeedCartItem(&domain.CartItem{UserID: "buyer-1", ProductID: "prod-1", Quantity: 2})
		store.SeedCartItem(&domain.CartItem{UserID: "buyer-1", ProductID: "prod-1", Quantity: 3})
		engine := newTestEngine(store)

		order, err := engine.CreateOrder(context.Background(), "buyer-1", checkout)
		if err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}

		if got := store.ProductStock("prod-1"); got != 5 {
			t.Errorf("stock after checkout of 5 units from 10: got %d, want 5", got)
		}
		if len(order.Items) != 1 {
			t.Fatalf("order items: got %d, want 1 merged line", len(order.Items))
		}
		if order.Items[0].Quantity != 5 {
			t.Errorf("merged quantity: got %d, want 5", order.Items[0].Quantity)
		}
		if want := decimal.NewFromInt(12500); !order.TotalAmount.Equal(want) {
			t.Errorf("total amount: got %s, want %s", order.TotalAmount, want)
		}

		// Cancelling must restore exactly the combined quantity.
		if err := engine.Cancel(context.Background(), order.ID, "buyer-1"); err != nil {
			t.Fatalf("Cancel: %v", err)
		}
		if got := store.ProductStock("prod-1"); got != 10 {
			t.Errorf("stock after cancel: got %d, want 10", got)
		}
	})

	t.Run("duplicate lines exceeding stock together are rejected", func(t *testing.T) {
		store := storetest.New()
		seedCatalog(store)
		store.SeedCartItem(&domain.CartItem{UserID: "buyer-1", ProductID: "prod-2", Quantity: 2})
		store.SeedCartItem(&domain.CartItem{UserID: "buyer-1", ProductID: "prod-2", Quantity: 2})
		engine := newTestEngine(store)

		_, err := engine.CreateOrder(context.Background(), "buyer-1", checkout)
		if !errors.Is(err, domain.ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock for combined quantity 4 of 3, got %v", err)
		}
		if got := store.ProductStock("prod-2"); got != 3 {
			t.Errorf("stock changed on failed checkout: got %d, want 3", got)
		}
	})
}

func seedPaidOrder(store *storetest.Store, status domain.OrderStatus) *domain.Order {
	order := &domain.Order{
		ID:            "order-1",
		OrderNumber:   "ORD-TEST000001",
		UserID:        "buyer-1",
		SellerID:      "seller-1",
		Status:        status,
		PaymentStatus: domain.PaymentStatusPaid,
		EscrowStatus:  domain.EscrowStatusHeld,
		TotalAmount:   decimal.NewFromInt(9500),
		EscrowAmount:  decimal.NewFromInt(9500),
		Currency:      domain.DefaultCurrency,
	}
	store.SeedOrder(order)
	store.SeedEscrow(&domain.Escrow{
		ID:       "escrow-1",
		OrderID:  order.ID,
		SellerID: order.SellerID,
		Amount:   order.EscrowAmount,
		Currency: order.Currency,
		Status:   domain.EscrowStatusHeld,
	})
	return order
}

func TestMarkPaid(t *testing.T) {
	t.Run("holds escrow and credits custodian", func(t *testing.T) {
		store := storetest.New()
		store.SeedOrder(&domain.Order{
			ID:            "order-1",
			OrderNumber:   "ORD-TEST000001",
			UserID:        "buyer-1",
			SellerID:      "seller-1",
			Status:        domain.OrderStatusPending,
			PaymentStatus: domain.PaymentStatusPending,
			EscrowStatus:  domain.EscrowStatusPending,
			TotalAmount:   decimal.NewFromInt(9500),
			EscrowAmount:  decimal.NewFromInt(9500),
			Currency:      domain.DefaultCurrency,
		})
		engine := newTestEngine(store)

		if err := engine.MarkPaid(context.Background(), "order-1", "MPAMBA-REF-1"); err != nil {
			t.Fatalf("MarkPaid: %v", err)
		}

		order, _ := store.GetOrderByID("order-1")
		if order.PaymentStatus != domain.PaymentStatusPaid {
			t.Errorf("payment status: got %s, want paid", order.PaymentStatus)
		}
		if order.EscrowStatus != domain.EscrowStatusHeld {
			t.Errorf("escrow status: got %s, want held", order.EscrowStatus)
		}
		if order.PaymentReference != "MPAMBA-REF-1" {
			t.Errorf("payment reference: got %s", order.PaymentReference)
		}

		escrow, err := store.GetEscrowByOrderID("order-1")
		if err != nil {
			t.Fatalf("escrow row not created: %v", err)
		}
		if escrow.Status != domain.EscrowStatusHeld || escrow.HeldAt == nil {
			t.Errorf("escrow row: status %s, held_at %v", escrow.Status, escrow.HeldAt)
		}
		if !escrow.Amount.Equal(decimal.NewFromInt(9500)) {
			t.Errorf("escrow amount: got %s, want 9500", escrow.Amount)
		}

		if got := store.WalletBalance(domain.CustodianAccountID); !got.Equal(decimal.NewFromInt(9500)) {
			t.Errorf("custodian balance: got %s, want 9500", got)
		}
	})

	t.Run("second payment is rejected before any mutation", func(t *testing.T) {
		store := storetest.New()
		seedPaidOrder(store, domain.OrderStatusPending)
		store.SeedWallet(&domain.Wallet{UserID: domain.CustodianAccountID, Balance: decimal.NewFromInt(9500)})
		engine := newTestEngine(store)

		err := engine.MarkPaid(context.Background(), "order-1", "MPAMBA-REF-2")
		if !errors.Is(err, domain.ErrAlreadyPaid) {
			t.Fatalf("expected ErrAlreadyPaid, got %v", err)
		}
		if got := store.WalletBalance(domain.CustodianAccountID); !got.Equal(decimal.NewFromInt(9500)) {
			t.Errorf("custodian balance changed on duplicate payment: got %s", got)
		}
		if txns := store.TransactionsByReference("escrow_hold_order-1"); len(txns) != 0 {
			t.Errorf("ledger rows written on duplicate payment: %d", len(txns))
		}
	})

	t.Run("late payment against a cancelled order holds nothing", func(t *testing.T) {
		store := storetest.New()
		store.SeedOrder(&domain.Order{
			ID:            "order-1",
			OrderNumber:   "ORD-TEST000001",
			UserID:        "buyer-1",
			SellerID:      "seller-1",
			Status:        domain.OrderStatusCancelled,
			PaymentStatus: domain.PaymentStatusPending,
			EscrowStatus:  domain.EscrowStatusPending,
			TotalAmount:   decimal.NewFromInt(9500),
			EscrowAmount:  decimal.NewFromInt(9500),
			Currency:      domain.DefaultCurrency,
		})
		engine := newTestEngine(store)

		err := engine.MarkPaid(context.Background(), "order-1", "MPAMBA-LATE-1")
		if !errors.Is(err, domain.ErrOrderNotPayable) {
			t.Fatalf("expected ErrOrderNotPayable, got %v", err)
		}

		order, _ := store.GetOrderByID("order-1")
		if order.EscrowStatus != domain.EscrowStatusPending || order.PaymentStatus != domain.PaymentStatusPending {
			t.Errorf("cancelled order mutated: payment %s, escrow %s", order.PaymentStatus, order.EscrowStatus)
		}
		if _, err := store.GetEscrowByOrderID("order-1"); !errors.Is(err, domain.ErrEscrowNotFound) {
			t.Errorf("escrow row created for cancelled order: %v", err)
		}
		if got := store.WalletBalance(domain.CustodianAccountID); !got.Equal(decimal.Zero) {
			t.Errorf("custodian credited for cancelled order: got %s", got)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		store := storetest.New()
		engine := newTestEngine(store)

		if err := engine.MarkPaid(context.Background(), "missing", "ref"); !errors.Is(err, domain.ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})
}

func TestConfirmDelivery(t *testing.T) {
	t.Run("releases escrow from custodian to seller", func(t *testing.T) {
		store := storetest.New()
		seedPaidOrder(store, domain.OrderStatusDelivered)
		store.SeedWallet(&domain.Wallet{UserID: domain.CustodianAccountID, Balance: decimal.NewFromInt(10000)})
		engine := newTestEngine(store)

		if err := engine.ConfirmDelivery(context.Background(), "order-1", "buyer-1"); err != nil {
			t.Fatalf("ConfirmDelivery: %v", err)
		}

		if got := store.WalletBalance(domain.CustodianAccountID); !got.Equal(decimal.NewFromInt(500)) {
			t.Errorf("custodian balance: got %s, want 500", got)
		}
		if got := store.WalletBalance("seller-1"); !got.Equal(decimal.NewFromInt(9500)) {
			t.Errorf("seller balance: got %s, want 9500", got)
		}

		order, _ := store.GetOrderByID("order-1")
		if order.EscrowStatus != domain.EscrowStatusReleased {
			t.Errorf("order escrow status: got %s, want released", order.EscrowStatus)
		}
		if order.DeliveryConfirmedAt == nil || order.FundsReleasedAt == nil {
			t.Error("release timestamps not set")
		}

		escrow, _ := store.GetEscrowByOrderID("order-1")
		if escrow.Status != domain.EscrowStatusReleased || escrow.ReleasedAt == nil {
			t.Errorf("escrow row: status %s, released_at %v", escrow.Status, escrow.ReleasedAt)
		}

		if txns := store.TransactionsByReference("escrow_release_order-1"); len(txns) != 2 {
			t.Errorf("release ledger rows: got %d, want custodian debit and seller credit", len(txns))
		}
	})

	t.Run("second confirmation is rejected and moves no funds", func(t *testing.T) {
		store := storetest.New()
		seedPaidOrder(store, domain.OrderStatusDelivered)
		store.SeedWallet(&domain.Wallet{UserID: domain.CustodianAccountID, Balance: decimal.NewFromInt(9500)})
		engine := newTestEngine(store)

		if err := engine.ConfirmDelivery(context.Background(), "order-1", "buyer-1"); err != nil {
			t.Fatalf("first ConfirmDelivery: %v", err)
		}
		err := engine.ConfirmDelivery(context.Background(), "order-1", "buyer-1")
		if !errors.Is(err, domain.ErrDeliveryAlreadyConfirmed) {
			t.Fatalf("expected ErrDeliveryAlreadyConfirmed, got %v", err)
		}
		if got := store.WalletBalance("seller-1"); !got.Equal(decimal.NewFromInt(9500)) {
			t.Errorf("seller balance after double confirm: got %s, want 9500", got)
		}
		if got := store.WalletBalance(domain.CustodianAccountID); !got.Equal(decimal.Zero) {
			t.Errorf("custodian balance after double confirm: got %s, want 0", got)
		}
	})

	t.Run("only the buyer may confirm", func(t *testing.T) {
		store := storetest.New()
		seedPaidOrder(store, domain.OrderStatusDelivered)
		engine := newTestEngine(store)

		if err := engine.ConfirmDelivery(context.Background(), "order-1", "someone-else"); !errors.Is(err, domain.ErrNotOrderOwner) {
			t.Fatalf("expected ErrNotOrderOwner, got %v", err)
		}
	})

	t.Run("order must be delivered first", func(t *testing.T) {
		store := storetest.New()
		seedPaidOrder(store, domain.OrderStatusShipped)
		engine := newTestEngine(store)

		if err := engine.ConfirmDelivery(context.Background(), "order-1", "buyer-1"); !errors.Is(err, domain.ErrOrderNotDelivered) {
			t.Fatalf("expected ErrOrderNotDelivered, got %v", err)
		}
	})

	t.Run("escrow must be held", func(t *testing.T) {
		store := storetest.New()
		order := seedPaidOrder(store, domain.OrderStatusDelivered)
		order.PaymentStatus = domain.PaymentStatusPending
		order.EscrowStatus = domain.EscrowStatusPending
		store.SeedOrder(order)
		engine := newTestEngine(store)

		if err := engine.ConfirmDelivery(context.Background(), "order-1", "buyer-1"); !errors.Is(err, domain.ErrEscrowNotHeld) {
			t.Fatalf("expected ErrEscrowNotHeld, got %v", err)
		}
	})
}

func TestCancel(t *testing.T) {
	t.Run("restores stock and never touches escrow", func(t *testing.T) {
		store := storetest.New()
		seedCatalog(store)
		store.SeedOrder(&domain.Order{
			ID:           "order-1",
			OrderNumber:  "ORD-TEST000001",
			UserID:       "buyer-1",
			SellerID:     "seller-1",
			Status:       domain.OrderStatusPending,
			TotalAmount:  decimal.NewFromInt(5000),
			EscrowAmount: decimal.NewFromInt(5000),
			Currency:     domain.DefaultCurrency,
		}, &domain.OrderItem{ID: "item-1", OrderID: "order-1", ProductID: "prod-1", Quantity: 2})
		engine := newTestEngine(store)

		if err := engine.Cancel(context.Background(), "order-1", "buyer-1"); err != nil {
			t.Fatalf("Cancel: %v", err)
		}

		order, _ := store.GetOrderByID("order-1")
		if order.Status != domain.OrderStatusCancelled {
			t.Errorf("order status: got %s, want cancelled", order.Status)
		}
		if got := store.ProductStock("prod-1"); got != 12 {
			t.Errorf("restored stock: got %d, want 12", got)
		}
		if got := store.WalletBalance(domain.CustodianAccountID); !got.Equal(decimal.Zero) {
			t.Errorf("cancel moved funds: custodian balance %s", got)
		}
	})

	t.Run("terminal orders cannot be cancelled", func(t *testing.T) {
		store := storetest.New()
		seedPaidOrder(store, domain.OrderStatusDelivered)
		engine := newTestEngine(store)

		if err := engine.Cancel(context.Background(), "order-1", "buyer-1"); !errors.Is(err, domain.ErrOrderNotCancellable) {
			t.Fatalf("expected ErrOrderNotCancellable, got %v", err)
		}
	})

	t.Run("only the buyer may cancel", func(t *testing.T) {
		store := storetest.New()
		seedPaidOrder(store, domain.OrderStatusPending)
		engine := newTestEngine(store)

		if err := engine.Cancel(context.Background(), "order-1", "someone-else"); !errors.Is(err, domain.ErrNotOrderOwner) {
			t.Fatalf("expected ErrNotOrderOwner, got %v", err)
		}
	})
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.OrderStatus
		to      domain.OrderStatus
		wantErr error
	}{
		{"pending to processing", domain.OrderStatusPending, domain.OrderStatusProcessing, nil},
		{"processing to shipped", domain.OrderStatusProcessing, domain.OrderStatusShipped, nil},
		{"shipped to delivered", domain.OrderStatusShipped, domain.OrderStatusDelivered, nil},
		{"pending cannot skip to shipped", domain.OrderStatusPending, domain.OrderStatusShipped, domain.ErrInvalidStatusTransition},
		{"no going backwards", domain.OrderStatusShipped, domain.OrderStatusProcessing, domain.ErrInvalidStatusTransition},
		{"delivered is terminal", domain.OrderStatusDelivered, domain.OrderStatusProcessing, domain.ErrInvalidStatusTransition},
		{"cancelled is terminal", domain.OrderStatusCancelled, domain.OrderStatusProcessing, domain.ErrInvalidStatusTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storetest.New()
			store.SeedOrder(&domain.Order{
				ID:          "order-1",
				OrderNumber: "ORD-TEST000001",
				UserID:      "buyer-1",
				Status:      tt.from,
				Currency:    domain.DefaultCurrency,
			})
			engine := newTestEngine(store)

			err := engine.UpdateStatus(context.Background(), "order-1", tt.to)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateStatus: %v", err)
			}
			order, _ := store.GetOrderByID("order-1")
			if order.Status != tt.to {
				t.Errorf("status: got %s, want %s", order.Status, tt.to)
			}
		})
	}
}

func TestGetEarnings(t *testing.T) {
	store := storetest.New()
	store.SeedWallet(&domain.Wallet{UserID: "seller-1", Balance: decimal.NewFromInt(12000)})
	store.SeedOrder(&domain.Order{
		ID: "order-1", OrderNumber: "ORD-A", UserID: "buyer-1", SellerID: "seller-1",
		EscrowStatus: domain.EscrowStatusHeld, EscrowAmount: decimal.NewFromInt(4000),
	})
	store.SeedOrder(&domain.Order{
		ID: "order-2", OrderNumber: "ORD-B", UserID: "buyer-2", SellerID: "seller-1",
		EscrowStatus: domain.EscrowStatusReleased, EscrowAmount: decimal.NewFromInt(7000),
	})
	store.SeedOrder(&domain.Order{
		ID: "order-3", OrderNumber: "ORD-C", UserID: "buyer-1", SellerID: "other-seller",
		EscrowStatus: domain.EscrowStatusHeld, EscrowAmount: decimal.NewFromInt(999),
	})
	engine := newTestEngine(store)

	summary, err := engine.GetEarnings("seller-1")
	if err != nil {
		t.Fatalf("GetEarnings: %v", err)
	}
	if !summary.AvailableBalance.Equal(decimal.NewFromInt(12000)) {
		t.Errorf("available: got %s, want 12000", summary.AvailableBalance)
	}
	if !summary.PendingEscrow.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("pending escrow: got %s, want 4000", summary.PendingEscrow)
	}
	if !summary.TotalReleased.Equal(decimal.NewFromInt(7000)) {
		t.Errorf("total released: got %s, want 7000", summary.TotalReleased)
	}
}
