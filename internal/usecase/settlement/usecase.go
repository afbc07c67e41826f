package settlement

import (
	"context"
	"log"
	"log/slog"
	"time"

	gonanoid "github.com/jaevor/go-nanoid"
	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/metrics"
	"github.com/nyasamarket/escrow-service/internal/usecase/wallet"
)

const orderNumberAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// Engine enacts the order escrow lifecycle: each operation runs as one
// settlement transaction that re-reads state under lock, validates the
// transition and applies every ledger mutation together. Event
// publishing and cache updates happen after commit and are best-effort.
type Engine struct {
	Store     domain.SettlementStore
	Orders    domain.OrderRepository
	Escrows   domain.EscrowRepository
	Wallets   domain.WalletRepository
	Ledger    *wallet.Ledger
	Publisher domain.EventPublisher
	Cache     domain.BalanceCache
	Metrics   *metrics.SettlementMetrics

	orderNumber func() string
}

// MustNewEngine exits the process when the order number generator
// cannot be built; it is only called during startup wiring.
func MustNewEngine(
	store domain.SettlementStore,
	orders domain.OrderRepository,
	escrows domain.EscrowRepository,
	wallets domain.WalletRepository,
	ledger *wallet.Ledger,
	publisher domain.EventPublisher,
	cache domain.BalanceCache,
	settlementMetrics *metrics.SettlementMetrics,
) *Engine {
	gen, err := gonanoid.CustomASCII(orderNumberAlphabet, 10)
	if err != nil {
		log.Fatalf("failed to init order number generator: %v", err)
	}

	return &Engine{
		Store:       store,
		Orders:      orders,
		Escrows:     escrows,
		Wallets:     wallets,
		Ledger:      ledger,
		Publisher:   publisher,
		Cache:       cache,
		Metrics:     settlementMetrics,
		orderNumber: func() string { return "ORD-" + gen() },
	}
}

func (e *Engine) publishEvent(event domain.SettlementEvent) {
	if e.Publisher == nil {
		return
	}
	go func() {
		if err := e.Publisher.PublishSettlement(event); err != nil {
			slog.Error("failed to publish settlement event",
				"kind", string(event.Kind),
				"order_id", event.OrderID,
				"recipient", event.RecipientUserID,
				"error", err.Error(),
			)
		}
	}()
}

func (e *Engine) cacheBalance(ctx context.Context, userID string, balance decimal.Decimal) {
	if e.Cache == nil {
		return
	}
	if err := e.Cache.SetBalance(ctx, userID, balance); err != nil {
		slog.Warn("failed to update balance cache", "user_id", userID, "error", err.Error())
	}
}

func (e *Engine) observe(operation string, start time.Time, err error) {
	if e.Metrics == nil {
		return
	}
	e.Metrics.SettlementDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		e.Metrics.SettlementErrors.WithLabelValues(operation).Inc()
	}
}
