package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SettlementMetrics covers the money-moving transitions of the order
// escrow lifecycle.
type SettlementMetrics struct {
	OrdersCreatedTotal   prometheus.Counter
	OrdersPaidTotal      prometheus.Counter
	OrdersCancelledTotal prometheus.Counter
	EscrowReleasedTotal  prometheus.Counter

	EscrowHeldAmountTotal     prometheus.Counter
	EscrowReleasedAmountTotal prometheus.Counter

	WithdrawalsProcessedTotal *prometheus.CounterVec
	WithdrawalsAmountTotal    *prometheus.CounterVec

	SettlementDuration *prometheus.HistogramVec
	SettlementErrors   *prometheus.CounterVec
}

func NewSettlementMetrics() *SettlementMetrics {
	return &SettlementMetrics{
		OrdersCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "escrow_orders_created_total",
			Help: "Orders created through checkout",
		}),
		OrdersPaidTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "escrow_orders_paid_total",
			Help: "Orders whose payment completed and escrow moved to held",
		}),
		OrdersCancelledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "escrow_orders_cancelled_total",
			Help: "Orders cancelled with stock restored",
		}),
		EscrowReleasedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "escrow_released_total",
			Help: "Escrow releases after delivery confirmation",
		}),
		EscrowHeldAmountTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "escrow_held_amount_total",
			Help: "Total amount credited to the custodian wallet",
		}),
		EscrowReleasedAmountTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "escrow_released_amount_total",
			Help: "Total amount released to seller wallets",
		}),
		WithdrawalsProcessedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_withdrawals_processed_total",
			Help: "Withdrawal requests processed by decision",
		}, []string{"decision"}),
		WithdrawalsAmountTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_withdrawals_amount_total",
			Help: "Withdrawal amounts by decision",
		}, []string{"decision"}),
		SettlementDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "escrow_settlement_duration_seconds",
			Help:    "Duration of settlement transactions",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		SettlementErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_settlement_errors_total",
			Help: "Failed settlement attempts by operation",
		}, []string{"operation"}),
	}
}
