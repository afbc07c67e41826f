package withdrawal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/metrics"
	"github.com/nyasamarket/escrow-service/internal/usecase/wallet"
)

// MinWithdrawalAmount is the smallest amount a seller may request.
var MinWithdrawalAmount = decimal.NewFromInt(1000)

type Usecase struct {
	Store       domain.SettlementStore
	Withdrawals domain.WithdrawalRepository
	Wallets     domain.WalletRepository
	Ledger      *wallet.Ledger
	Publisher   domain.EventPublisher
	Cache       domain.BalanceCache
	Metrics     *metrics.SettlementMetrics
}

func NewUsecase(
	store domain.SettlementStore,
	withdrawals domain.WithdrawalRepository,
	wallets domain.WalletRepository,
	ledger *wallet.Ledger,
	publisher domain.EventPublisher,
	cache domain.BalanceCache,
	settlementMetrics *metrics.SettlementMetrics,
) *Usecase {
	return &Usecase{
		Store:       store,
		Withdrawals: withdrawals,
		Wallets:     wallets,
		Ledger:      ledger,
		Publisher:   publisher,
		Cache:       cache,
		Metrics:     settlementMetrics,
	}
}

type RequestInput struct {
	Amount        decimal.Decimal
	Method        domain.WithdrawalMethod
	AccountNumber string
	AccountName   string
}

// Request creates a pending withdrawal. The balance check here is a
// courtesy for the seller; the authoritative check happens at approval
// time against the wallet row locked in that transaction.
func (uc *Usecase) Request(ctx context.Context, userID string, input *RequestInput) (*domain.WithdrawalRequest, error) {
	if input.Amount.LessThan(MinWithdrawalAmount) {
		return nil, fmt.Errorf("%w: minimum is %s %s", domain.ErrAmountBelowMinimum, domain.DefaultCurrency, MinWithdrawalAmount.StringFixed(2))
	}
	if input.Method != domain.WithdrawalMethodMobileMoney && input.Method != domain.WithdrawalMethodBankTransfer {
		return nil, fmt.Errorf("withdrawal_method must be one of: %s, %s", domain.WithdrawalMethodMobileMoney, domain.WithdrawalMethodBankTransfer)
	}

	currency := domain.DefaultCurrency
	available := decimal.Zero
	if w, err := uc.Wallets.GetWalletByUserID(userID); err == nil {
		available = w.Balance
		currency = w.Currency
	} else if !errors.Is(err, domain.ErrWalletNotFound) {
		return nil, err
	}
	if input.Amount.GreaterThan(available) {
		return nil, fmt.Errorf("%w: available %s %s", domain.ErrInsufficientFunds, currency, available.StringFixed(2))
	}

	request := &domain.WithdrawalRequest{
		ID:               uuid.NewString(),
		UserID:           userID,
		Amount:           input.Amount,
		Currency:         currency,
		Status:           domain.WithdrawalStatusPending,
		WithdrawalMethod: input.Method,
		AccountNumber:    input.AccountNumber,
		AccountName:      input.AccountName,
	}

	err := uc.Store.WithinTx(ctx, func(tx domain.SettlementTx) error {
		return tx.CreateWithdrawal(request)
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// Process approves or rejects a pending request. Approval debits the
// seller wallet by exactly the requested amount, validated against the
// balance read under lock in the same transaction, so two competing
// approvals can never jointly overdraw a wallet.
func (uc *Usecase) Process(ctx context.Context, requestID string, approve bool, adminID, notes string) (*domain.WithdrawalRequest, error) {
	var (
		request      *domain.WithdrawalRequest
		balanceAfter decimal.Decimal
	)

	err := uc.Store.WithinTx(ctx, func(tx domain.SettlementTx) error {
		var err error
		request, err = tx.GetWithdrawalForUpdate(requestID)
		if err != nil {
			return err
		}

		if !request.Status.Processable() {
			return fmt.Errorf("%w: withdrawal is already %s", domain.ErrWithdrawalAlreadyProcessed, request.Status)
		}

		if approve {
			description := "Withdrawal to " + string(request.WithdrawalMethod)
			if request.AccountNumber != "" {
				description += " (" + request.AccountNumber + ")"
			}
			balanceAfter, err = uc.Ledger.Debit(tx, request.UserID, request.Amount, description, "withdrawal_"+request.ID)
			if err != nil {
				return err
			}
			request.Status = domain.WithdrawalStatusCompleted
		} else {
			request.Status = domain.WithdrawalStatusRejected
		}

		now := time.Now()
		request.ProcessedBy = adminID
		request.ProcessedAt = &now
		if notes != "" {
			request.AdminNotes = notes
		}
		return tx.UpdateWithdrawal(request)
	})
	if err != nil {
		return nil, err
	}

	decision := "rejected"
	kind := domain.EventWithdrawalRejected
	if approve {
		decision = "completed"
		kind = domain.EventWithdrawalCompleted
		uc.cacheBalance(ctx, request.UserID, balanceAfter)
	}

	if uc.Metrics != nil {
		uc.Metrics.WithdrawalsProcessedTotal.WithLabelValues(decision).Inc()
		uc.Metrics.WithdrawalsAmountTotal.WithLabelValues(decision).Add(request.Amount.InexactFloat64())
	}

	uc.publishEvent(domain.SettlementEvent{
		RecipientUserID: request.UserID,
		Kind:            kind,
		WithdrawalID:    request.ID,
		Amount:          request.Amount,
		Currency:        request.Currency,
	})

	return request, nil
}

func (uc *Usecase) GetByID(requestID string) (*domain.WithdrawalRequest, error) {
	return uc.Withdrawals.GetWithdrawalByID(requestID)
}

func (uc *Usecase) List(filters domain.WithdrawalFilters, page, limit int64) ([]*domain.WithdrawalRequest, int64, error) {
	return uc.Withdrawals.GetWithdrawals(filters, page, limit)
}

func (uc *Usecase) ListByUser(userID string, filters domain.WithdrawalFilters, page, limit int64) ([]*domain.WithdrawalRequest, int64, error) {
	return uc.Withdrawals.GetWithdrawalsByUserID(userID, filters, page, limit)
}
