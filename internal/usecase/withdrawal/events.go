package withdrawal

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
)

func (uc *Usecase) publishEvent(event domain.SettlementEvent) {
	if uc.Publisher == nil {
		return
	}
	go func() {
		if err := uc.Publisher.PublishSettlement(event); err != nil {
			slog.Error("failed to publish settlement event",
				"kind", string(event.Kind),
				"withdrawal_id", event.WithdrawalID,
				"recipient", event.RecipientUserID,
				"error", err.Error(),
			)
		}
	}()
}

func (uc *Usecase) cacheBalance(ctx context.Context, userID string, balance decimal.Decimal) {
	if uc.Cache == nil {
		return
	}
	if err := uc.Cache.SetBalance(ctx, userID, balance); err != nil {
		slog.Warn("failed to update balance cache", "user_id", userID, "error", err.Error())
	}
}
