package mappers

import (
	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/postgres/models"
)

func ToGORMEscrow(escrow *domain.Escrow) *models.EscrowModel {
	return &models.EscrowModel{
		ID:         escrow.ID,
		OrderID:    escrow.OrderID,
		SellerID:   escrow.SellerID,
		Amount:     escrow.Amount,
		Currency:   escrow.Currency,
		Status:     escrow.Status,
		HeldAt:     escrow.HeldAt,
		ReleasedAt: escrow.ReleasedAt,
		RefundedAt: escrow.RefundedAt,
		CreatedAt:  escrow.CreatedAt,
		UpdatedAt:  escrow.UpdatedAt,
	}
}

func ToDomainEscrow(model *models.EscrowModel) *domain.Escrow {
	return &domain.Escrow{
		ID:         model.ID,
		OrderID:    model.OrderID,
		SellerID:   model.SellerID,
		Amount:     model.Amount,
		Currency:   model.Currency,
		Status:     model.Status,
		HeldAt:     model.HeldAt,
		ReleasedAt: model.ReleasedAt,
		RefundedAt: model.RefundedAt,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
