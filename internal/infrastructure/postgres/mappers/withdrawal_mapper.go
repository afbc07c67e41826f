package mappers

import (
	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/postgres/models"
)

func ToGORMWithdrawal(request *domain.WithdrawalRequest) *models.WithdrawalRequestModel {
	return &models.WithdrawalRequestModel{
		ID:               request.ID,
		UserID:           request.UserID,
		Amount:           request.Amount,
		Currency:         request.Currency,
		Status:           request.Status,
		WithdrawalMethod: request.WithdrawalMethod,
		AccountNumber:    request.AccountNumber,
		AccountName:      request.AccountName,
		AdminNotes:       request.AdminNotes,
		ProcessedBy:      request.ProcessedBy,
		ProcessedAt:      request.ProcessedAt,
		CreatedAt:        request.CreatedAt,
		UpdatedAt:        request.UpdatedAt,
	}
}

func ToDomainWithdrawal(model *models.WithdrawalRequestModel) *domain.WithdrawalRequest {
	return &domain.WithdrawalRequest{
		ID:               model.ID,
		UserID:           model.UserID,
		Amount:           model.Amount,
		Currency:         model.Currency,
		Status:           model.Status,
		WithdrawalMethod: model.WithdrawalMethod,
		AccountNumber:    model.AccountNumber,
		AccountName:      model.AccountName,
		AdminNotes:       model.AdminNotes,
		ProcessedBy:      model.ProcessedBy,
		ProcessedAt:      model.ProcessedAt,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}
