package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/postgres/models"
)

type DefaultWithdrawalRepository struct {
	DB *gorm.DB
}

func NewDefaultWithdrawalRepository(db *gorm.DB) *DefaultWithdrawalRepository {
	return &DefaultWithdrawalRepository{DB: db}
}

func (r *DefaultWithdrawalRepository) GetWithdrawalByID(requestID string) (*domain.WithdrawalRequest, error) {
	var model models.WithdrawalRequestModel
	if err := r.DB.First(&model, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, err
	}
	return mappers.ToDomainWithdrawal(&model), nil
}

func (r *DefaultWithdrawalRepository) GetWithdrawals(filters domain.WithdrawalFilters, page, limit int64) ([]*domain.WithdrawalRequest, int64, error) {
	return r.list(r.DB.Model(&models.WithdrawalRequestModel{}), filters, page, limit)
}

func (r *DefaultWithdrawalRepository) GetWithdrawalsByUserID(userID string, filters domain.WithdrawalFilters, page, limit int64) ([]*domain.WithdrawalRequest, int64, error) {
	return r.list(r.DB.Model(&models.WithdrawalRequestModel{}).Where("user_id = ?", userID), filters, page, limit)
}

func (r *DefaultWithdrawalRepository) list(baseQuery *gorm.DB, filters domain.WithdrawalFilters, page, limit int64) ([]*domain.WithdrawalRequest, int64, error) {
	if filters.Status != "" {
		baseQuery = baseQuery.Where("status = ?", filters.Status)
	}

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count withdrawals: %w", err)
	}

	var requestModels []models.WithdrawalRequestModel
	offset := (page - 1) * limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&requestModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find withdrawals: %w", err)
	}

	requests := make([]*domain.WithdrawalRequest, len(requestModels))
	for i := range requestModels {
		requests[i] = mappers.ToDomainWithdrawal(&requestModels[i])
	}
	return requests, total, nil
}
