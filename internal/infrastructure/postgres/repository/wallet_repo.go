package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/postgres/models"
)

type DefaultWalletRepository struct {
	DB *gorm.DB
}

func NewDefaultWalletRepository(db *gorm.DB) *DefaultWalletRepository {
	return &DefaultWalletRepository{DB: db}
}

func (r *DefaultWalletRepository) GetWalletByUserID(userID string) (*domain.Wallet, error) {
	var model models.WalletModel
	if err := r.DB.First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return mappers.ToDomainWallet(&model), nil
}

func (r *DefaultWalletRepository) GetTransactions(userID string, filters domain.TransactionFilters, page, limit int64) ([]*domain.WalletTransaction, int64, error) {
	baseQuery := r.DB.Model(&models.WalletTransactionModel{}).Where("user_id = ?", userID)
	if filters.Type != "" {
		baseQuery = baseQuery.Where("type = ?", filters.Type)
	}

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	var txnModels []models.WalletTransactionModel
	offset := (page - 1) * limit
	err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&txnModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find transactions: %w", err)
	}

	txns := make([]*domain.WalletTransaction, len(txnModels))
	for i := range txnModels {
		txns[i] = mappers.ToDomainWalletTransaction(&txnModels[i])
	}
	return txns, total, nil
}
