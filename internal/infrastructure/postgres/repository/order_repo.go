package repository

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/postgres/models"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) GetOrderByID(orderID string) (*domain.Order, error) {
	var model models.OrderModel
	if err := r.DB.Preload("Items").First(&model, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&model), nil
}

func (r *DefaultOrderRepository) GetOrderByNumber(orderNumber string) (*domain.Order, error) {
	var model models.OrderModel
	if err := r.DB.Preload("Items").First(&model, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&model), nil
}

func (r *DefaultOrderRepository) GetOrdersByUserID(userID string, page, limit int64) ([]*domain.Order, int64, error) {
	baseQuery := r.DB.Model(&models.OrderModel{}).Where("user_id = ?", userID)

	var total int64
	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orderModels []models.OrderModel
	offset := (page - 1) * limit
	err := baseQuery.
		Preload("Items").
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&orderModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find orders: %w", err)
	}

	orders := make([]*domain.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModels[i])
	}
	return orders, total, nil
}

func (r *DefaultOrderRepository) GetOrdersBySellerID(sellerID string, filters domain.OrderFilters, limit int64) ([]*domain.Order, error) {
	query := r.DB.Model(&models.OrderModel{}).Where("seller_id = ?", sellerID)

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.EscrowStatus != "" {
		query = query.Where("escrow_status = ?", filters.EscrowStatus)
	}

	var orderModels []models.OrderModel
	if err := query.Order("created_at DESC").Limit(int(limit)).Find(&orderModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find seller orders: %w", err)
	}

	orders := make([]*domain.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModels[i])
	}
	return orders, nil
}

func (r *DefaultOrderRepository) SumEscrowAmount(sellerID string, escrowStatus domain.EscrowStatus) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.DB.Model(&models.OrderModel{}).
		Select("COALESCE(SUM(escrow_amount), 0) AS total").
		Where("seller_id = ? AND escrow_status = ?", sellerID, escrowStatus).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum escrow amount: %w", err)
	}
	return result.Total, nil
}

type DefaultEscrowRepository struct {
	DB *gorm.DB
}

func NewDefaultEscrowRepository(db *gorm.DB) *DefaultEscrowRepository {
	return &DefaultEscrowRepository{DB: db}
}

func (r *DefaultEscrowRepository) GetEscrowByOrderID(orderID string) (*domain.Escrow, error) {
	var model models.EscrowModel
	if err := r.DB.First(&model, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEscrowNotFound
		}
		return nil, err
	}
	return mappers.ToDomainEscrow(&model), nil
}
