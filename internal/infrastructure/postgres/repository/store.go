package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/postgres/models"
)

// GormSettlementStore runs settlement steps inside a database
// transaction. Row locks come from SELECT ... FOR UPDATE so a
// concurrent settlement step cannot read a stale precondition.
type GormSettlementStore struct {
	DB *gorm.DB
}

func NewGormSettlementStore(db *gorm.DB) *GormSettlementStore {
	return &GormSettlementStore{DB: db}
}

func (s *GormSettlementStore) WithinTx(ctx context.Context, fn func(tx domain.SettlementTx) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSettlementTx{db: tx})
	})
}

type gormSettlementTx struct {
	db *gorm.DB
}

func (t *gormSettlementTx) forUpdate() *gorm.DB {
	return t.db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (t *gormSettlementTx) CreateOrder(order *domain.Order, items []*domain.OrderItem) error {
	orderModel := mappers.ToGORMOrder(order)
	if err := t.db.Create(orderModel).Error; err != nil {
		return err
	}
	for _, item := range items {
		if err := t.db.Create(mappers.ToGORMOrderItem(item)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (t *gormSettlementTx) GetOrderForUpdate(orderID string) (*domain.Order, error) {
	var model models.OrderModel
	if err := t.forUpdate().First(&model, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&model), nil
}

func (t *gormSettlementTx) UpdateOrder(order *domain.Order) error {
	model := mappers.ToGORMOrder(order)
	return t.db.Model(&models.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":                model.Status,
			"payment_status":        model.PaymentStatus,
			"escrow_status":         model.EscrowStatus,
			"payment_reference":     model.PaymentReference,
			"delivery_confirmed_at": model.DeliveryConfirmedAt,
			"funds_released_at":     model.FundsReleasedAt,
		}).Error
}

func (t *gormSettlementTx) GetOrderItems(orderID string) ([]*domain.OrderItem, error) {
	var itemModels []models.OrderItemModel
	if err := t.db.Where("order_id = ?", orderID).Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.OrderItem, len(itemModels))
	for i := range itemModels {
		items[i] = mappers.ToDomainOrderItem(&itemModels[i])
	}
	return items, nil
}

func (t *gormSettlementTx) CreateEscrow(escrow *domain.Escrow) error {
	return t.db.Create(mappers.ToGORMEscrow(escrow)).Error
}

func (t *gormSettlementTx) GetEscrowForUpdate(orderID string) (*domain.Escrow, error) {
	var model models.EscrowModel
	if err := t.forUpdate().First(&model, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEscrowNotFound
		}
		return nil, err
	}
	return mappers.ToDomainEscrow(&model), nil
}

func (t *gormSettlementTx) UpdateEscrow(escrow *domain.Escrow) error {
	model := mappers.ToGORMEscrow(escrow)
	return t.db.Model(&models.EscrowModel{}).
		Where("id = ?", escrow.ID).
		Updates(map[string]interface{}{
			"status":      model.Status,
			"released_at": model.ReleasedAt,
			"refunded_at": model.RefundedAt,
		}).Error
}

func (t *gormSettlementTx) GetWalletForUpdate(userID string) (*domain.Wallet, error) {
	var model models.WalletModel
	if err := t.forUpdate().First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return mappers.ToDomainWallet(&model), nil
}

func (t *gormSettlementTx) CreateWallet(wallet *domain.Wallet) error {
	return t.db.Create(mappers.ToGORMWallet(wallet)).Error
}

func (t *gormSettlementTx) UpdateWalletBalance(walletID string, balance decimal.Decimal) error {
	return t.db.Model(&models.WalletModel{}).
		Where("id = ?", walletID).
		Update("balance", balance).Error
}

func (t *gormSettlementTx) CreateWalletTransaction(txn *domain.WalletTransaction) error {
	return t.db.Create(mappers.ToGORMWalletTransaction(txn)).Error
}

func (t *gormSettlementTx) CreateWithdrawal(request *domain.WithdrawalRequest) error {
	return t.db.Create(mappers.ToGORMWithdrawal(request)).Error
}

func (t *gormSettlementTx) GetWithdrawalForUpdate(requestID string) (*domain.WithdrawalRequest, error) {
	var model models.WithdrawalRequestModel
	if err := t.forUpdate().First(&model, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, err
	}
	return mappers.ToDomainWithdrawal(&model), nil
}

func (t *gormSettlementTx) UpdateWithdrawal(request *domain.WithdrawalRequest) error {
	model := mappers.ToGORMWithdrawal(request)
	return t.db.Model(&models.WithdrawalRequestModel{}).
		Where("id = ?", request.ID).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"admin_notes":  model.AdminNotes,
			"processed_by": model.ProcessedBy,
			"processed_at": model.ProcessedAt,
		}).Error
}

func (t *gormSettlementTx) GetProductForUpdate(productID string) (*domain.Product, error) {
	var model models.ProductModel
	if err := t.forUpdate().First(&model, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return mappers.ToDomainProduct(&model), nil
}

func (t *gormSettlementTx) UpdateProductStock(productID string, stock int32) error {
	return t.db.Model(&models.ProductModel{}).
		Where("id = ?", productID).
		Update("stock", stock).Error
}

func (t *gormSettlementTx) GetCartItems(userID string) ([]*domain.CartItem, error) {
	var itemModels []models.CartItemModel
	if err := t.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.CartItem, len(itemModels))
	for i := range itemModels {
		items[i] = mappers.ToDomainCartItem(&itemModels[i])
	}
	return items, nil
}

func (t *gormSettlementTx) ClearCart(userID string) error {
	return t.db.Where("user_id = ?", userID).Delete(&models.CartItemModel{}).Error
}
