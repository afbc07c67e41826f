package mappers

import (
	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/infrastructure/postgres/models"
)

func ToGORMWallet(wallet *domain.Wallet) *models.WalletModel {
	return &models.WalletModel{
		ID:        wallet.ID,
		UserID:    wallet.UserID,
		Balance:   wallet.Balance,
		Currency:  wallet.Currency,
		CreatedAt: wallet.CreatedAt,
		UpdatedAt: wallet.UpdatedAt,
	}
}

func ToDomainWallet(model *models.WalletModel) *domain.Wallet {
	return &domain.Wallet{
		ID:        model.ID,
		UserID:    model.UserID,
		Balance:   model.Balance,
		Currency:  model.Currency,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func ToGORMWalletTransaction(txn *domain.WalletTransaction) *models.WalletTransactionModel {
	return &models.WalletTransactionModel{
		ID:           txn.ID,
		WalletID:     txn.WalletID,
		UserID:       txn.UserID,
		Type:         txn.Type,
		Amount:       txn.Amount,
		Currency:     txn.Currency,
		Description:  txn.Description,
		Reference:    txn.Reference,
		Status:       txn.Status,
		BalanceAfter: txn.BalanceAfter,
		CreatedAt:    txn.CreatedAt,
	}
}

func ToDomainWalletTransaction(model *models.WalletTransactionModel) *domain.WalletTransaction {
	return &domain.WalletTransaction{
		ID:           model.ID,
		WalletID:     model.WalletID,
		UserID:       model.UserID,
		Type:         model.Type,
		Amount:       model.Amount,
		Currency:     model.Currency,
		Description:  model.Description,
		Reference:    model.Reference,
		Status:       model.Status,
		BalanceAfter: model.BalanceAfter,
		CreatedAt:    model.CreatedAt,
	}
}
