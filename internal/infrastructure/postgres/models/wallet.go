package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
)

type WalletModel struct {
	ID        string          `gorm:"primaryKey;type:uuid"`
	UserID    string          `gorm:"type:uuid;not null;uniqueIndex"`
	Balance   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Currency  string          `gorm:"type:varchar(3);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (WalletModel) TableName() string {
	return "wallets"
}

type WalletTransactionModel struct {
	ID           string                   `gorm:"primaryKey;type:uuid"`
	WalletID     string                   `gorm:"type:uuid;not null;index"`
	UserID       string                   `gorm:"type:uuid;not null;index"`
	Type         domain.TransactionType   `gorm:"not null;index"`
	Amount       decimal.Decimal          `gorm:"type:decimal(12,2);not null"`
	Currency     string                   `gorm:"type:varchar(3);not null"`
	Description  string                   `gorm:"type:text"`
	Reference    string                   `gorm:"type:varchar(255);index"`
	Status       domain.TransactionStatus `gorm:"not null"`
	BalanceAfter decimal.Decimal          `gorm:"type:decimal(12,2);not null"`
	CreatedAt    time.Time                `gorm:"index"`
}

func (WalletTransactionModel) TableName() string {
	return "wallet_transactions"
}
