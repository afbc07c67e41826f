package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
)

type WithdrawalRequestModel struct {
	ID               string                  `gorm:"primaryKey;type:uuid"`
	UserID           string                  `gorm:"type:uuid;not null;index"`
	Amount           decimal.Decimal         `gorm:"type:decimal(12,2);not null"`
	Currency         string                  `gorm:"type:varchar(3);not null"`
	Status           domain.WithdrawalStatus `gorm:"not null;index"`
	WithdrawalMethod domain.WithdrawalMethod `gorm:"not null"`
	AccountNumber    string                  `gorm:"type:varchar(100)"`
	AccountName      string                  `gorm:"type:varchar(255)"`
	AdminNotes       string                  `gorm:"type:text"`
	ProcessedBy      string                  `gorm:"type:uuid"`
	ProcessedAt      *time.Time
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time
}

func (WithdrawalRequestModel) TableName() string {
	return "withdrawal_requests"
}
