package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
)

type EscrowModel struct {
	ID         string              `gorm:"primaryKey;type:uuid"`
	OrderID    string              `gorm:"type:uuid;not null;uniqueIndex"`
	SellerID   string              `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	Currency   string              `gorm:"type:varchar(3);not null"`
	Status     domain.EscrowStatus `gorm:"not null;index"`
	HeldAt     *time.Time
	ReleasedAt *time.Time
	RefundedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (EscrowModel) TableName() string {
	return "escrows"
}
