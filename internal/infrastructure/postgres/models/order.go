package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
)

type OrderModel struct {
	ID                  string               `gorm:"primaryKey;type:uuid"`
	OrderNumber         string               `gorm:"uniqueIndex;not null"`
	UserID              string               `gorm:"type:uuid;not null;index"`
	SellerID            string               `gorm:"type:uuid;index"`
	Status              domain.OrderStatus   `gorm:"not null;index"`
	PaymentStatus       domain.PaymentStatus `gorm:"not null"`
	EscrowStatus        domain.EscrowStatus  `gorm:"not null;index"`
	TotalAmount         decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	EscrowAmount        decimal.Decimal      `gorm:"type:decimal(12,2)"`
	Currency            string               `gorm:"type:varchar(3);not null"`
	ShippingAddress     string               `gorm:"type:text;not null"`
	ShippingCity        string
	ShippingPhone       string `gorm:"not null"`
	PaymentMethod       string `gorm:"not null"`
	PaymentReference    string
	Notes               string `gorm:"type:text"`
	DeliveryConfirmedAt *time.Time
	FundsReleasedAt     *time.Time
	CreatedAt           time.Time `gorm:"index"`
	UpdatedAt           time.Time
	Items               []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
}

func (OrderModel) TableName() string {
	return "orders"
}

type OrderItemModel struct {
	ID          string          `gorm:"primaryKey;type:uuid"`
	OrderID     string          `gorm:"type:uuid;not null;index"`
	ProductID   string          `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"not null"`
	Quantity    int32           `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time
}

func (OrderItemModel) TableName() string {
	return "order_items"
}
