package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        string
	ShopID    string
	SellerID  string
	Name      string
	Price     decimal.Decimal
	Stock     int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartItem struct {
	ID        string
	UserID    string
	ProductID string
	Quantity  int32
	CreatedAt time.Time
}
