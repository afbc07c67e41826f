package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// SettlementStore runs a settlement step as a single database
// transaction. Everything mutated through the SettlementTx handed to fn
// commits or rolls back as one outcome.
type SettlementStore interface {
	WithinTx(ctx context.Context, fn func(tx SettlementTx) error) error
}

// SettlementTx is the transactional surface of a settlement step. All
// *ForUpdate reads take a row lock, so preconditions validated against
// the returned state hold until commit.
type SettlementTx interface {
	CreateOrder(order *Order, items []*OrderItem) error
	GetOrderForUpdate(orderID string) (*Order, error)
	UpdateOrder(order *Order) error
	GetOrderItems(orderID string) ([]*OrderItem, error)

	CreateEscrow(escrow *Escrow) error
	GetEscrowForUpdate(orderID string) (*Escrow, error)
	UpdateEscrow(escrow *Escrow) error

	GetWalletForUpdate(userID string) (*Wallet, error)
	CreateWallet(wallet *Wallet) error
	UpdateWalletBalance(walletID string, balance decimal.Decimal) error
	CreateWalletTransaction(txn *WalletTransaction) error

	CreateWithdrawal(request *WithdrawalRequest) error
	GetWithdrawalForUpdate(requestID string) (*WithdrawalRequest, error)
	UpdateWithdrawal(request *WithdrawalRequest) error

	GetProductForUpdate(productID string) (*Product, error)
	UpdateProductStock(productID string, stock int32) error

	GetCartItems(userID string) ([]*CartItem, error)
	ClearCart(userID string) error
}
