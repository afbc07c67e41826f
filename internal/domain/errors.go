package domain

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrWithdrawalNotFound = errors.New("withdrawal request not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrEscrowNotFound     = errors.New("escrow record not found")

	ErrCartEmpty         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrAlreadyPaid              = errors.New("order is already paid")
	ErrOrderNotPayable          = errors.New("order can no longer be paid")
	ErrOrderNotDelivered        = errors.New("order must be marked as delivered before confirming delivery")
	ErrEscrowNotHeld            = errors.New("escrow is not in held status")
	ErrDeliveryAlreadyConfirmed = errors.New("delivery has already been confirmed")
	ErrOrderNotCancellable      = errors.New("order can no longer be cancelled")
	ErrInvalidStatusTransition  = errors.New("invalid order status transition")

	ErrInsufficientFunds          = errors.New("insufficient available balance")
	ErrWithdrawalAlreadyProcessed = errors.New("withdrawal request is already processed")
	ErrAmountBelowMinimum         = errors.New("amount is below the minimum withdrawal")
	ErrInvalidAmount              = errors.New("amount must be positive")

	ErrNotOrderOwner = errors.New("order does not belong to this user")
)
