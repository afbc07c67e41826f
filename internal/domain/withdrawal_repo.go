package domain

type WithdrawalFilters struct {
	Status WithdrawalStatus
}

type WithdrawalRepository interface {
	GetWithdrawalByID(requestID string) (*WithdrawalRequest, error)
	GetWithdrawals(filters WithdrawalFilters, page, limit int64) ([]*WithdrawalRequest, int64, error)
	GetWithdrawalsByUserID(userID string, filters WithdrawalFilters, page, limit int64) ([]*WithdrawalRequest, int64, error)
}
