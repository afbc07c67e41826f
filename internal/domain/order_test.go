package domain

import "testing"

func TestOrderStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{OrderStatusPending, false},
		{OrderStatusProcessing, false},
		{OrderStatusShipped, false},
		{OrderStatusDelivered, true},
		{OrderStatusCancelled, true},
	}
	for _, tt := range tests {
		if got := tt.status.IsTerminal(); got != tt.want {
			t.Errorf("%s.IsTerminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestWithdrawalStatusProcessable(t *testing.T) {
	tests := []struct {
		status WithdrawalStatus
		want   bool
	}{
		{WithdrawalStatusPending, true},
		{WithdrawalStatusProcessing, true},
		{WithdrawalStatusCompleted, false},
		{WithdrawalStatusRejected, false},
	}
	for _, tt := range tests {
		if got := tt.status.Processable(); got != tt.want {
			t.Errorf("%s.Processable() = %v, want %v", tt.status, got, tt.want)
		}
	}
}
