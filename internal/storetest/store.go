// Package storetest provides an in-memory settlement store for usecase
// tests. WithinTx snapshots the state and restores it when fn returns an
// error, matching the commit-or-rollback contract of the real store.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/domain"
)

type Store struct {
	mu sync.Mutex

	orders      map[string]*domain.Order
	orderItems  map[string][]*domain.OrderItem
	escrows     map[string]*domain.Escrow // keyed by order id
	wallets     map[string]*domain.Wallet // keyed by user id
	txns        []*domain.WalletTransaction
	withdrawals map[string]*domain.WithdrawalRequest
	products    map[string]*domain.Product
	carts       map[string][]*domain.CartItem // keyed by user id
}

func New() *Store {
	return &Store{
		orders:      make(map[string]*domain.Order),
		orderItems:  make(map[string][]*domain.OrderItem),
		escrows:     make(map[string]*domain.Escrow),
		wallets:     make(map[string]*domain.Wallet),
		withdrawals: make(map[string]*domain.WithdrawalRequest),
		products:    make(map[string]*domain.Product),
		carts:       make(map[string][]*domain.CartItem),
	}
}

func (s *Store) WithinTx(_ context.Context, fn func(tx domain.SettlementTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.clone()
	if err := fn((*storeTx)(s)); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

func (s *Store) clone() *Store {
	c := New()
	for id, o := range s.orders {
		cp := *o
		c.orders[id] = &cp
	}
	for id, items := range s.orderItems {
		c.orderItems[id] = copyItems(items)
	}
	for id, e := range s.escrows {
		cp := *e
		c.escrows[id] = &cp
	}
	for id, w := range s.wallets {
		cp := *w
		c.wallets[id] = &cp
	}
	for _, t := range s.txns {
		cp := *t
		c.txns = append(c.txns, &cp)
	}
	for id, w := range s.withdrawals {
		cp := *w
		c.withdrawals[id] = &cp
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, items := range s.carts {
		cloned := make([]*domain.CartItem, len(items))
		for i, it := range items {
			cp := *it
			cloned[i] = &cp
		}
		c.carts[id] = cloned
	}
	return c
}

func (s *Store) restore(snapshot *Store) {
	s.orders = snapshot.orders
	s.orderItems = snapshot.orderItems
	s.escrows = snapshot.escrows
	s.wallets = snapshot.wallets
	s.txns = snapshot.txns
	s.withdrawals = snapshot.withdrawals
	s.products = snapshot.products
	s.carts = snapshot.carts
}

func copyItems(items []*domain.OrderItem) []*domain.OrderItem {
	cloned := make([]*domain.OrderItem, len(items))
	for i, it := range items {
		cp := *it
		cloned[i] = &cp
	}
	return cloned
}

// Seed helpers.

func (s *Store) SeedProduct(p *domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.products[p.ID] = &cp
}

func (s *Store) SeedCartItem(item *domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *item
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	s.carts[item.UserID] = append(s.carts[item.UserID], &cp)
}

func (s *Store) SeedWallet(w *domain.Wallet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *w
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	if cp.Currency == "" {
		cp.Currency = domain.DefaultCurrency
	}
	s.wallets[w.UserID] = &cp
}

func (s *Store) SeedOrder(o *domain.Order, items ...*domain.OrderItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *o
	s.orders[o.ID] = &cp
	s.orderItems[o.ID] = copyItems(items)
}

func (s *Store) SeedEscrow(e *domain.Escrow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *e
	s.escrows[e.OrderID] = &cp
}

func (s *Store) SeedWithdrawal(w *domain.WithdrawalRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *w
	s.withdrawals[w.ID] = &cp
}

// storeTx exposes the same state through the transactional interface.
// The store mutex is already held for the duration of WithinTx.
type storeTx Store

func (tx *storeTx) CreateOrder(order *domain.Order, items []*domain.OrderItem) error {
	cp := *order
	tx.orders[order.ID] = &cp
	tx.orderItems[order.ID] = copyItems(items)
	return nil
}

func (tx *storeTx) GetOrderForUpdate(orderID string) (*domain.Order, error) {
	o, ok := tx.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (tx *storeTx) UpdateOrder(order *domain.Order) error {
	if _, ok := tx.orders[order.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	cp := *order
	tx.orders[order.ID] = &cp
	return nil
}

func (tx *storeTx) GetOrderItems(orderID string) ([]*domain.OrderItem, error) {
	return copyItems(tx.orderItems[orderID]), nil
}

func (tx *storeTx) CreateEscrow(escrow *domain.Escrow) error {
	cp := *escrow
	tx.escrows[escrow.OrderID] = &cp
	return nil
}

func (tx *storeTx) GetEscrowForUpdate(orderID string) (*domain.Escrow, error) {
	e, ok := tx.escrows[orderID]
	if !ok {
		return nil, domain.ErrEscrowNotFound
	}
	cp := *e
	return &cp, nil
}

func (tx *storeTx) UpdateEscrow(escrow *domain.Escrow) error {
	if _, ok := tx.escrows[escrow.OrderID]; !ok {
		return domain.ErrEscrowNotFound
	}
	cp := *escrow
	tx.escrows[escrow.OrderID] = &cp
	return nil
}

func (tx *storeTx) GetWalletForUpdate(userID string) (*domain.Wallet, error) {
	w, ok := tx.wallets[userID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (tx *storeTx) CreateWallet(wallet *domain.Wallet) error {
	cp := *wallet
	tx.wallets[wallet.UserID] = &cp
	return nil
}

func (tx *storeTx) UpdateWalletBalance(walletID string, balance decimal.Decimal) error {
	for _, w := range tx.wallets {
		if w.ID == walletID {
			w.Balance = balance
			w.UpdatedAt = time.Now()
			return nil
		}
	}
	return domain.ErrWalletNotFound
}

func (tx *storeTx) CreateWalletTransaction(txn *domain.WalletTransaction) error {
	cp := *txn
	tx.txns = append(tx.txns, &cp)
	return nil
}

func (tx *storeTx) CreateWithdrawal(request *domain.WithdrawalRequest) error {
	cp := *request
	tx.withdrawals[request.ID] = &cp
	return nil
}

func (tx *storeTx) GetWithdrawalForUpdate(requestID string) (*domain.WithdrawalRequest, error) {
	w, ok := tx.withdrawals[requestID]
	if !ok {
		return nil, domain.ErrWithdrawalNotFound
	}
	cp := *w
	return &cp, nil
}

func (tx *storeTx) UpdateWithdrawal(request *domain.WithdrawalRequest) error {
	if _, ok := tx.withdrawals[request.ID]; !ok {
		return domain.ErrWithdrawalNotFound
	}
	cp := *request
	tx.withdrawals[request.ID] = &cp
	return nil
}

func (tx *storeTx) GetProductForUpdate(productID string) (*domain.Product, error) {
	p, ok := tx.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (tx *storeTx) UpdateProductStock(productID string, stock int32) error {
	p, ok := tx.products[productID]
	if !ok {
		return nil
	}
	p.Stock = stock
	return nil
}

func (tx *storeTx) GetCartItems(userID string) ([]*domain.CartItem, error) {
	items := tx.carts[userID]
	cloned := make([]*domain.CartItem, len(items))
	for i, it := range items {
		cp := *it
		cloned[i] = &cp
	}
	return cloned, nil
}

func (tx *storeTx) ClearCart(userID string) error {
	delete(tx.carts, userID)
	return nil
}

// Read-repository views over the same state.

func (s *Store) GetOrderByID(orderID string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	cp.Items = copyItems(s.orderItems[orderID])
	return &cp, nil
}

func (s *Store) GetOrderByNumber(orderNumber string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.OrderNumber == orderNumber {
			cp := *o
			cp.Items = copyItems(s.orderItems[o.ID])
			return &cp, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (s *Store) GetOrdersByUserID(userID string, page, limit int64) ([]*domain.Order, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []*domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			cp := *o
			orders = append(orders, &cp)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return paginate(orders, page, limit), int64(len(orders)), nil
}

func (s *Store) GetOrdersBySellerID(sellerID string, filters domain.OrderFilters, limit int64) ([]*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var orders []*domain.Order
	for _, o := range s.orders {
		if o.SellerID != sellerID {
			continue
		}
		if filters.Status != "" && o.Status != filters.Status {
			continue
		}
		if filters.EscrowStatus != "" && o.EscrowStatus != filters.EscrowStatus {
			continue
		}
		cp := *o
		orders = append(orders, &cp)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	if limit > 0 && int64(len(orders)) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (s *Store) SumEscrowAmount(sellerID string, escrowStatus domain.EscrowStatus) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, o := range s.orders {
		if o.SellerID == sellerID && o.EscrowStatus == escrowStatus {
			total = total.Add(o.EscrowAmount)
		}
	}
	return total, nil
}

func (s *Store) GetEscrowByOrderID(orderID string) (*domain.Escrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.escrows[orderID]
	if !ok {
		return nil, domain.ErrEscrowNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *Store) GetWalletByUserID(userID string) (*domain.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[userID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (s *Store) GetTransactions(userID string, filters domain.TransactionFilters, page, limit int64) ([]*domain.WalletTransaction, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var txns []*domain.WalletTransaction
	for _, t := range s.txns {
		if t.UserID != userID {
			continue
		}
		if filters.Type != "" && t.Type != filters.Type {
			continue
		}
		cp := *t
		txns = append(txns, &cp)
	}
	return paginate(txns, page, limit), int64(len(txns)), nil
}

func (s *Store) GetWithdrawalByID(requestID string) (*domain.WithdrawalRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.withdrawals[requestID]
	if !ok {
		return nil, domain.ErrWithdrawalNotFound
	}
	cp := *w
	return &cp, nil
}

func (s *Store) GetWithdrawals(filters domain.WithdrawalFilters, page, limit int64) ([]*domain.WithdrawalRequest, int64, error) {
	return s.listWithdrawals("", filters, page, limit)
}

func (s *Store) GetWithdrawalsByUserID(userID string, filters domain.WithdrawalFilters, page, limit int64) ([]*domain.WithdrawalRequest, int64, error) {
	return s.listWithdrawals(userID, filters, page, limit)
}

func (s *Store) listWithdrawals(userID string, filters domain.WithdrawalFilters, page, limit int64) ([]*domain.WithdrawalRequest, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var requests []*domain.WithdrawalRequest
	for _, w := range s.withdrawals {
		if userID != "" && w.UserID != userID {
			continue
		}
		if filters.Status != "" && w.Status != filters.Status {
			continue
		}
		cp := *w
		requests = append(requests, &cp)
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].CreatedAt.After(requests[j].CreatedAt) })
	return paginate(requests, page, limit), int64(len(requests)), nil
}

func paginate[T any](items []T, page, limit int64) []T {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return items
	}
	offset := (page - 1) * limit
	if offset >= int64(len(items)) {
		return nil
	}
	end := offset + limit
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[offset:end]
}

// Test inspection helpers.

func (s *Store) WalletBalance(userID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[userID]
	if !ok {
		return decimal.Zero
	}
	return w.Balance
}

func (s *Store) ProductStock(productID string) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[productID]
	if !ok {
		return 0
	}
	return p.Stock
}

func (s *Store) TransactionsByReference(reference string) []*domain.WalletTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var txns []*domain.WalletTransaction
	for _, t := range s.txns {
		if t.Reference == reference {
			cp := *t
			txns = append(txns, &cp)
		}
	}
	return txns
}
