package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/delivery/http/middleware"
	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/usecase/wallet"
)

type WalletHandler struct {
	wallets *wallet.Usecase
}

func NewWalletHandler(wallets *wallet.Usecase) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	balance, currency, err := h.wallets.GetBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "wallet balance", gin.H{
		"balance":  balance,
		"currency": currency,
	})
}

func (h *WalletHandler) GetTransactions(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	page, limit := pagination(c)
	filters := domain.TransactionFilters{
		Type: domain.TransactionType(c.Query("type")),
	}

	transactions, total, err := h.wallets.GetTransactions(userID, filters, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "wallet transactions", pagedResponse{Items: transactions, Total: total, Page: page, Limit: limit})
}

type topUpRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod string          `json:"payment_method"`
}

func (h *WalletHandler) TopUp(c *gin.Context) {
	var req topUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	result, err := h.wallets.TopUp(c.Request.Context(), userID, req.Amount, req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "wallet topped up", result)
}
