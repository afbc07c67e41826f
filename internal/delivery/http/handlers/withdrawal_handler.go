package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nyasamarket/escrow-service/internal/delivery/http/middleware"
	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/usecase/withdrawal"
)

type WithdrawalHandler struct {
	withdrawals *withdrawal.Usecase
}

func NewWithdrawalHandler(withdrawals *withdrawal.Usecase) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawals: withdrawals}
}

type withdrawalRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Method        string          `json:"withdrawal_method" binding:"required"`
	AccountNumber string          `json:"account_number" binding:"required"`
	AccountName   string          `json:"account_name" binding:"required"`
}

func (h *WithdrawalHandler) Request(c *gin.Context) {
	var req withdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	request, err := h.withdrawals.Request(c.Request.Context(), userID, &withdrawal.RequestInput{
		Amount:        req.Amount,
		Method:        domain.WithdrawalMethod(req.Method),
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "withdrawal requested", request)
}

func (h *WithdrawalHandler) GetMyWithdrawals(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	page, limit := pagination(c)
	filters := domain.WithdrawalFilters{
		Status: domain.WithdrawalStatus(c.Query("status")),
	}

	requests, total, err := h.withdrawals.ListByUser(userID, filters, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "withdrawals", pagedResponse{Items: requests, Total: total, Page: page, Limit: limit})
}

func (h *WithdrawalHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	filters := domain.WithdrawalFilters{
		Status: domain.WithdrawalStatus(c.Query("status")),
	}

	requests, total, err := h.withdrawals.List(filters, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "withdrawals", pagedResponse{Items: requests, Total: total, Page: page, Limit: limit})
}

func (h *WithdrawalHandler) Get(c *gin.Context) {
	request, err := h.withdrawals.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	role := c.GetString(middleware.ContextRole)
	if role != middleware.RoleAdmin && request.UserID != userID {
		respond(c, http.StatusForbidden, "forbidden", nil)
		return
	}

	respond(c, http.StatusOK, "withdrawal", request)
}

type processRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

func (h *WithdrawalHandler) Process(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	adminID := c.GetString(middleware.ContextUserID)
	request, err := h.withdrawals.Process(c.Request.Context(), c.Param("id"), req.Approve, adminID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "withdrawal rejected, no funds moved"
	if req.Approve {
		message = "withdrawal approved and paid out"
	}
	respond(c, http.StatusOK, message, request)
}
