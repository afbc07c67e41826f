package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nyasamarket/escrow-service/internal/delivery/http/middleware"
	"github.com/nyasamarket/escrow-service/internal/domain"
	"github.com/nyasamarket/escrow-service/internal/usecase/settlement"
)

type OrderHandler struct {
	engine *settlement.Engine
}

func NewOrderHandler(engine *settlement.Engine) *OrderHandler {
	return &OrderHandler{engine: engine}
}

type checkoutRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	ShippingCity    string `json:"shipping_city"`
	ShippingPhone   string `json:"shipping_phone" binding:"required"`
	PaymentMethod   string `json:"payment_method"`
	Notes           string `json:"notes"`
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	order, err := h.engine.CreateOrder(c.Request.Context(), userID, &settlement.CheckoutInput{
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingPhone:   req.ShippingPhone,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "order created", order)
}

func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	page, limit := pagination(c)

	orders, total, err := h.engine.GetOrdersByUserID(userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "orders", pagedResponse{Items: orders, Total: total, Page: page, Limit: limit})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.engine.GetOrderByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	// buyers and sellers only see their own orders
	userID := c.GetString(middleware.ContextUserID)
	role := c.GetString(middleware.ContextRole)
	if role != middleware.RoleAdmin && order.UserID != userID && order.SellerID != userID {
		respondError(c, domain.ErrNotOrderOwner)
		return
	}

	respond(c, http.StatusOK, "order", order)
}

type markPaidRequest struct {
	PaymentReference string `json:"payment_reference" binding:"required"`
}

// MarkPaid is the payment confirmation hook. It is admin-gated because
// the payment provider callback goes through the gateway with an admin
// service token.
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	var req markPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.engine.MarkPaid(c.Request.Context(), c.Param("id"), req.PaymentReference); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "payment confirmed, funds held in escrow", nil)
}

func (h *OrderHandler) ConfirmDelivery(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if err := h.engine.ConfirmDelivery(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "delivery confirmed, funds released to seller", nil)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if err := h.engine.Cancel(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "order cancelled", nil)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.engine.UpdateStatus(c.Request.Context(), c.Param("id"), domain.OrderStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "order status updated", nil)
}

func (h *OrderHandler) GetEscrow(c *gin.Context) {
	order, err := h.engine.GetOrderByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	role := c.GetString(middleware.ContextRole)
	if role != middleware.RoleAdmin && order.UserID != userID && order.SellerID != userID {
		respondError(c, domain.ErrNotOrderOwner)
		return
	}

	escrow, err := h.engine.GetEscrowByOrderID(order.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "escrow", escrow)
}

func (h *OrderHandler) GetEarnings(c *gin.Context) {
	sellerID := c.GetString(middleware.ContextUserID)
	summary, err := h.engine.GetEarnings(sellerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "earnings", summary)
}
