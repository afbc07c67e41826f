package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nyasamarket/escrow-service/internal/domain"
)

type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respond(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, response{Success: code < http.StatusBadRequest, Message: message, Data: data})
}

// respondError maps domain sentinels to HTTP statuses. Unknown errors
// surface as 500 with a generic message.
func respondError(c *gin.Context, err error) {
	var code int
	switch {
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrWalletNotFound),
		errors.Is(err, domain.ErrWithdrawalNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrEscrowNotFound):
		code = http.StatusNotFound
	case errors.Is(err, domain.ErrNotOrderOwner):
		code = http.StatusForbidden
	case errors.Is(err, domain.ErrAlreadyPaid),
		errors.Is(err, domain.ErrOrderNotPayable),
		errors.Is(err, domain.ErrDeliveryAlreadyConfirmed),
		errors.Is(err, domain.ErrWithdrawalAlreadyProcessed):
		code = http.StatusConflict
	case errors.Is(err, domain.ErrCartEmpty),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrOrderNotDelivered),
		errors.Is(err, domain.ErrEscrowNotHeld),
		errors.Is(err, domain.ErrOrderNotCancellable),
		errors.Is(err, domain.ErrInvalidStatusTransition),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrAmountBelowMinimum),
		errors.Is(err, domain.ErrInvalidAmount):
		code = http.StatusBadRequest
	default:
		respond(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	respond(c, code, err.Error(), nil)
}

func pagination(c *gin.Context) (page, limit int64) {
	page, _ = strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

type pagedResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int64       `json:"page"`
	Limit int64       `json:"limit"`
}
