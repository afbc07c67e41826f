package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nyasamarket/escrow-service/internal/delivery/http/handlers"
	"github.com/nyasamarket/escrow-service/internal/delivery/http/middleware"
)

type RouterDeps struct {
	Orders      *handlers.OrderHandler
	Wallets     *handlers.WalletHandler
	Withdrawals *handlers.WithdrawalHandler
	JWTSecret   string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(deps.JWTSecret))

	orders := api.Group("/orders")
	{
		orders.POST("/checkout", deps.Orders.Checkout)
		orders.GET("", deps.Orders.GetMyOrders)
		orders.GET("/:id", deps.Orders.GetOrder)
		orders.GET("/:id/escrow", deps.Orders.GetEscrow)
		orders.POST("/:id/confirm-delivery", deps.Orders.ConfirmDelivery)
		orders.POST("/:id/cancel", deps.Orders.Cancel)

		orders.POST("/:id/pay", middleware.RequireRole(middleware.RoleAdmin), deps.Orders.MarkPaid)
		orders.PATCH("/:id/status", middleware.RequireRole(middleware.RoleSeller), deps.Orders.UpdateStatus)
	}

	seller := api.Group("/seller", middleware.RequireRole(middleware.RoleSeller))
	{
		seller.GET("/earnings", deps.Orders.GetEarnings)
	}

	wallet := api.Group("/wallet")
	{
		wallet.GET("/balance", deps.Wallets.GetBalance)
		wallet.GET("/transactions", deps.Wallets.GetTransactions)
		wallet.POST("/topup", deps.Wallets.TopUp)
	}

	withdrawals := api.Group("/withdrawals")
	{
		withdrawals.POST("", middleware.RequireRole(middleware.RoleSeller), deps.Withdrawals.Request)
		withdrawals.GET("/my", deps.Withdrawals.GetMyWithdrawals)
		withdrawals.GET("/:id", deps.Withdrawals.Get)

		admin := withdrawals.Group("", middleware.RequireRole(middleware.RoleAdmin))
		{
			admin.GET("", deps.Withdrawals.List)
			admin.POST("/:id/process", deps.Withdrawals.Process)
		}
	}

	return router
}
