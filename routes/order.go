package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/zaidqureshi-dev/menuorder-api/controllers/order"
	"github.com/zaidqureshi-dev/menuorder-api/middleware"
	"github.com/zaidqureshi-dev/menuorder-api/services/stock"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, stockSvc *stock.Service) {
	orders := r.Group("/orders")
	{
		// shopper-facing lookup by reference
		orders.GET("/:orderRef", orderControllers.GetOrderByRefHandler(db))

		admin := orders.Group("")
		admin.Use(middleware.ValidateAPIKey)
		{
			// list all orders, optionally filtered by status
			admin.GET("", orderControllers.GetAllOrdersHandler(db))

			// websocket feed for real-time order updates
			admin.GET("/ws", orderControllers.OrderFeedHandler)

			// lifecycle transitions
			admin.PUT("/:orderRef/confirm", orderControllers.ConfirmOrderHandler(db))
			admin.PUT("/:orderRef/cancel", orderControllers.CancelOrderHandler(db, stockSvc))
		}
	}
}
