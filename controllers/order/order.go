package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zaidqureshi-dev/menuorder-api/models"
	"github.com/zaidqureshi-dev/menuorder-api/services/order"
	"github.com/zaidqureshi-dev/menuorder-api/services/stock"
	"gorm.io/gorm"
)

// GET /orders (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.
			Preload("Items").
			Preload("Items.Options").
			Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
		var list []models.Order
		if err := query.Find(&list).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /orders/:orderRef
func GetOrderByRefHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("orderRef")
		if ref == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderRef is required"})
			return
		}
		var order models.Order
		if err := db.
			Preload("Items").
			Preload("Items.Options").
			Where("order_ref = ?", ref).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /orders/:orderRef/confirm
func ConfirmOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("orderRef")
		if err := orders.Confirm(db, ref); err != nil {
			switch {
			case errors.Is(err, orders.ErrOrderNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, orders.ErrNotPending):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm order"})
			}
			return
		}
		broadcastStatus(db, ref)
		c.JSON(http.StatusOK, gin.H{"message": "Order confirmed"})
	}
}

// PUT /orders/:orderRef/cancel
// Cancelling releases the stock recorded on the order, exactly once; calling
// again is a no-op.
func CancelOrderHandler(db *gorm.DB, stockSvc *stock.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("orderRef")
		warnings, err := orders.Cancel(db, stockSvc, ref)
		if err != nil {
			switch {
			case errors.Is(err, orders.ErrOrderNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, orders.ErrAlreadyCancelled):
				c.JSON(http.StatusOK, gin.H{"message": "Order was already cancelled"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel order"})
			}
			return
		}
		broadcastStatus(db, ref)
		resp := gin.H{"message": "Order cancelled"}
		if len(warnings) > 0 {
			resp["warnings"] = warnings
		}
		c.JSON(http.StatusOK, resp)
	}
}

func broadcastStatus(db *gorm.DB, ref string) {
	var order models.Order
	if err := db.Preload("Items.Options").Where("order_ref = ?", ref).First(&order).Error; err == nil {
		BroadcastOrder(order)
	}
}
