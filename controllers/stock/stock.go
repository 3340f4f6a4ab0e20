package stockControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zaidqureshi-dev/menuorder-api/models"
	"github.com/zaidqureshi-dev/menuorder-api/services/stock"
)

func parseKind(raw string) (models.StockKind, bool) {
	switch models.StockKind(raw) {
	case models.StockKindMenuItem, models.StockKindStepOption:
		return models.StockKind(raw), true
	}
	return "", false
}

// GET /admin/stock/:kind/:id
func GetStock(svc *stock.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, ok := parseKind(c.Param("kind"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock kind"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		value, err := svc.Get(kind, uint(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read stock"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"kind": kind, "id": id, "stock": value})
	}
}

type SetStockInput struct {
	Stock *int `json:"stock"` // null switches the counter to unlimited
}

// PUT /admin/stock/:kind/:id
func SetStock(svc *stock.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		kind, ok := parseKind(c.Param("kind"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock kind"})
			return
		}
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		var input SetStockInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Stock != nil && *input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
			return
		}

		if err := svc.Set(kind, uint(id), input.Stock); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stock"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"kind": kind, "id": id, "stock": input.Stock})
	}
}
