package routes

import (
	"github.com/gin-gonic/gin"
	catalogControllers "github.com/zaidqureshi-dev/menuorder-api/controllers/catalog"
	stepControllers "github.com/zaidqureshi-dev/menuorder-api/controllers/steps"
	stockControllers "github.com/zaidqureshi-dev/menuorder-api/controllers/stock"
	"github.com/zaidqureshi-dev/menuorder-api/middleware"
	"github.com/zaidqureshi-dev/menuorder-api/services/stock"
	"gorm.io/gorm"
)

func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, stockSvc *stock.Service) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		// checkout step configuration
		admin.GET("/steps", stepControllers.GetSteps(db))
		admin.PUT("/steps", stepControllers.PutSteps(db))

		// catalog seeding
		admin.POST("/categories", catalogControllers.CreateCategory(db))
		admin.POST("/menu-items", catalogControllers.CreateMenuItem(db))

		// stock counters
		admin.GET("/stock/:kind/:id", stockControllers.GetStock(stockSvc))
		admin.PUT("/stock/:kind/:id", stockControllers.SetStock(stockSvc))
	}
}
