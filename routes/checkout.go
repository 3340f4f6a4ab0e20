package routes

import (
	"github.com/gin-gonic/gin"
	catalogControllers "github.com/zaidqureshi-dev/menuorder-api/controllers/catalog"
	checkoutControllers "github.com/zaidqureshi-dev/menuorder-api/controllers/checkout"
	"github.com/zaidqureshi-dev/menuorder-api/middleware"
	"github.com/zaidqureshi-dev/menuorder-api/services/stock"
	"github.com/zaidqureshi-dev/menuorder-api/session"
	"gorm.io/gorm"
)

func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/menu", catalogControllers.GetMenu(db)) // GET /menu
}

// SetupCheckoutRoutes registers the session endpoints. Everything below
// "/session" except creation requires the session token.
func SetupCheckoutRoutes(r *gin.Engine, db *gorm.DB, m *session.Manager, stockSvc *stock.Service) {
	r.POST("/session", checkoutControllers.CreateSession(m)) // POST /session

	sessionGroup := r.Group("/session")
	sessionGroup.Use(middleware.ValidateSessionToken)
	{
		sessionGroup.GET("/state", checkoutControllers.GetState(db, m)) // GET /session/state
		sessionGroup.GET("/steps", checkoutControllers.GetSteps(db, m)) // GET /session/steps

		sessionGroup.POST("/cart", checkoutControllers.AddCartItem(db, m))                    // POST /session/cart
		sessionGroup.DELETE("/cart/:instance_id", checkoutControllers.RemoveCartItem(db, m)) // DELETE /session/cart/:instance_id
		sessionGroup.DELETE("/cart", checkoutControllers.ClearCart(db, m))                   // DELETE /session/cart

		sessionGroup.POST("/select", checkoutControllers.Select(db, m))             // POST /session/select
		sessionGroup.POST("/input", checkoutControllers.Input(db, m))               // POST /session/input
		sessionGroup.POST("/next", checkoutControllers.NextStep(db, m, stockSvc))   // POST /session/next
		sessionGroup.POST("/back", checkoutControllers.BackStep(db, m))             // POST /session/back
	}
}
