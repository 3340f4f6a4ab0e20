package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/zaidqureshi-dev/menuorder-api/services/stock"
	"github.com/zaidqureshi-dev/menuorder-api/session"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public storefront,
// checkout session, order, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, m *session.Manager, stockSvc *stock.Service) {
	// public storefront (no middleware)
	SetupCatalogRoutes(r, db)

	// checkout sessions (JWT-protected after creation)
	SetupCheckoutRoutes(r, db, m, stockSvc)

	// order lookups and lifecycle
	SetupOrderRoutes(r, db, stockSvc)

	// admin configuration (API-key-protected)
	SetupAdminRoutes(r, db, stockSvc)
}
