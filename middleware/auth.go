package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zaidqureshi-dev/menuorder-api/auth"
)

// ValidateSessionToken checks the Authorization header and puts the checkout
// session id on the context.
func ValidateSessionToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}

	sessionID, err := auth.ParseSessionToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	c.Set("session_id", sessionID)
	c.Next()
}
