package stepControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zaidqureshi-dev/menuorder-api/models"
	"gorm.io/gorm"
)

// GET /admin/steps
func GetSteps(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		steps, err := models.LoadSteps(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch steps"})
			return
		}
		c.JSON(http.StatusOK, steps)
	}
}

// PUT /admin/steps
// Replaces the whole step configuration. Sessions load the config when they
// act, so a replace here never mutates config a running wizard already holds.
func PutSteps(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input []models.CheckoutStep
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		for i := range input {
			if err := input[i].Validate(); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("1 = 1").Delete(&models.StepOption{}).Error; err != nil {
				return err
			}
			if err := tx.Where("1 = 1").Delete(&models.CheckoutStep{}).Error; err != nil {
				return err
			}
			for i := range input {
				input[i].ID = 0
				for j := range input[i].Options {
					input[i].Options[j].ID = 0
					input[i].Options[j].StepID = 0
				}
				if input[i].SortOrder == 0 {
					input[i].SortOrder = i + 1
				}
				if err := tx.Create(&input[i]).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save steps"})
			return
		}

		steps, err := models.LoadSteps(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload steps"})
			return
		}
		c.JSON(http.StatusOK, steps)
	}
}
