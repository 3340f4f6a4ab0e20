package catalogControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zaidqureshi-dev/menuorder-api/models"
	"gorm.io/gorm"
)

// GET /menu
// Returns the browsable storefront: categories with their items, plus the
// extras and drink options drawn from the step configuration.
func GetMenu(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.
			Preload("Items", "enabled = ?", true).
			Preload("Items.Sizes", func(tx *gorm.DB) *gorm.DB { return tx.Order("sort_order, id") }).
			Order("sort_order, id").
			Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch menu"})
			return
		}

		extras, err := optionsForStepType(db, models.StepExtras)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch extras"})
			return
		}
		drinks, err := optionsForStepType(db, models.StepDrinks)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch drinks"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"categories": categories,
			"extras":     extras,
			"drinks":     drinks,
		})
	}
}

// optionsForStepType collects the options of every enabled step of one type.
func optionsForStepType(db *gorm.DB, stepType models.StepType) ([]models.StepOption, error) {
	var options []models.StepOption
	err := db.
		Joins("JOIN checkout_steps ON checkout_steps.id = step_options.step_id").
		Where("checkout_steps.type = ? AND checkout_steps.enabled = ?", stepType, true).
		Order("step_options.sort_order, step_options.id").
		Find(&options).Error
	return options, err
}

type CategoryInput struct {
	Name      string `json:"name" binding:"required"`
	Image     string `json:"image"`
	SortOrder int    `json:"sort_order"`
}

// POST /admin/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		category := models.Category{Name: input.Name, Image: input.Image, SortOrder: input.SortOrder}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

type MenuItemInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Image       string  `json:"image"`
	Stock       *int    `json:"stock"`
	Sizes       []struct {
		Name      string  `json:"name" binding:"required"`
		Price     float64 `json:"price" binding:"required"`
		SortOrder int     `json:"sort_order"`
	} `json:"sizes"`
}

// POST /admin/menu-items
func CreateMenuItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input MenuItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var category models.Category
		if err := db.First(&category, "id = ?", input.CategoryID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate category"
			if err == gorm.ErrRecordNotFound {
				status = http.StatusBadRequest
				errMsg = "Category does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		item := models.MenuItem{
			Name:        input.Name,
			Description: input.Description,
			CategoryID:  input.CategoryID,
			Price:       input.Price,
			Image:       input.Image,
			Stock:       input.Stock,
			Enabled:     true,
		}
		for _, s := range input.Sizes {
			item.Sizes = append(item.Sizes, models.MenuItemSize{
				Name:      s.Name,
				Price:     s.Price,
				SortOrder: s.SortOrder,
			})
		}
		if err := db.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create menu item"})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}
