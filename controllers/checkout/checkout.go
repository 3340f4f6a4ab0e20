package checkoutControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zaidqureshi-dev/menuorder-api/auth"
	"github.com/zaidqureshi-dev/menuorder-api/checkout"
	orderControllers "github.com/zaidqureshi-dev/menuorder-api/controllers/order"
	"github.com/zaidqureshi-dev/menuorder-api/models"
	"github.com/zaidqureshi-dev/menuorder-api/services/order"
	"github.com/zaidqureshi-dev/menuorder-api/services/stock"
	"github.com/zaidqureshi-dev/menuorder-api/session"
	"gorm.io/gorm"
)

type CreateSessionInput struct {
	TableNumber string `json:"table_number"`
}

// POST /session
func CreateSession(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateSessionInput
		// body is optional; an empty body starts a remote session
		_ = c.ShouldBindJSON(&input)

		s := m.Create(input.TableNumber)
		token, err := auth.IssueSessionToken(s.ID)
		if err != nil {
			m.Delete(s.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"session_id":   s.ID,
			"token":        token,
			"is_table":     s.IsTable,
			"table_number": s.TableNumber,
		})
	}
}

func sessionID(c *gin.Context) (string, bool) {
	idVal, exists := c.Get("session_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return idVal.(string), true
}

func withSession(c *gin.Context, m *session.Manager, fn func(*checkout.Session) error) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := m.With(id, fn); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// stateResponse is the session snapshot every mutating endpoint returns, so
// the storefront can re-render without a second round trip.
func stateResponse(s *checkout.Session, config []models.CheckoutStep) gin.H {
	visible := s.VisibleSteps(config)
	surcharge := s.Surcharge(config)
	return gin.H{
		"cart":          s.Cart.Groups(),
		"subtotal":      s.Cart.Total(),
		"surcharge":     surcharge,
		"total":         s.Cart.Total() + surcharge.Total,
		"step_index":    s.StepIndex,
		"total_steps":   len(visible),
		"delivery_type": s.DeliveryType,
		"is_table":      s.IsTable,
	}
}

// GET /session/state
func GetState(db *gorm.DB, m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, m, func(s *checkout.Session) error {
			config, err := models.LoadSteps(db)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load step config"})
				return nil
			}
			c.JSON(http.StatusOK, stateResponse(s, config))
			return nil
		})
	}
}

type AddCartItemInput struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Size       string `json:"size"`
}

// POST /session/cart
// Every call adds one new instance; quantity is expressed by calling again.
func AddCartItem(db *gorm.DB, m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, m, func(s *checkout.Session) error {
			var input AddCartItemInput
			if err := c.ShouldBindJSON(&input); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
				return nil
			}

			var item models.MenuItem
			if err := db.Preload("Sizes").First(&item, "id = ? AND enabled = ?", input.MenuItemID, true).Error; err != nil {
				status := http.StatusInternalServerError
				errMsg := "Failed to validate menu item"
				if errors.Is(err, gorm.ErrRecordNotFound) {
					status = http.StatusBadRequest
					errMsg = "Menu item does not exist"
				}
				c.JSON(status, gin.H{"error": errMsg})
				return nil
			}
			if item.Stock != nil && *item.Stock <= 0 {
				c.JSON(http.StatusConflict, gin.H{"error": "Item is out of stock"})
				return nil
			}

			instanceID := s.Cart.Add(item, input.Size, item.SizePrice(input.Size))

			config, err := models.LoadSteps(db)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load step config"})
				return nil
			}
			s.Clamp(config)

			resp := stateResponse(s, config)
			resp["instance_id"] = instanceID
			c.JSON(http.StatusCreated, resp)
			return nil
		})
	}
}

// DELETE /session/cart/:instance_id
func RemoveCartItem(db *gorm.DB, m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, m, func(s *checkout.Session) error {
			instanceID := c.Param("instance_id")
			if !s.RemoveInstance(instanceID) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart instance not found"})
				return nil
			}
			config, err := models.LoadSteps(db)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load step config"})
				return nil
			}
			s.Clamp(config)
			c.JSON(http.StatusOK, stateResponse(s, config))
			return nil
		})
	}
}

// DELETE /session/cart
func ClearCart(db *gorm.DB, m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, m, func(s *checkout.Session) error {
			s.Reset()
			config, err := models.LoadSteps(db)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load step config"})
				return nil
			}
			c.JSON(http.StatusOK, stateResponse(s, config))
			return nil
		})
	}
}

// GET /session/steps
// The visible steps with, per step, the relevant instance ids and the current
// selections keyed by scope.
func GetSteps(db *gorm.DB, m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, m, func(s *checkout.Session) error {
			config, err := models.LoadSteps(db)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load step config"})
				return nil
			}

			visible := s.VisibleSteps(config)
			out := make([]gin.H, 0, len(visible))
			for _, step := range visible {
				entry := gin.H{"step": step}
				selections := make(map[string][]uint)
				if checkout.IsPerInstance(step.Type) {
					relevant := checkout.RelevantInstances(step, s.Cart)
					ids := make([]string, 0, len(relevant))
					for _, inst := range relevant {
						ids = append(ids, inst.InstanceID)
						if picked := s.Selections.Selected(step.ID, inst.InstanceID); picked != nil {
							selections[inst.InstanceID] = picked
						}
					}
					entry["relevant_instances"] = ids
				} else if picked := s.Selections.Selected(step.ID, checkout.GlobalKey); picked != nil {
					selections[checkout.GlobalKey] = picked
				}
				entry["selections"] = selections
				out = append(out, entry)
			}

			c.JSON(http.StatusOK, gin.H{
				"steps":      out,
				"step_index": s.StepIndex,
			})
			return nil
		})
	}
}

type SelectInput struct {
	StepID     uint   `json:"step_id" binding:"required"`
	OptionID   uint   `json:"option_id" binding:"required"`
	InstanceID string `json:"instance_id"`
}

// POST /session/select
func Select(db *gorm.DB, m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, m, func(s *checkout.Session) error {
			var input SelectInput
			if err := c.ShouldBindJSON(&input); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
				return nil
			}

			config, err := models.LoadSteps(db)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load step config"})
				return nil
			}

			var step models.CheckoutStep
			found := false
			for _, candidate := range s.VisibleSteps(config) {
				if candidate.ID == input.StepID {
					step = candidate
					found = true
					break
				}
			}
			if !found {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Step is not part of this checkout"})
				return nil
			}

			opt, ok := step.FindOption(input.OptionID)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Option does not belong to this step"})
				return nil
			}
			if !opt.Available() {
				c.JSON(http.StatusConflict, gin.H{"error": "Option is out of stock"})
				return nil
			}

			key := checkout.GlobalKey
			if checkout.IsPerInstance(step.Type) {
				if input.InstanceID == "" {
					c.JSON(http.StatusBadRequest, gin.H{"error": "instance_id is required for this step"})
					return nil
				}
				relevant := false
				for _, inst := range checkout.RelevantInstances(step, s.Cart) {
					if inst.InstanceID == input.InstanceID {
						relevant = true
						break
					}
				}
				if !relevant {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Instance is not relevant for this step"})
					return nil
				}
				key = input.InstanceID
			}

			if !s.Selections.Toggle(step, key, input.OptionID) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Selection limit reached"})
				return nil
			}

			resp := stateResponse(s, config)
			resp["selected"] = s.Selections.Selected(step.ID, key)
			c.JSON(http.StatusOK, resp)
			return nil
		})
	}
}

type InputUpdate struct {
	DeliveryType  *string           `json:"delivery_type"`
	Address       *string           `json:"address"`
	Phone         *string           `json:"phone"`
	NameMode      *string           `json:"name_mode"`
	Name          *string           `json:"name"`
	InstanceNames map[string]string `json:"instance_names"`
	TextStepID    uint              `json:"text_step_id"`
	Text          *string           `json:"text"`
}

// POST /session/input
// Applies free-form wizard input: delivery choice, contact details, recipient
// names, free-text answers. Changing the delivery type can hide later steps,
// so the index is clamped afterwards.
func Input(db *gorm.DB, m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, m, func(s *checkout.Session) error {
			var input InputUpdate
			if err := c.ShouldBindJSON(&input); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
				return nil
			}

			if input.DeliveryType != nil {
				if s.IsTable {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Table sessions cannot change the delivery type"})
					return nil
				}
				switch models.DeliveryType(*input.DeliveryType) {
				case models.DeliveryTypeDelivery, models.DeliveryTypePickup:
					s.DeliveryType = models.DeliveryType(*input.DeliveryType)
				default:
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery type"})
					return nil
				}
			}
			if input.Address != nil {
				s.Address = *input.Address
			}
			if input.Phone != nil {
				s.Phone = *input.Phone
			}
			if input.NameMode != nil {
				switch checkout.NameMode(*input.NameMode) {
				case checkout.NameModeSingle, checkout.NameModeMultiple:
					s.NameMode = checkout.NameMode(*input.NameMode)
				default:
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid name mode"})
					return nil
				}
			}
			if input.Name != nil {
				s.CustomerName = *input.Name
			}
			for instanceID, name := range input.InstanceNames {
				if _, ok := s.Cart.Get(instanceID); ok {
					s.InstanceNames[instanceID] = name
				}
			}
			if input.Text != nil && input.TextStepID != 0 {
				s.TextAnswers[input.TextStepID] = *input.Text
			}

			config, err := models.LoadSteps(db)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load step config"})
				return nil
			}
			s.Clamp(config)
			c.JSON(http.StatusOK, stateResponse(s, config))
			return nil
		})
	}
}

// POST /session/next
// Advances the wizard; on the last step it submits the order: persist first,
// reserve stock after, and surface reservation warnings instead of hiding them.
func NextStep(db *gorm.DB, m *session.Manager, stockSvc *stock.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, m, func(s *checkout.Session) error {
			config, err := models.LoadSteps(db)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load step config"})
				return nil
			}

			submit, err := s.Next(config)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return nil
			}
			if !submit {
				c.JSON(http.StatusOK, stateResponse(s, config))
				return nil
			}

			result, err := orders.Submit(db, stockSvc, config, s)
			if err != nil {
				if errors.Is(err, orders.ErrEmptyCart) {
					c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
					return nil
				}
				// order was not durably recorded; cart and selections stay intact
				c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to place order"})
				return nil
			}

			var placed models.Order
			if err := db.Preload("Items.Options").First(&placed, "id = ?", result.OrderID).Error; err == nil {
				orderControllers.BroadcastOrder(placed)
			}

			c.JSON(http.StatusCreated, gin.H{
				"submitted": true,
				"order":     result,
			})
			return nil
		})
	}
}

// POST /session/back
// Backward movement never validates.
func BackStep(db *gorm.DB, m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		withSession(c, m, func(s *checkout.Session) error {
			config, err := models.LoadSteps(db)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load step config"})
				return nil
			}
			s.Back(config)
			c.JSON(http.StatusOK, stateResponse(s, config))
			return nil
		})
	}
}
