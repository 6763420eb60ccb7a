package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"rental-backend/models"
	"rental-backend/services"

	"github.com/gin-gonic/gin"
)

type ItemController struct {
	ItemSvc *services.ItemService
}

func NewItemController(svc *services.ItemService) *ItemController {
	return &ItemController{ItemSvc: svc}
}

type itemPayload struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	PricePerDay   int64  `json:"price_per_day"`
	QuantityTotal int    `json:"quantity_total"`
	IsActive      *bool  `json:"is_active"`
	Category      string `json:"category"`
	ImageRef      string `json:"image_ref"`
}

// GetItems is the public storefront catalog: active items only.
func (ctrl *ItemController) GetItems(c *gin.Context) {
	items, err := ctrl.ItemSvc.ActiveItems(c.Request.Context())
	if err != nil {
		log.Printf("GetItems error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetAllItems lists the full inventory for the admin dashboard,
// disabled items included.
func (ctrl *ItemController) GetAllItems(c *gin.Context) {
	items, err := ctrl.ItemSvc.AllItems()
	if err != nil {
		log.Printf("GetAllItems error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (ctrl *ItemController) CreateItem(c *gin.Context) {
	var payload itemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item := payloadToItem(payload)
	if err := ctrl.ItemSvc.Create(c.Request.Context(), &item); err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("CreateItem error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "id": item.ID})
}

func (ctrl *ItemController) UpdateItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var payload itemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item := payloadToItem(payload)
	item.ID = id
	if err := ctrl.ItemSvc.Update(c.Request.Context(), &item); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		default:
			log.Printf("UpdateItem error for item %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update item"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (ctrl *ItemController) DeleteItem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.ItemSvc.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrItemReferenced):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Cannot delete this item because it has been used in a booking. Disable it instead.",
			})
		case errors.Is(err, services.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		default:
			log.Printf("DeleteItem error for item %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func payloadToItem(payload itemPayload) models.Item {
	active := true
	if payload.IsActive != nil {
		active = *payload.IsActive
	}
	return models.Item{
		Name:          payload.Name,
		Description:   payload.Description,
		PricePerDay:   payload.PricePerDay,
		QuantityTotal: payload.QuantityTotal,
		IsActive:      active,
		Category:      payload.Category,
		ImageRef:      payload.ImageRef,
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
