package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/glowbook/salon-api/internal/models"
	"github.com/glowbook/salon-api/internal/store"
)

// ListServices is the public catalog listing.
func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.Services.List(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("Failed to fetch services")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}
	if services == nil {
		services = make([]models.Service, 0)
	}
	c.JSON(http.StatusOK, services)
}

// CreateService adds a catalog entry. Admin only; values are taken as
// given beyond presence checks.
func (h *Handler) CreateService(c *gin.Context) {
	var req struct {
		Name     string  `json:"name" binding:"required"`
		Price    float64 `json:"price"`
		Duration int     `json:"duration"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	service := models.Service{
		ID:       primitive.NewObjectID(),
		Name:     req.Name,
		Price:    req.Price,
		Duration: req.Duration,
	}

	if err := h.Services.Create(c.Request.Context(), &service); err != nil {
		h.Log.WithError(err).Error("Failed to create service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}

	c.JSON(http.StatusCreated, service)
}

// UpdateService applies a partial update to a catalog entry.
func (h *Handler) UpdateService(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var req struct {
		Name     *string  `json:"name,omitempty"`
		Price    *float64 `json:"price,omitempty"`
		Duration *int     `json:"duration,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Name == nil && req.Price == nil && req.Duration == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	matched, err := h.Services.Update(c.Request.Context(), id, store.ServiceUpdate{
		Name:     req.Name,
		Price:    req.Price,
		Duration: req.Duration,
	})
	if err != nil {
		h.Log.WithError(err).Error("Failed to update service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		return
	}
	if !matched {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service updated successfully"})
}

// DeleteService removes a catalog entry. Appointments referencing it are
// left in place.
func (h *Handler) DeleteService(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	deleted, err := h.Services.Delete(c.Request.Context(), id)
	if err != nil {
		h.Log.WithError(err).Error("Failed to delete service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
