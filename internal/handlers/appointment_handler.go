package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/glowbook/salon-api/internal/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// BookAppointment reserves a (service, date, time) slot for the caller.
// The existence check and the insert are not atomic; two simultaneous
// bookings for the same slot can both succeed.
func (h *Handler) BookAppointment(c *gin.Context) {
	var req struct {
		ServiceID string `json:"serviceId" binding:"required"`
		Date      string `json:"date" binding:"required"`
		Time      string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	serviceID, err := primitive.ObjectIDFromHex(req.ServiceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
		return
	}
	if _, err := time.Parse(timeLayout, req.Time); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time, use HH:MM"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taken, err := h.Appointments.SlotTaken(c.Request.Context(), serviceID, req.Date, req.Time)
	if err != nil {
		h.Log.WithError(err).Error("Failed to check slot availability")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book appointment"})
		return
	}
	if taken {
		c.JSON(http.StatusConflict, gin.H{"error": "Slot already booked"})
		return
	}

	apt := models.Appointment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		ServiceID: serviceID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    models.StatusPending,
	}

	if err := h.Appointments.Create(c.Request.Context(), &apt); err != nil {
		h.Log.WithError(err).Error("Failed to create appointment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book appointment"})
		return
	}

	h.Log.WithFields(logrus.Fields{
		"appointment": apt.ID.Hex(),
		"service":     serviceID.Hex(),
		"date":        req.Date,
		"time":        req.Time,
	}).Info("Appointment booked")

	c.JSON(http.StatusCreated, apt)
}

// ListMyAppointments returns the caller's pending appointments. Every role
// sees only its own bookings here; admins have their own route for the
// full view.
func (h *Handler) ListMyAppointments(c *gin.Context) {
	h.listOwned(c, models.StatusPending)
}

// ListMyCompletedAppointments returns the caller's completed appointments.
func (h *Handler) ListMyCompletedAppointments(c *gin.Context) {
	h.listOwned(c, models.StatusCompleted)
}

func (h *Handler) listOwned(c *gin.Context, status models.Status) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	appointments, err := h.Appointments.FindByOwner(c.Request.Context(), userID, status)
	if err != nil {
		h.Log.WithError(err).Error("Failed to fetch appointments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}
	if appointments == nil {
		appointments = make([]models.Appointment, 0)
	}
	c.JSON(http.StatusOK, appointments)
}

// ListAllAppointments backs both the staff and admin dashboards. There is
// no staff-to-appointment assignment model, so staff see everything.
func (h *Handler) ListAllAppointments(c *gin.Context) {
	appointments, err := h.Appointments.FindAll(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("Failed to fetch appointments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}
	if appointments == nil {
		appointments = make([]models.Appointment, 0)
	}
	c.JSON(http.StatusOK, appointments)
}

// UpdateAppointmentStatus moves a pending appointment to completed. Staff
// only; terminal appointments are left untouched.
func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	status, err := models.ParseStatus(req.Status)
	if err != nil || status != models.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be completed"})
		return
	}

	apt, err := h.Appointments.FindByID(c.Request.Context(), id)
	if err != nil {
		h.Log.WithError(err).Error("Failed to look up appointment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment"})
		return
	}
	if apt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}
	if apt.Status.Terminal() {
		c.JSON(http.StatusConflict, gin.H{"error": "Appointment is already " + string(apt.Status)})
		return
	}

	if _, err := h.Appointments.SetStatus(c.Request.Context(), id, models.StatusCompleted); err != nil {
		h.Log.WithError(err).Error("Failed to update appointment status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update appointment"})
		return
	}

	apt.Status = models.StatusCompleted
	c.JSON(http.StatusOK, apt)
}

// CancelAppointment cancels a pending appointment. Only the owning
// customer may cancel; ids are compared structurally.
func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid appointment ID"})
		return
	}

	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	apt, err := h.Appointments.FindByID(c.Request.Context(), id)
	if err != nil {
		h.Log.WithError(err).Error("Failed to look up appointment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment"})
		return
	}
	if apt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}
	if apt.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the booking owner can cancel"})
		return
	}
	if apt.Status.Terminal() {
		c.JSON(http.StatusConflict, gin.H{"error": "Appointment is already " + string(apt.Status)})
		return
	}

	if _, err := h.Appointments.SetStatus(c.Request.Context(), id, models.StatusCancelled); err != nil {
		h.Log.WithError(err).Error("Failed to cancel appointment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel appointment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled successfully"})
}
