package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/store"
)

type Handler struct {
	Users        store.UserStore
	Services     store.ServiceStore
	Appointments store.AppointmentStore
	Log          *logrus.Logger
}

func NewHandler(users store.UserStore, services store.ServiceStore, appointments store.AppointmentStore, log *logrus.Logger) *Handler {
	return &Handler{
		Users:        users,
		Services:     services,
		Appointments: appointments,
		Log:          log,
	}
}

// callerID returns the authenticated caller's id from the request context.
// RequireAuth guarantees the value is present and well-formed on protected
// routes.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	hex, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex.(string))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
