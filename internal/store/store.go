package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/glowbook/salon-api/internal/models"
)

// The stores return (nil, nil) when a single-document lookup matches
// nothing; callers translate that into their own not-found handling.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByRole(ctx context.Context, role models.Role) ([]models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// ServiceUpdate carries the optional fields of a partial service update.
// Nil fields are left untouched.
type ServiceUpdate struct {
	Name     *string
	Price    *float64
	Duration *int
}

type ServiceStore interface {
	List(ctx context.Context) ([]models.Service, error)
	Create(ctx context.Context, service *models.Service) error
	Update(ctx context.Context, id primitive.ObjectID, update ServiceUpdate) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type AppointmentStore interface {
	Create(ctx context.Context, apt *models.Appointment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error)
	// SlotTaken reports whether a non-cancelled appointment already occupies
	// the (service, date, time) slot.
	SlotTaken(ctx context.Context, serviceID primitive.ObjectID, date, time string) (bool, error)
	FindByOwner(ctx context.Context, userID primitive.ObjectID, status models.Status) ([]models.Appointment, error)
	FindAll(ctx context.Context) ([]models.Appointment, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (bool, error)
}
