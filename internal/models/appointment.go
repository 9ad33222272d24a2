package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is an appointment's lifecycle state. Completed and cancelled are
// terminal; nothing transitions out of them.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment reserves a (service, date, time) slot for a user. Date and
// time are kept as the client-facing strings ("2006-01-02", "15:04") so the
// slot key matches exactly what was booked.
type Appointment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	ServiceID primitive.ObjectID `bson:"serviceId" json:"serviceId"`
	Date      string             `bson:"date" json:"date"`
	Time      string             `bson:"time" json:"time"`
	Status    Status             `bson:"status" json:"status"`
}
