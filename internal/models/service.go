package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Service is a bookable offering. Appointments reference services by id
// only; deleting a service does not touch its appointments.
type Service struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price"`
	Duration int                `bson:"duration" json:"duration"` // minutes
}
