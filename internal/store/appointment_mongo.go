package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glowbook/salon-api/internal/models"
)

type MongoAppointmentStore struct {
	coll *mongo.Collection
}

func NewMongoAppointmentStore(db *mongo.Database) *MongoAppointmentStore {
	return &MongoAppointmentStore{coll: db.Collection("appointments")}
}

// Listings sort by date then time so dashboards group naturally by day.
var appointmentSort = options.Find().SetSort(bson.D{
	{Key: "date", Value: 1},
	{Key: "time", Value: 1},
})

func (s *MongoAppointmentStore) Create(ctx context.Context, apt *models.Appointment) error {
	if apt.ID.IsZero() {
		apt.ID = primitive.NewObjectID()
	}
	if apt.Status == "" {
		apt.Status = models.StatusPending
	}
	_, err := s.coll.InsertOne(ctx, apt)
	return err
}

func (s *MongoAppointmentStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	apt := &models.Appointment{}
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(apt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return apt, nil
}

func (s *MongoAppointmentStore) SlotTaken(ctx context.Context, serviceID primitive.ObjectID, date, time string) (bool, error) {
	// Cancelled appointments release their slot.
	filter := bson.M{
		"serviceId": serviceID,
		"date":      date,
		"time":      time,
		"status":    bson.M{"$ne": models.StatusCancelled},
	}
	err := s.coll.FindOne(ctx, filter).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *MongoAppointmentStore) FindByOwner(ctx context.Context, userID primitive.ObjectID, status models.Status) ([]models.Appointment, error) {
	filter := bson.M{"userId": userID, "status": status}
	return s.find(ctx, filter)
}

func (s *MongoAppointmentStore) FindAll(ctx context.Context) ([]models.Appointment, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoAppointmentStore) find(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	cursor, err := s.coll.Find(ctx, filter, appointmentSort)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *MongoAppointmentStore) SetStatus(ctx context.Context, id primitive.ObjectID, status models.Status) (bool, error) {
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}
