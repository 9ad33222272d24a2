package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/glowbook/salon-api/internal/models"
)

type MongoServiceStore struct {
	coll *mongo.Collection
}

func NewMongoServiceStore(db *mongo.Database) *MongoServiceStore {
	return &MongoServiceStore{coll: db.Collection("services")}
}

func (s *MongoServiceStore) List(ctx context.Context) ([]models.Service, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (s *MongoServiceStore) Create(ctx context.Context, service *models.Service) error {
	if service.ID.IsZero() {
		service.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, service)
	return err
}

func (s *MongoServiceStore) Update(ctx context.Context, id primitive.ObjectID, update ServiceUpdate) (bool, error) {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	if update.Duration != nil {
		set["duration"] = *update.Duration
	}
	if len(set) == 0 {
		return false, nil
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (s *MongoServiceStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
