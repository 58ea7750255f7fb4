package reservationRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rentwheels/database"
	"rentwheels/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoReservationRepo implements ReservationRepository using MongoDB.
type MongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo creates a new ReservationRepository backed by MongoDB.
func NewMongoReservationRepo() ReservationRepository {
	coll := database.DB().Collection("reservations")
	repo := &MongoReservationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create reservation indexes: %v\n", err)
	}
	return repo
}

func (r *MongoReservationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoReservationRepo) Insert(ctx context.Context, res *models.Reservation) error {
	if _, err := r.coll.InsertOne(ctx, res); err != nil {
		return fmt.Errorf("failed to insert reservation %s: %w", res.ID, err)
	}
	return nil
}

func (r *MongoReservationRepo) UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	if status == models.ReservationStatusCancelled {
		update["$set"].(bson.M)["cancelled_at"] = time.Now()
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update reservation %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("reservation %s not found", id)
	}
	return nil
}

func (r *MongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	var res models.Reservation
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservation %s: %w", id, err)
	}
	return &res, nil
}

func (r *MongoReservationRepo) ListActive(ctx context.Context) ([]models.Reservation, error) {
	return r.listActive(ctx, bson.M{})
}

func (r *MongoReservationRepo) ListActiveByVehicle(ctx context.Context, vehicleID string) ([]models.Reservation, error) {
	return r.listActive(ctx, bson.M{"vehicle_id": vehicleID})
}

func (r *MongoReservationRepo) listActive(ctx context.Context, filter bson.M) ([]models.Reservation, error) {
	filter["status"] = bson.M{"$in": bson.A{
		models.ReservationStatusHeld,
		models.ReservationStatusConfirmed,
	}}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}
	return reservations, nil
}
