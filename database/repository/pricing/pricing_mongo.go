package pricingRepo

import (
	"context"
	"fmt"
	"time"

	"rentwheels/database"
	"rentwheels/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPricingRepo implements PricingRuleRepository using MongoDB. The admin
// dashboard owns writes to these collections; the engine only reads.
type MongoPricingRepo struct {
	ruleColl  *mongo.Collection
	promoColl *mongo.Collection
}

// NewMongoPricingRepo creates a new PricingRuleRepository backed by MongoDB.
func NewMongoPricingRepo() PricingRuleRepository {
	repo := &MongoPricingRepo{
		ruleColl:  database.DB().Collection("pricing_rules"),
		promoColl: database.DB().Collection("promotions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create pricing indexes: %v\n", err)
	}
	return repo
}

func (r *MongoPricingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ruleIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "location_id", Value: 1}}},
	}
	if _, err := r.ruleColl.Indexes().CreateMany(ctx, ruleIndexes); err != nil {
		return fmt.Errorf("failed to create rule indexes: %w", err)
	}
	promoIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}},
	}
	if _, err := r.promoColl.Indexes().CreateMany(ctx, promoIndexes); err != nil {
		return fmt.Errorf("failed to create promotion indexes: %w", err)
	}
	return nil
}

// ListActiveRules fetches active rules scoped to the location/category or
// unscoped. Validity windows and the rest of the condition set are evaluated
// by the rule matcher, not the query.
func (r *MongoPricingRepo) ListActiveRules(ctx context.Context, locationID string, category models.VehicleCategory, asOf time.Time) ([]models.PricingRule, error) {
	filter := bson.M{
		"status": models.RuleStatusActive,
		"$and": bson.A{
			bson.M{"$or": bson.A{
				bson.M{"location_id": bson.M{"$exists": false}},
				bson.M{"location_id": ""},
				bson.M{"location_id": locationID},
			}},
			bson.M{"$or": bson.A{
				bson.M{"categories": bson.M{"$exists": false}},
				bson.M{"categories": bson.M{"$size": 0}},
				bson.M{"categories": category},
			}},
		},
	}

	cursor, err := r.ruleColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []models.PricingRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode pricing rules: %w", err)
	}
	return rules, nil
}

// ListActivePromotions fetches promotions whose validity window covers asOf.
func (r *MongoPricingRepo) ListActivePromotions(ctx context.Context, asOf time.Time) ([]models.Promotion, error) {
	filter := bson.M{
		"$and": bson.A{
			bson.M{"$or": bson.A{
				bson.M{"valid_from": bson.M{"$exists": false}},
				bson.M{"valid_from": bson.M{"$lte": asOf}},
			}},
			bson.M{"$or": bson.A{
				bson.M{"valid_until": bson.M{"$exists": false}},
				bson.M{"valid_until": bson.M{"$gt": asOf}},
			}},
		},
	}

	cursor, err := r.promoColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	defer cursor.Close(ctx)

	var promos []models.Promotion
	if err := cursor.All(ctx, &promos); err != nil {
		return nil, fmt.Errorf("failed to decode promotions: %w", err)
	}
	return promos, nil
}
