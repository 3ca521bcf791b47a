package workshopRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for frequently used fields in queries.
func (r *MongoWorkshopRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	idIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	serviceIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "services.serviceType", Value: 1},
			{Key: "services.isActive", Value: 1},
		},
	}
	geoIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "locationGeo", Value: "2dsphere"}},
	}
	markupIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "workshopId", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{idIdx, serviceIdx, geoIdx}); err != nil {
		return fmt.Errorf("failed to create workshop indexes: %w", err)
	}
	if _, err := r.markups.Indexes().CreateMany(ctx, []mongo.IndexModel{markupIdx}); err != nil {
		return fmt.Errorf("failed to create markup indexes: %w", err)
	}
	return nil
}
