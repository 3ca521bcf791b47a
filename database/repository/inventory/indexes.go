package inventoryRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for frequently used fields in queries.
func (r *MongoInventoryRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Dimension lookups always carry workshopId + full dimension.
	dimensionIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "workshopId", Value: 1},
			{Key: "width", Value: 1},
			{Key: "height", Value: 1},
			{Key: "diameter", Value: 1},
			{Key: "stock", Value: -1},
		},
	}
	brandIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "workshopId", Value: 1},
			{Key: "brand", Value: 1},
		},
	}
	ruleIdx := mongo.IndexModel{
		Keys: bson.D{
			{Key: "workshopId", Value: 1},
			{Key: "rimSize", Value: 1},
			{Key: "vehicleClass", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{dimensionIdx, brandIdx}); err != nil {
		return fmt.Errorf("failed to create inventory indexes: %w", err)
	}
	if _, err := r.rules.Indexes().CreateMany(ctx, []mongo.IndexModel{ruleIdx}); err != nil {
		return fmt.Errorf("failed to create pricing rule indexes: %w", err)
	}
	return nil
}
