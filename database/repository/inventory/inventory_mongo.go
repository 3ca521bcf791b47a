package inventoryRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"reifenmarkt/config"
	"reifenmarkt/database"
	"reifenmarkt/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoInventoryRepo implements InventoryRepository using MongoDB.
type MongoInventoryRepo struct {
	coll  *mongo.Collection
	rules *mongo.Collection
}

// NewMongoInventoryRepo creates a new instance of InventoryRepository using MongoDB.
func NewMongoInventoryRepo() InventoryRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoInventoryRepo{
		coll:  db.Collection("workshop_inventory"),
		rules: db.Collection("tire_pricing_rules"),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("inventory repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func (q InventoryQuery) filter() bson.M {
	filter := bson.M{
		"workshopId": q.WorkshopID,
		"width":      q.Width,
		"height":     q.Height,
		"diameter":   q.Diameter,
		"stock":      bson.M{"$gte": q.MinStock},
	}
	if q.Season != "" && q.Season != models.SeasonAny {
		filter["season"] = q.Season
	}
	if len(q.ExcludeBrands) > 0 {
		filter["brand"] = bson.M{"$nin": q.ExcludeBrands}
	} else if len(q.Brands) > 0 {
		filter["brand"] = bson.M{"$in": q.Brands}
	}
	if q.RunFlat != nil {
		filter["runFlat"] = *q.RunFlat
	}
	if q.ThreePMSF != nil {
		filter["threePMSF"] = *q.ThreePMSF
	}
	return filter
}

func (r *MongoInventoryRepo) Search(ctx context.Context, q InventoryQuery) ([]models.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}})
	cursor, err := r.coll.Find(ctx, q.filter(), opts)
	if err != nil {
		return nil, fmt.Errorf("inventory search failed: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.InventoryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode inventory items: %w", err)
	}
	return items, nil
}

func (r *MongoInventoryRepo) DistinctBrands(ctx context.Context, q InventoryQuery) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	raw, err := r.coll.Distinct(ctx, "brand", q.filter())
	if err != nil {
		return nil, fmt.Errorf("distinct brand query failed: %w", err)
	}

	var brands []string
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			brands = append(brands, s)
		}
	}
	sort.Strings(brands)
	return brands, nil
}

func (r *MongoInventoryRepo) GetPricingRule(ctx context.Context, workshopID string, rimSize int, vehicleClass string) (*models.PricingRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rule models.PricingRule
	filter := bson.M{
		"workshopId":   workshopID,
		"rimSize":      rimSize,
		"vehicleClass": vehicleClass,
	}
	err := r.rules.FindOne(ctx, filter).Decode(&rule)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pricing rule: %w", err)
	}
	return &rule, nil
}
