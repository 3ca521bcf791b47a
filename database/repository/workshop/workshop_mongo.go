package workshopRepo

import (
	"context"
	"fmt"
	"time"

	"reifenmarkt/config"
	"reifenmarkt/database"
	"reifenmarkt/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoWorkshopRepo implements WorkshopRepository using MongoDB.
type MongoWorkshopRepo struct {
	coll    *mongo.Collection
	markups *mongo.Collection
}

// NewMongoWorkshopRepo creates a new instance of WorkshopRepository using MongoDB.
func NewMongoWorkshopRepo() WorkshopRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoWorkshopRepo{
		coll:    db.Collection("workshops"),
		markups: db.Collection("workshop_markups"),
	}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("workshop repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func (r *MongoWorkshopRepo) GetByID(ctx context.Context, id string) (*models.Workshop, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var ws models.Workshop
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&ws); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch workshop with id %s: %w", id, err)
	}
	return &ws, nil
}

func (r *MongoWorkshopRepo) GetByServiceType(ctx context.Context, serviceType string) ([]models.Workshop, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	filter := bson.M{
		"services": bson.M{"$elemMatch": bson.M{
			"serviceType": serviceType,
			"isActive":    true,
		}},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve workshops for service %s: %w", serviceType, err)
	}
	defer cursor.Close(ctx)

	var workshops []models.Workshop
	if err := cursor.All(ctx, &workshops); err != nil {
		return nil, fmt.Errorf("failed to decode workshops: %w", err)
	}
	return workshops, nil
}

func (r *MongoWorkshopRepo) GetAllIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode workshop id: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

func (r *MongoWorkshopRepo) GetMarkupDefaults(ctx context.Context, workshopID string) (*models.MarkupDefaults, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var md models.MarkupDefaults
	filter := bson.M{"workshopId": workshopID}
	if err := r.markups.FindOne(ctx, filter).Decode(&md); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch markup defaults for workshop %s: %w", workshopID, err)
	}
	return &md, nil
}
