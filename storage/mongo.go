package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/raushankrgupta/skinbox/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCollection = "products"
	boxesCollection    = "boxes"
	sessionsCollection = "sessions"
	metaCollection     = "meta"

	currentSessionID = "current"
	catalogSeededID  = "catalog_seeded"
)

// MongoGateway stores each collection in its own MongoDB collection
type MongoGateway struct {
	db *mongo.Database
}

// NewMongoGateway creates a Gateway on top of db
func NewMongoGateway(db *mongo.Database) *MongoGateway {
	return &MongoGateway{db: db}
}

type sessionDocument struct {
	ID                     string `bson:"_id"`
	models.SessionIdentity `bson:",inline"`
}

func (g *MongoGateway) GetCatalog(ctx context.Context) ([]models.CatalogItem, error) {
	if err := g.seedCatalog(ctx); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := g.db.Collection(productsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	items := []models.CatalogItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return items, nil
}

// seedCatalog inserts the default catalog once; a marker document keeps an emptied catalog empty
func (g *MongoGateway) seedCatalog(ctx context.Context) error {
	meta := g.db.Collection(metaCollection)
	err := meta.FindOne(ctx, bson.M{"_id": catalogSeededID}).Err()
	if err == nil {
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("check catalog seed: %w", err)
	}

	products := g.db.Collection(productsCollection)
	count, err := products.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count == 0 {
		seed := DefaultCatalog()
		docs := make([]interface{}, len(seed))
		for i := range seed {
			docs[i] = seed[i]
		}
		if _, err := products.InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
	}

	if _, err := meta.InsertOne(ctx, bson.M{"_id": catalogSeededID}); err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("mark catalog seeded: %w", err)
	}
	return nil
}

func (g *MongoGateway) AddCatalogItem(ctx context.Context, item models.CatalogItem) error {
	if err := g.seedCatalog(ctx); err != nil {
		return err
	}
	if _, err := g.db.Collection(productsCollection).InsertOne(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("catalog item %s: %w", item.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (g *MongoGateway) UpdateCatalogItem(ctx context.Context, item models.CatalogItem) error {
	res, err := g.db.Collection(productsCollection).ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return fmt.Errorf("replace product: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("catalog item %s: %w", item.ID, ErrNotFound)
	}
	return nil
}

func (g *MongoGateway) DeleteCatalogItem(ctx context.Context, id string) error {
	res, err := g.db.Collection(productsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("catalog item %s: %w", id, ErrNotFound)
	}
	return nil
}

func (g *MongoGateway) findBoxes(ctx context.Context, filter bson.M, order int) ([]models.Box, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: order}})
	cursor, err := g.db.Collection(boxesCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find boxes: %w", err)
	}
	defer cursor.Close(ctx)

	boxes := []models.Box{}
	if err := cursor.All(ctx, &boxes); err != nil {
		return nil, fmt.Errorf("decode boxes: %w", err)
	}
	return boxes, nil
}

func (g *MongoGateway) GetAllBoxes(ctx context.Context) ([]models.Box, error) {
	return g.findBoxes(ctx, bson.M{}, 1)
}

func (g *MongoGateway) GetBoxesForUser(ctx context.Context, userID string) ([]models.Box, error) {
	return g.findBoxes(ctx, bson.M{"user_id": userID}, -1)
}

func (g *MongoGateway) GetBox(ctx context.Context, id string) (models.Box, error) {
	var box models.Box
	err := g.db.Collection(boxesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&box)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Box{}, fmt.Errorf("box %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Box{}, fmt.Errorf("find box: %w", err)
	}
	return box, nil
}

func (g *MongoGateway) SaveBox(ctx context.Context, box models.Box) error {
	if _, err := g.db.Collection(boxesCollection).InsertOne(ctx, box); err != nil {
		return fmt.Errorf("insert box: %w", err)
	}
	return nil
}

func (g *MongoGateway) UpdateBoxStatus(ctx context.Context, id string, status models.BoxStatus) error {
	res, err := g.db.Collection(boxesCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("update box status: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("box %s: %w", id, ErrNotFound)
	}
	return nil
}

func (g *MongoGateway) GetSession(ctx context.Context) (*models.SessionIdentity, error) {
	var doc sessionDocument
	err := g.db.Collection(sessionsCollection).FindOne(ctx, bson.M{"_id": currentSessionID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &doc.SessionIdentity, nil
}

func (g *MongoGateway) SetSession(ctx context.Context, identity models.SessionIdentity) error {
	doc := sessionDocument{ID: currentSessionID, SessionIdentity: identity}
	_, err := g.db.Collection(sessionsCollection).ReplaceOne(ctx,
		bson.M{"_id": currentSessionID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (g *MongoGateway) ClearSession(ctx context.Context) error {
	if _, err := g.db.Collection(sessionsCollection).DeleteOne(ctx, bson.M{"_id": currentSessionID}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

var _ Gateway = (*MongoGateway)(nil)
