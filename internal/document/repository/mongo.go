package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tiernote/tiernote/internal/document"
	"github.com/tiernote/tiernote/pkg/logger"
)

// MongoRepo implements Repository on a MongoDB collection. Each Add is a
// single InsertOne guarded by a unique index on "id", so concurrent uploads
// are individually-addressable atomic writes with no whole-collection
// read/write cycle to race on.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	// duplicate-id detection relies on this index; a missing one must not
	// go unnoticed
	if _, err := col.Indexes().CreateOne(context.Background(), idx); err != nil {
		logger.Errorf("failed to ensure unique id index on documents: %v", err)
	}
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Add(ctx context.Context, doc *document.Document) error {
	_, err := m.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

func (m *MongoRepo) GetByID(ctx context.Context, id string) (*document.Document, error) {
	var d document.Document
	err := m.col.FindOne(ctx, bson.M{"id": id}).Decode(&d)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *MongoRepo) List(ctx context.Context, f Filter) ([]*document.Document, error) {
	query := bson.M{}
	if f.Classification != "" {
		query["docType"] = f.Classification
	}
	cur, err := m.col.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*document.Document{}
	for cur.Next(ctx) {
		var d document.Document
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		// tag matching is case-insensitive, which $in cannot express
		// against mixed-case stored tags; filter here instead
		if matches(&d, f) {
			out = append(out, &d)
		}
	}
	return out, cur.Err()
}
