package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mediashelf/media-tracker/internal/core/domain"
)

type namedDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

// ItemTypeRepository persists the item-type taxonomy.
type ItemTypeRepository struct {
	collection *mongo.Collection
}

func NewItemTypeRepository(db *mongo.Database) *ItemTypeRepository {
	return &ItemTypeRepository{collection: db.Collection("itemTypes")}
}

func (r *ItemTypeRepository) EnsureIndexes(ctx context.Context) error {
	return ensureNameIndex(ctx, r.collection)
}

func (r *ItemTypeRepository) Exists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	n, err := r.collection.CountDocuments(ctx, bson.M{"name": name}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count item types: %w", err)
	}
	return n > 0, nil
}

func (r *ItemTypeRepository) List(ctx context.Context) ([]domain.ItemType, error) {
	docs, err := listNamed(ctx, r.collection)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ItemType, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.ItemType{ID: d.ID.Hex(), Name: d.Name})
	}
	return out, nil
}

func (r *ItemTypeRepository) Ensure(ctx context.Context, names []string) error {
	return ensureNamed(ctx, r.collection, names)
}

// TagRepository persists catalog tags.
type TagRepository struct {
	collection *mongo.Collection
}

func NewTagRepository(db *mongo.Database) *TagRepository {
	return &TagRepository{collection: db.Collection("tags")}
}

func (r *TagRepository) EnsureIndexes(ctx context.Context) error {
	return ensureNameIndex(ctx, r.collection)
}

func (r *TagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	docs, err := listNamed(ctx, r.collection)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Tag, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Tag{ID: d.ID.Hex(), Name: d.Name})
	}
	return out, nil
}

func (r *TagRepository) Ensure(ctx context.Context, names []string) error {
	return ensureNamed(ctx, r.collection, names)
}

func ensureNameIndex(ctx context.Context, c *mongo.Collection) error {
	_, err := c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create name index: %w", err)
	}
	return nil
}

func listNamed(ctx context.Context, c *mongo.Collection) ([]namedDoc, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.Name(), err)
	}
	defer cursor.Close(ctx)

	var docs []namedDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.Name(), err)
	}
	return docs, nil
}

// ensureNamed upserts every name so repeated seeding stays idempotent.
func ensureNamed(ctx context.Context, c *mongo.Collection, names []string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	for _, name := range names {
		_, err := c.UpdateOne(ctx,
			bson.M{"name": name},
			bson.M{"$setOnInsert": bson.M{"name": name}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("upsert %s %q: %w", c.Name(), name, err)
		}
	}
	return nil
}
