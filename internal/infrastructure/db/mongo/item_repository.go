package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mediashelf/media-tracker/internal/core/domain"
)

type itemDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Type        string             `bson:"type"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description,omitempty"`
	ReleaseDate *time.Time         `bson:"releaseDate,omitempty"`
	Cover       string             `bson:"cover,omitempty"`
	Images      []string           `bson:"images,omitempty"`
	Tags        []string           `bson:"tags,omitempty"`
	Meta        map[string]any     `bson:"meta,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// ItemRepository persists catalog items in the items collection.
type ItemRepository struct {
	collection *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{collection: db.Collection("items")}
}

// EnsureIndexes creates the uniqueness and search indexes: name and
// slug are each unique per item type, and name plus description carry
// a text index.
func (r *ItemRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}, {Key: "type", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
		},
	})
	if err != nil {
		return fmt.Errorf("create item indexes: %w", err)
	}
	return nil
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	doc := toItemDoc(item)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateItemField(err)
		}
		return nil, fmt.Errorf("insert item: %w", err)
	}

	item.ID = doc.ID.Hex()
	return item, nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id string) (*domain.Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrItemNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ItemRepository) FindByTypeAndSlug(ctx context.Context, itemType, slug string) (*domain.Item, error) {
	return r.findOne(ctx, bson.M{"type": itemType, "slug": slug})
}

// FindByIDs resolves a batch of ids in one query. Unknown and
// malformed ids are skipped silently.
func (r *ItemRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Item, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*domain.Item
	for cursor.Next(ctx) {
		var doc itemDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		out = append(out, fromItemDoc(&doc))
	}
	return out, cursor.Err()
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) error {
	oid, err := primitive.ObjectIDFromHex(item.ID)
	if err != nil {
		return domain.ErrItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	item.UpdatedAt = time.Now().UTC()
	doc := toItemDoc(item)
	doc.ID = oid

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateItemField(err)
		}
		return fmt.Errorf("replace item: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrItemNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) findOne(ctx context.Context, filter bson.M) (*domain.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc itemDoc
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return fromItemDoc(&doc), nil
}

// duplicateItemField maps a duplicate key error to the colliding
// field. The server message names the violated index, which contains
// the field name.
func duplicateItemField(err error) error {
	if strings.Contains(err.Error(), "slug") {
		return &domain.DuplicateFieldError{Field: "slug"}
	}
	return &domain.DuplicateFieldError{Field: "name"}
}

func toItemDoc(item *domain.Item) *itemDoc {
	return &itemDoc{
		Name:        item.Name,
		Type:        item.Type,
		Slug:        item.Slug,
		Description: item.Description,
		ReleaseDate: item.ReleaseDate,
		Cover:       item.Cover,
		Images:      item.Images,
		Tags:        item.Tags,
		Meta:        item.Meta,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func fromItemDoc(doc *itemDoc) *domain.Item {
	return &domain.Item{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Type:        doc.Type,
		Slug:        doc.Slug,
		Description: doc.Description,
		ReleaseDate: doc.ReleaseDate,
		Cover:       doc.Cover,
		Images:      doc.Images,
		Tags:        doc.Tags,
		Meta:        doc.Meta,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}
