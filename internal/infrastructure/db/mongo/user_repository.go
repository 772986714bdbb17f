package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mediashelf/media-tracker/internal/core/domain"
)

const queryTimeout = 5 * time.Second

// userDoc is the BSON shape of the user aggregate. Lists and
// memberships are embedded; the document is always written whole.
type userDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Username          string             `bson:"username"`
	FirstName         string             `bson:"firstName,omitempty"`
	LastName          string             `bson:"lastName,omitempty"`
	Email             string             `bson:"email"`
	Password          string             `bson:"password"`
	Lists             []listDoc          `bson:"lists"`
	Role              string             `bson:"role"`
	Verified          bool               `bson:"verified"`
	VerificationCode  *actionCodeDoc     `bson:"verificationCode,omitempty"`
	PasswordResetCode *actionCodeDoc     `bson:"passwordResetCode,omitempty"`
	DeletedAt         *time.Time         `bson:"deletedAt,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

type listDoc struct {
	Name     string          `bson:"name"`
	ItemType string          `bson:"itemType"`
	Items    []membershipDoc `bson:"items"`
}

// membershipDoc references the catalog item by its hex id. The
// reference is not resolved or validated here; stale ids are the
// caller's concern.
type membershipDoc struct {
	Item   string   `bson:"item"`
	Rating *float64 `bson:"rating,omitempty"`
}

type actionCodeDoc struct {
	Code      string    `bson:"code"`
	CreatedAt time.Time `bson:"createdAt"`
}

// UserRepository persists user aggregates in the users collection.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection("users")}
}

// EnsureIndexes creates the unique indexes on username and email.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	doc := toUserDoc(u)
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	u.ID = doc.ID.Hex()
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}})
}

func (r *UserRepository) FindByResetCode(ctx context.Context, code string) (*domain.User, error) {
	u, err := r.findOne(ctx, bson.M{"passwordResetCode.code": code})
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidResetCode
	}
	return u, err
}

func (r *UserRepository) Verify(ctx context.Context, code string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"verificationCode.code": code},
		bson.M{
			"$set":   bson.M{"verified": true, "updatedAt": time.Now().UTC()},
			"$unset": bson.M{"verificationCode": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("verify user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvalidVerificationCode
	}
	return nil
}

func (r *UserRepository) SetResetCode(ctx context.Context, userID string, code domain.ActionCode) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"passwordResetCode": actionCodeDoc{Code: code.Code, CreatedAt: code.CreatedAt},
			"updatedAt":         time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("set reset code: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ResetPassword(ctx context.Context, code, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"passwordResetCode.code": code},
		bson.M{
			"$set":   bson.M{"password": passwordHash, "updatedAt": time.Now().UTC()},
			"$unset": bson.M{"passwordResetCode": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvalidResetCode
	}
	return nil
}

// Update replaces the whole document. Concurrent updates of the same
// user are last write wins; there is no version check.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	u.UpdatedAt = time.Now().UTC()
	doc := toUserDoc(u)
	doc.ID = oid

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("replace user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, userID string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"deletedAt": time.Now().UTC(), "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var doc userDoc
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromUserDoc(&doc), nil
}

func toUserDoc(u *domain.User) *userDoc {
	doc := &userDoc{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Password:  u.PasswordHash,
		Lists:     make([]listDoc, 0, len(u.Lists)),
		Role:      u.Role,
		Verified:  u.Verified,
		DeletedAt: u.DeletedAt,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.VerificationCode != nil {
		doc.VerificationCode = &actionCodeDoc{Code: u.VerificationCode.Code, CreatedAt: u.VerificationCode.CreatedAt}
	}
	if u.PasswordResetCode != nil {
		doc.PasswordResetCode = &actionCodeDoc{Code: u.PasswordResetCode.Code, CreatedAt: u.PasswordResetCode.CreatedAt}
	}
	for _, l := range u.Lists {
		ld := listDoc{Name: l.Name, ItemType: l.ItemType, Items: make([]membershipDoc, 0, len(l.Items))}
		for _, m := range l.Items {
			ld.Items = append(ld.Items, membershipDoc{Item: m.ItemID, Rating: m.Rating})
		}
		doc.Lists = append(doc.Lists, ld)
	}
	return doc
}

func fromUserDoc(doc *userDoc) *domain.User {
	u := &domain.User{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		FirstName:    doc.FirstName,
		LastName:     doc.LastName,
		Email:        doc.Email,
		PasswordHash: doc.Password,
		Lists:        make([]domain.List, 0, len(doc.Lists)),
		Role:         doc.Role,
		Verified:     doc.Verified,
		DeletedAt:    doc.DeletedAt,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
	if doc.VerificationCode != nil {
		u.VerificationCode = &domain.ActionCode{Code: doc.VerificationCode.Code, CreatedAt: doc.VerificationCode.CreatedAt}
	}
	if doc.PasswordResetCode != nil {
		u.PasswordResetCode = &domain.ActionCode{Code: doc.PasswordResetCode.Code, CreatedAt: doc.PasswordResetCode.CreatedAt}
	}
	for _, ld := range doc.Lists {
		l := domain.List{Name: ld.Name, ItemType: ld.ItemType, Items: make([]domain.ItemMembership, 0, len(ld.Items))}
		for _, md := range ld.Items {
			l.Items = append(l.Items, domain.ItemMembership{ItemID: md.Item, Rating: md.Rating})
		}
		u.Lists = append(u.Lists, l)
	}
	return u
}
