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

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Email              string             `bson:"email"`
	SecretHash         string             `bson:"secretHash"`
	FirstName          string             `bson:"firstName"`
	LastName           string             `bson:"lastName"`
	BirthDate          *time.Time         `bson:"birthDate,omitempty"`
	IsPrivileged       bool               `bson:"isPrivileged"`
	FavoriteListingIDs []string           `bson:"favoriteListingIds"`
	CreatedAt          time.Time          `bson:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt"`
}

func newUserDocument(u *domain.User) userDocument {
	favorites := u.FavoriteListingIDs
	if favorites == nil {
		favorites = []string{}
	}
	return userDocument{
		Email:              u.Email,
		SecretHash:         u.SecretHash,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		BirthDate:          u.BirthDate,
		IsPrivileged:       u.IsPrivileged,
		FavoriteListingIDs: favorites,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (d userDocument) toDomain() *domain.User {
	favorites := d.FavoriteListingIDs
	if favorites == nil {
		favorites = []string{}
	}
	return &domain.User{
		ID:                 d.ID.Hex(),
		Email:              d.Email,
		SecretHash:         d.SecretHash,
		FirstName:          d.FirstName,
		LastName:           d.LastName,
		BirthDate:          d.BirthDate,
		IsPrivileged:       d.IsPrivileged,
		FavoriteListingIDs: favorites,
		CreatedAt:          d.CreatedAt.UTC(),
		UpdatedAt:          d.UpdatedAt.UTC(),
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindMany(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	users := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newUserDocument(user)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) UpdateByID(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, setFields(fields, time.Now().UTC()))
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// AddFavorite uses $addToSet, so adding twice keeps one entry.
func (r *UserRepository) AddFavorite(ctx context.Context, userID, listingID string) (*domain.User, error) {
	oid, ok := objectID(userID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	update := bson.M{
		"$addToSet": bson.M{"favoriteListingIds": listingID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, update)
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, userID, listingID string) (*domain.User, error) {
	oid, ok := objectID(userID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	update := bson.M{
		"$pull": bson.M{"favoriteListingIds": listingID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, update)
}

func (r *UserRepository) RemoveFavoriteFromAll(ctx context.Context, listingID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"favoriteListingIds": listingID},
		bson.M{"$pull": bson.M{"favoriteListingIds": listingID}},
	)
	if err != nil {
		return 0, fmt.Errorf("pull favorite %s: %w", listingID, err)
	}
	return res.ModifiedCount, nil
}

func (r *UserRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc userDocument
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return doc.toDomain(), nil
}
