package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
	"github.com/flatfinder/flatfinder-api/internal/core/ports"
)

const collectionListings = "listings"

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection(collectionListings)}
}

type listingDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	City              string             `bson:"city"`
	StreetName        string             `bson:"streetName"`
	StreetNumber      string             `bson:"streetNumber"`
	AreaSize          float64            `bson:"areaSize"`
	HasClimateControl bool               `bson:"hasClimateControl"`
	YearBuilt         int                `bson:"yearBuilt"`
	RentPrice         float64            `bson:"rentPrice"`
	DateAvailable     time.Time          `bson:"dateAvailable"`
	OwnerID           string             `bson:"ownerId"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

func newListingDocument(l *domain.Listing) listingDocument {
	return listingDocument{
		City:              l.City,
		StreetName:        l.StreetName,
		StreetNumber:      l.StreetNumber,
		AreaSize:          l.AreaSize,
		HasClimateControl: l.HasClimateControl,
		YearBuilt:         l.YearBuilt,
		RentPrice:         l.RentPrice,
		DateAvailable:     l.DateAvailable,
		OwnerID:           l.OwnerID,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

func (d listingDocument) toDomain() *domain.Listing {
	return &domain.Listing{
		ID:                d.ID.Hex(),
		City:              d.City,
		StreetName:        d.StreetName,
		StreetNumber:      d.StreetNumber,
		AreaSize:          d.AreaSize,
		HasClimateControl: d.HasClimateControl,
		YearBuilt:         d.YearBuilt,
		RentPrice:         d.RentPrice,
		DateAvailable:     d.DateAvailable.UTC(),
		OwnerID:           d.OwnerID,
		CreatedAt:         d.CreatedAt.UTC(),
		UpdatedAt:         d.UpdatedAt.UTC(),
	}
}

// listingQuery translates a filter into a query document. City matches the
// whole value, ignoring case.
func listingQuery(f ports.ListingFilter) bson.M {
	q := bson.M{}
	if f.OwnerID != "" {
		q["ownerId"] = f.OwnerID
	}
	if f.City != "" {
		q["city"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(f.City) + "$", Options: "i"}
	}
	return q
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrListingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc listingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ListingRepository) FindMany(ctx context.Context, filter ports.ListingFilter) ([]*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.col.Find(ctx, listingQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find listings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}
	listings := make([]*domain.Listing, 0, len(docs))
	for _, d := range docs {
		listings = append(listings, d.toDomain())
	}
	return listings, nil
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newListingDocument(listing)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert listing: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *ListingRepository) UpdateByID(ctx context.Context, id string, fields map[string]any) (*domain.Listing, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrListingNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc listingDocument
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, setFields(fields, time.Now().UTC()), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ListingRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete listing: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *ListingRepository) FindIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.col.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find listings of %s: %w", ownerID, err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode listing id: %w", err)
		}
		ids = append(ids, doc.ID.Hex())
	}
	return ids, cursor.Err()
}

func (r *ListingRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return 0, fmt.Errorf("delete listings of %s: %w", ownerID, err)
	}
	return res.DeletedCount, nil
}
