package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
	"github.com/flatfinder/flatfinder-api/internal/core/ports"
)

const collectionMessages = "messages"

type MessageRepository struct {
	col *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{col: db.Collection(collectionMessages)}
}

type messageDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Content   string             `bson:"content"`
	ListingID string             `bson:"listingId"`
	SenderID  string             `bson:"senderId"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d messageDocument) toDomain() *domain.Message {
	return &domain.Message{
		ID:        d.ID.Hex(),
		Content:   d.Content,
		ListingID: d.ListingID,
		SenderID:  d.SenderID,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func messageQuery(f ports.MessageFilter) bson.M {
	q := bson.M{"listingId": f.ListingID}
	if f.SenderID != "" {
		q["senderId"] = f.SenderID
	}
	return q
}

func (r *MessageRepository) FindMany(ctx context.Context, filter ports.MessageFilter) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.col.Find(ctx, messageQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find messages: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []messageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	msgs := make([]*domain.Message, 0, len(docs))
	for _, d := range docs {
		msgs = append(msgs, d.toDomain())
	}
	return msgs, nil
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := messageDocument{
		Content:   m.Content,
		ListingID: m.ListingID,
		SenderID:  m.SenderID,
		CreatedAt: m.CreatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *MessageRepository) DeleteByListing(ctx context.Context, listingID string) (int64, error) {
	return r.deleteMany(ctx, bson.M{"listingId": listingID})
}

func (r *MessageRepository) DeleteBySender(ctx context.Context, senderID string) (int64, error) {
	return r.deleteMany(ctx, bson.M{"senderId": senderID})
}

func (r *MessageRepository) deleteMany(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete messages: %w", err)
	}
	return res.DeletedCount, nil
}
