package repository

import (
	"context"
	"time"

	"realtime_chat_service/internal/chat/domain"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConversationRepository definition conversation store
type ConversationRepository interface {
	// FindOrCreateDirect atomic find-or-create of the direct conversation
	// for an unordered participant pair
	FindOrCreateDirect(ctx context.Context, userA, userB string) (*domain.Conversation, error)
	FindByID(ctx context.Context, id string) (*domain.Conversation, error)
	FindByParticipant(ctx context.Context, userID string) ([]domain.Conversation, error)
	// TouchLastMessageAt bump the last-activity timestamp
	TouchLastMessageAt(ctx context.Context, id string, at time.Time) error
}

type conversationRepository struct {
	coll *mongo.Collection
}

// NewMongoConversationRepository create a ConversationRepository
func NewMongoConversationRepository(db *mongo.Database) ConversationRepository {
	return &conversationRepository{
		coll: db.Collection("conversations"),
	}
}

// EnsureConversationIndexes unique direct_key plus the list-ordering index
func EnsureConversationIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("conversations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "direct_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "participants", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "last_message_at", Value: -1}},
		},
	})
	return err
}

// FindOrCreateDirect one upsert keyed by the sorted pair, so two
// concurrent calls end with a single conversation row
func (r *conversationRepository) FindOrCreateDirect(ctx context.Context, userA, userB string) (*domain.Conversation, error) {
	key := domain.DirectKey(userA, userB)
	now := time.Now()

	filter := bson.M{"direct_key": key, "is_group": false}
	update := bson.M{"$setOnInsert": bson.M{
		"_id":             uuid.New().String(),
		"participants":    []string{userA, userB},
		"direct_key":      key,
		"is_group":        false,
		"last_message_at": now,
		"created_at":      now,
	}}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var conv domain.Conversation
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) FindByID(ctx context.Context, id string) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&conv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// FindByParticipant list the user's conversations, most recent activity first
func (r *conversationRepository) FindByParticipant(ctx context.Context, userID string) ([]domain.Conversation, error) {
	opts := options.Find().SetSort(bson.M{"last_message_at": -1})
	cur, err := r.coll.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, err
	}
	var convs []domain.Conversation
	if err := cur.All(ctx, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

func (r *conversationRepository) TouchLastMessageAt(ctx context.Context, id string, at time.Time) error {
	update := bson.M{"$set": bson.M{"last_message_at": at}}
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
