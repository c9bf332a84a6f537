package repository

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"usi_bridge/internal/domain/transcript"
	"usi_bridge/internal/errors"
)

// MongoTranscriptStore archives every line without a cap.
type MongoTranscriptStore struct {
	collection *mongo.Collection
	log        *zap.SugaredLogger
}

func NewMongoTranscriptStore(db *mongo.Database, log *zap.SugaredLogger) *MongoTranscriptStore {
	return &MongoTranscriptStore{
		collection: db.Collection("transcripts"),
		log:        log,
	}
}

func (m *MongoTranscriptStore) Append(ctx context.Context, entry transcript.Entry) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := m.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("archive transcript %s: %w", entry.EngineID, err)
	}
	return nil
}

func (m *MongoTranscriptStore) Recent(ctx context.Context, engineID string, limit int) ([]transcript.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "received_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := m.collection.Find(ctx, bson.M{"engine_id": engineID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find transcript %s: %w", engineID, err)
	}

	var entries []transcript.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode transcript %s: %w", engineID, err)
	}
	if len(entries) == 0 {
		return nil, errors.ErrTranscriptNotFound
	}

	// newest first from mongo, callers expect oldest first
	slices.Reverse(entries)

	m.log.Debugw("transcript read from archive", "engine_id", engineID, "count", len(entries))
	return entries, nil
}
