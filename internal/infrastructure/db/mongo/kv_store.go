package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillsling/marketplace/internal/core/domain"
)

const collectionKV = "kv"

type kvDocument struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// KVStore keeps one document per key in the "kv" collection.
type KVStore struct {
	col *mongo.Collection
}

func NewKVStore(db *mongo.Database) *KVStore {
	return &KVStore{col: db.Collection(collectionKV)}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc kvDocument
	if err := s.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("mongo get %s: %w", key, err)
	}
	return []byte(doc.Value), nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.col.ReplaceOne(ctx,
		bson.M{"_id": key},
		kvDocument{Key: key, Value: string(value)},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo set %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", key, err)
	}
	return nil
}

// Ping runs the server ping command against the store's database.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.col.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}
