package kvstore

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// CollectionName is the MongoDB collection for persisted note state.
const CollectionName = "kv_state"

// MongoStore implements Provider on a MongoDB collection, one document
// per key.
type MongoStore struct {
	client *mongo.Client
	c      *mongo.Collection
}

// kvDocument is the stored shape: the key is the document id, the value is
// the JSON encoding of whatever was passed to Set.
type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore creates a Mongo-backed provider on the given database.
// The store owns the client and disconnects it on Close.
func NewMongoStore(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{
		client: client,
		c:      db.Collection(CollectionName),
	}
}

// Get loads the value stored under key into v.
func (s *MongoStore) Get(ctx context.Context, key string, v any) (bool, error) {
	var doc kvDocument
	err := s.c.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(doc.Value, v); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores v under key with upsert semantics.
func (s *MongoStore) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	filter := bson.M{"_id": key}
	update := bson.M{
		"$set": bson.M{
			"value":      raw,
			"updated_at": time.Now().UTC(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err = s.c.UpdateOne(ctx, filter, update, opts)
	return err
}

// Ping checks connectivity to the primary.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Migrate is a no-op: documents are keyed by _id, which is always indexed.
func (s *MongoStore) Migrate(ctx context.Context) error {
	return nil
}

// Close disconnects the owned client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
