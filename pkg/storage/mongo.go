package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/boxflow/pkg/document"
)

// Defaults for [MongoOptions].
const (
	DefaultMongoDatabase   = "boxflow"
	DefaultMongoCollection = "layouts"
)

// MongoOptions configures [NewMongoStore].
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// MongoStore keeps records in a MongoDB collection. Expiry is enforced by a
// TTL index on expires_at; Get also checks it because the TTL monitor runs
// only once a minute.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoRecord is the stored form of a Record. The snapshot is kept as JSON so
// that its encoding matches the API and the file store.
type mongoRecord struct {
	ID           string     `bson:"_id"`
	DocumentHash string     `bson:"document_hash"`
	Snapshot     []byte     `bson:"snapshot"`
	CreatedAt    time.Time  `bson:"created_at"`
	ExpiresAt    *time.Time `bson:"expires_at,omitempty"`
}

// NewMongoStore connects to MongoDB, pings the server and ensures the TTL
// index exists.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.Database == "" {
		opts.Database = DefaultMongoDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultMongoCollection
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI).SetTimeout(opts.Timeout))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create ttl index: %w", err)
	}

	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	var doc mongoRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find layout: %w", err)
	}

	rec, err := doc.record()
	if err != nil {
		return nil, err
	}
	if rec.IsExpired() {
		return nil, notFound(id)
	}
	return rec, nil
}

func (s *MongoStore) Put(ctx context.Context, rec *Record) error {
	if err := ValidateID(rec.ID); err != nil {
		return err
	}
	doc, err := toMongo(rec)
	if err != nil {
		return err
	}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store layout: %w", err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	if res.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]*Record, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"expires_at": bson.M{"$exists": false}},
		bson.M{"expires_at": bson.M{"$gt": time.Now()}},
	}}
	cur, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	var docs []mongoRecord
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}

	out := make([]*Record, 0, len(docs))
	for _, doc := range docs {
		rec, err := doc.record()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Cleanup deletes expired records without waiting for the TTL monitor.
func (s *MongoStore) Cleanup(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now()}})
	if err != nil {
		return fmt.Errorf("cleanup layouts: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func toMongo(rec *Record) (*mongoRecord, error) {
	snap, err := json.Marshal(rec.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	doc := &mongoRecord{
		ID:           rec.ID,
		DocumentHash: rec.DocumentHash,
		Snapshot:     snap,
		CreatedAt:    rec.CreatedAt,
	}
	if !rec.ExpiresAt.IsZero() {
		t := rec.ExpiresAt
		doc.ExpiresAt = &t
	}
	return doc, nil
}

func (m *mongoRecord) record() (*Record, error) {
	snap, err := document.UnmarshalSnapshot(m.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", m.ID, err)
	}
	rec := &Record{
		ID:           m.ID,
		DocumentHash: m.DocumentHash,
		Snapshot:     snap,
		CreatedAt:    m.CreatedAt,
	}
	if m.ExpiresAt != nil {
		rec.ExpiresAt = *m.ExpiresAt
	}
	return rec, nil
}

var _ Store = (*MongoStore)(nil)
