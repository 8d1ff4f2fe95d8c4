package mongodb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/oksasatya/saas-landing-api/internal/domain/repository"
)

// DocumentStore stores each collection as a MongoDB collection.
type DocumentStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri, pings the primary and ensures unique indexes exist.
func Connect(ctx context.Context, uri, dbName string, timeout time.Duration) (*DocumentStore, error) {
	c, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(c, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(c, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	s := &DocumentStore{client: client, db: client.Database(dbName)}
	if err := s.EnsureIndexes(c, repository.DefaultUniqueFields); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// EnsureIndexes creates a unique ascending index for every field.
func (s *DocumentStore) EnsureIndexes(ctx context.Context, fields []repository.UniqueField) error {
	for _, u := range fields {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: u.Field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
		if _, err := s.db.Collection(u.Collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create unique index %s.%s: %w", u.Collection, u.Field, err)
		}
	}
	return nil
}

func (s *DocumentStore) CreateDocument(ctx context.Context, collection string, doc repository.Document) (string, error) {
	now := time.Now().UTC()
	record := make(bson.M, len(doc)+2)
	for k, v := range doc {
		if k == repository.IDField {
			continue
		}
		record[k] = v
	}
	record["created_at"] = now
	record["updated_at"] = now

	res, err := s.db.Collection(collection).InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%w: %s: %v", repository.ErrDuplicate, collection, err)
		}
		return "", err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

func (s *DocumentStore) GetDocuments(ctx context.Context, collection string, filter repository.Filter, limit int) ([]repository.Document, error) {
	q := bson.M{}
	for k, v := range filter {
		q[k] = v
	}
	// ObjectIDs start with their creation time, so _id order is insertion order.
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.db.Collection(collection).Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, err
	}
	out := make([]repository.Document, 0, len(raw))
	for _, m := range raw {
		out = append(out, toDocument(m))
	}
	return out, nil
}

func (s *DocumentStore) ListCollections(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (s *DocumentStore) Name() string { return s.db.Name() }

func (s *DocumentStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// toDocument converts BSON values into plain Go values so callers never see
// driver types: ObjectIDs become hex strings and dates RFC 3339 strings.
func toDocument(m bson.M) repository.Document {
	doc := make(repository.Document, len(m))
	for k, v := range m {
		doc[k] = normalize(v)
	}
	return doc
}

func normalize(v any) any {
	switch x := v.(type) {
	case primitive.ObjectID:
		return x.Hex()
	case primitive.DateTime:
		return x.Time().UTC().Format(time.RFC3339Nano)
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case primitive.A:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalize(item)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = normalize(item)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(x))
		for _, e := range x {
			out[e.Key] = normalize(e.Value)
		}
		return out
	default:
		return v
	}
}

var _ repository.DocumentStore = (*DocumentStore)(nil)
