package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/saas-landing-api/internal/domain/repository"
)

// DocumentStore keeps collections in process memory. Data is lost on
// restart. Safe for concurrent use.
type DocumentStore struct {
	mu          sync.RWMutex
	name        string
	collections map[string][]repository.Document
	unique      []repository.UniqueField
	now         func() time.Time
}

type Option func(*DocumentStore)

// WithUnique replaces the default unique constraints.
func WithUnique(fields ...repository.UniqueField) Option {
	return func(s *DocumentStore) { s.unique = fields }
}

// WithClock overrides the timestamp source used on insert.
func WithClock(now func() time.Time) Option {
	return func(s *DocumentStore) { s.now = now }
}

func NewDocumentStore(name string, opts ...Option) *DocumentStore {
	s := &DocumentStore{
		name:        name,
		collections: make(map[string][]repository.Document),
		unique:      repository.DefaultUniqueFields,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// deepCopy returns a deep copy of a document by round-tripping through JSON,
// which also normalizes values the way a real document store would.
func deepCopy(src repository.Document) (repository.Document, error) {
	if src == nil {
		return repository.Document{}, nil
	}
	b, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}
	var dst repository.Document
	if err := json.Unmarshal(b, &dst); err != nil {
		return nil, err
	}
	return dst, nil
}

func (s *DocumentStore) CreateDocument(ctx context.Context, collection string, doc repository.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	now := s.now().UTC()
	cp, err := deepCopy(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}
	id := uuid.NewString()
	cp[repository.IDField] = id
	cp["created_at"] = now.Format(time.RFC3339Nano)
	cp["updated_at"] = now.Format(time.RFC3339Nano)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.unique {
		if u.Collection != collection {
			continue
		}
		v, ok := cp[u.Field]
		if !ok {
			continue
		}
		for _, existing := range s.collections[collection] {
			if reflect.DeepEqual(existing[u.Field], v) {
				return "", fmt.Errorf("%w: %s.%s", repository.ErrDuplicate, collection, u.Field)
			}
		}
	}
	s.collections[collection] = append(s.collections[collection], cp)
	return id, nil
}

func (s *DocumentStore) GetDocuments(ctx context.Context, collection string, filter repository.Filter, limit int) ([]repository.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	want, err := deepCopy(repository.Document(filter))
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]repository.Document, 0)
	for _, doc := range s.collections[collection] {
		if limit > 0 && len(out) >= limit {
			break
		}
		if !matches(doc, want) {
			continue
		}
		cp, err := deepCopy(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

func matches(doc, filter repository.Document) bool {
	for k, v := range filter {
		got, ok := doc[k]
		if !ok || !reflect.DeepEqual(got, v) {
			return false
		}
	}
	return true
}

func (s *DocumentStore) ListCollections(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.collections))
	for name, docs := range s.collections {
		if len(docs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *DocumentStore) Name() string { return s.name }

func (s *DocumentStore) Close(context.Context) error { return nil }

var _ repository.DocumentStore = (*DocumentStore)(nil)
