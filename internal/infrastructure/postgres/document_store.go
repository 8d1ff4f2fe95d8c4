package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/saas-landing-api/internal/domain/repository"
)

const uniqueViolation = "23505"

// DocumentStore keeps every collection in one JSONB table. Filters use JSONB
// containment, which is exact equality for top-level scalar values.
type DocumentStore struct {
	pool *pgxpool.Pool
	name string
}

// NewDocumentStore reports name as the database name; an empty name falls
// back to the database in the pool's DSN.
func NewDocumentStore(pool *pgxpool.Pool, name string) *DocumentStore {
	return &DocumentStore{pool: pool, name: name}
}

func (s *DocumentStore) CreateDocument(ctx context.Context, collection string, doc repository.Document) (string, error) {
	id := uuid.NewString()
	data, err := encodeDocument(doc, time.Now())
	if err != nil {
		return "", err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO documents (id, collection, data)
		VALUES ($1, $2, $3)
	`, id, collection, data)
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%w: %s: %v", repository.ErrDuplicate, collection, err)
		}
		return "", err
	}
	return id, nil
}

func (s *DocumentStore) GetDocuments(ctx context.Context, collection string, filter repository.Filter, limit int) ([]repository.Document, error) {
	if filter == nil {
		filter = repository.Filter{}
	}
	f, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("encode filter: %w", err)
	}
	var lim any
	if limit > 0 {
		lim = limit
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, data
		FROM documents
		WHERE collection = $1 AND data @> $2::jsonb
		ORDER BY seq
		LIMIT $3
	`, collection, f, lim)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.Document, 0)
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		var doc repository.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", id, err)
		}
		doc[repository.IDField] = id
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *DocumentStore) ListCollections(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (s *DocumentStore) Name() string {
	if s.name != "" || s.pool == nil {
		return s.name
	}
	return s.pool.Config().ConnConfig.Database
}

func (s *DocumentStore) Close(context.Context) error {
	s.pool.Close()
	return nil
}

func encodeDocument(doc repository.Document, now time.Time) ([]byte, error) {
	record := make(map[string]any, len(doc)+2)
	for k, v := range doc {
		if k == repository.IDField {
			continue
		}
		record[k] = v
	}
	ts := now.UTC().Format(time.RFC3339Nano)
	record["created_at"] = ts
	record["updated_at"] = ts
	b, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return b, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var _ repository.DocumentStore = (*DocumentStore)(nil)
