package repository

import (
	"context"
	"errors"
)

// IDField is the key under which stores expose a record's identifier.
const IDField = "_id"

var (
	// ErrDuplicate is returned when an insert violates a unique field.
	ErrDuplicate = errors.New("duplicate document")
)

// Document is a schema-flexible record as stored in a collection.
type Document map[string]any

// Filter selects documents whose top-level fields equal the given values.
type Filter map[string]any

// UniqueField names a field that must be unique within a collection.
type UniqueField struct {
	Collection string
	Field      string
}

// DefaultUniqueFields are enforced by every document store backend.
var DefaultUniqueFields = []UniqueField{
	{Collection: "user", Field: "email"},
}

// DocumentStore defines the document database operations used by the API.
type DocumentStore interface {
	// CreateDocument inserts a record and returns its generated identifier.
	CreateDocument(ctx context.Context, collection string, doc Document) (string, error)

	// GetDocuments returns up to limit records matching filter in insertion
	// order. A limit <= 0 returns every match.
	GetDocuments(ctx context.Context, collection string, filter Filter, limit int) ([]Document, error)

	// ListCollections returns the names of collections holding data.
	ListCollections(ctx context.Context) ([]string, error)

	// Name is the database name.
	Name() string

	Close(ctx context.Context) error
}
