package entity

import (
	"errors"
	"fmt"

	"github.com/oksasatya/saas-landing-api/internal/domain/repository"
	"github.com/oksasatya/saas-landing-api/pkg/validation"
)

// ErrInvalid wraps every validation failure raised while building a record.
var ErrInvalid = errors.New("invalid record")

// Collection names used by the document store.
const (
	UserCollection           = "user"
	ProductCollection        = "product"
	BlogpostCollection       = "blogpost"
	ContactMessageCollection = "contactmessage"
)

func check(record any) error {
	if err := validation.Struct(record); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, validation.Message(err))
	}
	return nil
}

func docID(doc repository.Document) string {
	switch v := doc[repository.IDField].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func str(doc repository.Document, key string) (string, error) {
	switch v := doc[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %s: expected string, got %T", ErrInvalid, key, v)
	}
}

func optStr(doc repository.Document, key string) (*string, error) {
	if doc[key] == nil {
		return nil, nil
	}
	s, err := str(doc, key)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func boolean(doc repository.Document, key string, def bool) (bool, error) {
	switch v := doc[key].(type) {
	case nil:
		return def, nil
	case bool:
		return v, nil
	default:
		return false, fmt.Errorf("%w: %s: expected bool, got %T", ErrInvalid, key, v)
	}
}

func strList(doc repository.Document, key string) ([]string, error) {
	switch v := doc[key].(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string{}, v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d]: expected string, got %T", ErrInvalid, key, i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s: expected list, got %T", ErrInvalid, key, v)
	}
}
