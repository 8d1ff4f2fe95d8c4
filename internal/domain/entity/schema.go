package entity

import (
	"reflect"
	"strings"
)

// FieldSchema describes one persisted field of a collection.
type FieldSchema struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Nullable    bool     `json:"nullable,omitempty"`
	Default     string   `json:"default,omitempty"`
	Description string   `json:"description,omitempty"`
	Constraints []string `json:"constraints,omitempty"`
}

// CollectionSchema describes the records stored in one collection.
type CollectionSchema struct {
	Collection string        `json:"collection"`
	Title      string        `json:"title"`
	Fields     []FieldSchema `json:"fields"`
}

// Schemas lists every collection this service knows about. Fields come from
// the record types' json, validate, default and description tags.
func Schemas() []CollectionSchema {
	return []CollectionSchema{
		describe(UserCollection, "User", User{}),
		describe(ProductCollection, "Product", Product{}),
		describe(BlogpostCollection, "Blogpost", Blogpost{}),
		describe(ContactMessageCollection, "Contactmessage", ContactMessage{}),
	}
}

func describe(collection, title string, record any) CollectionSchema {
	t := reflect.TypeOf(record)
	fields := make([]FieldSchema, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		fs := FieldSchema{
			Name:        name,
			Type:        typeName(f.Type),
			Nullable:    f.Type.Kind() == reflect.Pointer,
			Default:     f.Tag.Get("default"),
			Description: f.Tag.Get("description"),
		}
		fs.Required = !fs.Nullable && fs.Default == ""
		for _, rule := range strings.Split(f.Tag.Get("validate"), ",") {
			if rule == "" || rule == "required" || rule == "omitempty" {
				continue
			}
			fs.Constraints = append(fs.Constraints, rule)
		}
		fields = append(fields, fs)
	}
	return CollectionSchema{Collection: collection, Title: title, Fields: fields}
}

func typeName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Slice, reflect.Array:
		return "array<" + typeName(t.Elem()) + ">"
	default:
		return "object"
	}
}
