package types

import (
	"encoding/json"
	"fmt"
)

// FieldKind is the semantic type of a column.
type FieldKind int

// Column kinds. Optional columns are held as *string, *int64, *float64, *bool
// and *Date respectively; keys and required foreign keys as plain string.
const (
	FieldText FieldKind = iota + 1
	FieldInteger
	FieldReal
	FieldBool
	FieldDate
)

var fieldKindNames = map[FieldKind]string{
	FieldText:    "text",
	FieldInteger: "integer",
	FieldReal:    "real",
	FieldBool:    "boolean",
	FieldDate:    "date",
}

func (k FieldKind) String() string {
	if name, ok := fieldKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// Field describes one column of an entity table.
type Field struct {
	Name       string    // Column name, also the JSON member name.
	Kind       FieldKind // Semantic type.
	Required   bool      // Must be non-null after defaults are applied.
	MaxLength  int       // Maximum rune count for text columns; 0 is unbounded.
	References string    // Referenced table (its key column) when the column is a foreign key.
	Unique     bool      // At most one row may carry a given non-null value.
}

// Schema is the metadata the CRUD engine needs to operate on an entity type
// without knowing the concrete Go type.
type Schema struct {
	Table        string  // Table name, also the entity-type token used by callers.
	Key          string  // Primary-key column.
	GeneratedKey bool    // Surrogate UUID assigned on create when the caller omits it.
	Base         string  // For joined-table subtypes, the base table sharing the key.
	Fields       []Field // Every column including the key, in storage order.
}

// Field returns the field with the given column name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldIndex returns the position of the named column in Fields, or -1.
func (s *Schema) FieldIndex(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// ColumnNames returns the column names in storage order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// ForeignKeys returns the fields that reference another table.
func (s *Schema) ForeignKeys() []Field {
	var fks []Field
	for _, f := range s.Fields {
		if f.References != "" {
			fks = append(fks, f)
		}
	}
	return fks
}

// Entity is implemented by every record type. The engine reads and writes
// column values exclusively through Columns, so the pointers it returns must
// line up one-to-one with Schema().Fields.
type Entity interface {
	// Schema returns the shared, immutable metadata of the entity type.
	Schema() *Schema

	// Key returns the primary-key value, empty when not yet assigned.
	Key() string

	// SetKey assigns the primary-key value.
	SetKey(id string)

	// Columns returns pointers to the entity's column fields in schema order.
	Columns() []any

	// Validate checks entity-specific rules that span more than one field.
	// Per-field checks (required, max length) are applied generically.
	Validate() error
}

// Payload carries client-supplied fields keyed by column name. A key that is
// present marks the field as supplied, even when its value is JSON null; an
// absent key leaves the field untouched on update.
type Payload map[string]json.RawMessage

// Fields returns the supplied column names.
func (p Payload) Fields() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	return names
}

// PayloadFrom builds a Payload from Go values, marshaling each to JSON.
func PayloadFrom(values map[string]any) (Payload, error) {
	p := make(Payload, len(values))
	for name, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshaling field %s: %w", name, err)
		}
		p[name] = raw
	}
	return p, nil
}

// ParsePayload decodes a JSON object into a Payload.
func ParsePayload(data []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, Validationf("", "payload must be a JSON object: %v", err)
	}
	if p == nil {
		return nil, Validationf("", "payload must be a JSON object")
	}
	return p, nil
}
