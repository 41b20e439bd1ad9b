package crud

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

// decode writes the supplied payload fields into the entity's columns. A
// supplied field is reset before decoding so JSON null clears it and no
// pointer is shared with the entity it was copied from.
func decode(e types.Entity, p types.Payload) error {
	s := e.Schema()
	cols := e.Columns()

	names := p.Fields()
	sort.Strings(names)

	var fe types.FieldErrors
	for _, name := range names {
		i := s.FieldIndex(name)
		if i < 0 {
			fe.Add(name, "unknown field")
			continue
		}
		target := reflect.ValueOf(cols[i]).Elem()
		target.SetZero()
		raw := bytes.TrimSpace(p[name])
		if bytes.Equal(raw, []byte("null")) {
			continue
		}
		if err := json.Unmarshal(raw, cols[i]); err != nil {
			target.SetZero()
			fe.Add(name, "expected %s", s.Fields[i].Kind)
		}
	}
	if err := fe.Err(); err != nil {
		return types.Validationf(s.Table, "%v", err)
	}
	return nil
}

// validate applies the generic per-field checks and then the entity's own
// cross-field rules.
func validate(e types.Entity) error {
	s := e.Schema()
	cols := e.Columns()

	var fe types.FieldErrors
	for i, f := range s.Fields {
		text, present := columnText(cols[i])
		if f.Required && !present {
			fe.Add(f.Name, "field required")
			continue
		}
		if f.MaxLength > 0 && present && f.Kind == types.FieldText {
			if n := utf8.RuneCountInString(text); n > f.MaxLength {
				fe.Add(f.Name, "at most %d characters allowed, got %d", f.MaxLength, n)
			}
		}
	}
	if err := fe.Err(); err != nil {
		return types.Validationf(s.Table, "%v", err)
	}
	if err := e.Validate(); err != nil {
		return types.Validationf(s.Table, "%v", err)
	}
	return nil
}

// columnText reports whether a column holds a value and, for text columns,
// returns it. Empty bare strings count as absent.
func columnText(col any) (string, bool) {
	v := reflect.ValueOf(col).Elem()
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.String {
		return v.String(), v.String() != ""
	}
	return "", true
}

// columnValue returns the driver argument for a column pointer: nil for an
// unset optional column, the dereferenced value otherwise.
func columnValue(col any) any {
	v := reflect.ValueOf(col).Elem()
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return v.Interface()
}

// copyColumns makes dst hold the same column values as src.
func copyColumns(dst, src types.Entity) {
	dcols, scols := dst.Columns(), src.Columns()
	for i := range scols {
		reflect.ValueOf(dcols[i]).Elem().Set(reflect.ValueOf(scols[i]).Elem())
	}
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func quoteAll(idents []string) string {
	quoted := make([]string, len(idents))
	for i, id := range idents {
		quoted[i] = quote(id)
	}
	return strings.Join(quoted, ", ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
