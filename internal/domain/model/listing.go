package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Listing is the tagged result of decoding a collection response. A response
// is either a sequence of records or some other valid JSON value that the
// caller must treat as an empty collection.
type Listing[T any] struct {
	items      []T
	unexpected bool
	raw        json.RawMessage
}

// Sequence wraps records decoded from a JSON array.
func Sequence[T any](items []T) Listing[T] {
	if items == nil {
		items = []T{}
	}
	return Listing[T]{items: items}
}

// Unexpected wraps a valid JSON value that is not a sequence of records.
func Unexpected[T any](raw []byte) Listing[T] {
	return Listing[T]{unexpected: true, raw: append(json.RawMessage(nil), raw...)}
}

// IsUnexpected reports whether the response had an unexpected shape.
func (l Listing[T]) IsUnexpected() bool {
	return l.unexpected
}

// Items returns the records in server order. Unexpected listings yield an
// empty, non-nil slice.
func (l Listing[T]) Items() []T {
	if l.unexpected || l.items == nil {
		return []T{}
	}
	return l.items
}

// Raw returns the original body of an unexpected listing.
func (l Listing[T]) Raw() json.RawMessage {
	return l.raw
}

// DecodeListing classifies a response body. A JSON array becomes a Sequence
// holding one record per element in the order received. Elements are decoded
// leniently: a field of the wrong JSON type is carried as its text (or left
// empty for null, objects and arrays) and an element that is not an object
// becomes an empty record. Any other valid JSON value (object, null, scalar)
// becomes Unexpected. Only malformed JSON returns an error.
func DecodeListing[T any](body []byte) (Listing[T], error) {
	if !json.Valid(body) {
		return Listing[T]{}, fmt.Errorf("decode listing: malformed JSON (%d bytes)", len(body))
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return Unexpected[T](trimmed), nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return Listing[T]{}, fmt.Errorf("decode listing: %w", err)
	}

	items := make([]T, 0, len(elems))
	for _, elem := range elems {
		items = append(items, decodeRecord[T](elem))
	}

	return Sequence(items), nil
}

// decodeRecord decodes one array element. It never fails: whatever cannot be
// decoded is left at its zero value.
func decodeRecord[T any](elem json.RawMessage) T {
	var item T
	e := bytes.TrimSpace(elem)
	if len(e) == 0 || e[0] != '{' {
		return item
	}

	if err := json.Unmarshal(e, &item); err == nil {
		return item
	}

	item = *new(T)
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(e, &fields); err != nil {
		return item
	}

	v := reflect.ValueOf(&item).Elem()
	if v.Kind() != reflect.Struct {
		return item
	}
	for i := 0; i < v.NumField(); i++ {
		sf := v.Type().Field(i)
		if !sf.IsExported() {
			continue
		}
		raw, ok := lookupField(fields, jsonName(sf))
		if !ok {
			continue
		}

		fv := v.Field(i)
		target := reflect.New(fv.Type())
		if err := json.Unmarshal(raw, target.Interface()); err == nil {
			fv.Set(target.Elem())
			continue
		}
		if fv.Kind() == reflect.String {
			fv.SetString(scalarText(raw))
		}
	}
	return item
}

func jsonName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "" {
		return sf.Name
	}
	return name
}

// lookupField matches keys the way encoding/json does: exact first, then
// case-insensitively.
func lookupField(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if raw, ok := fields[name]; ok {
		return raw, true
	}
	for k, raw := range fields {
		if strings.EqualFold(k, name) {
			return raw, true
		}
	}
	return nil, false
}

// scalarText renders a JSON number or boolean as its literal text. Strings
// are unquoted. null, objects and arrays yield "".
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		return ""
	case '{', '[', 'n':
		return ""
	default:
		return string(raw)
	}
}
