// Package schema turns untyped records coming from the database or a
// remote API into typed model values. It is the trust boundary between
// raw payloads and the rest of the service: every parser either returns
// a fully populated value or an *Error naming the first bad field.
package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Record is one untyped row, keyed by column name.
type Record = map[string]any

// Error describes the first constraint a record violated.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldError(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// indexed prefixes the field of a nested error with the element position.
func indexed(i int, err error) error {
	if se, ok := err.(*Error); ok {
		return &Error{Field: fmt.Sprintf("[%d].%s", i, se.Field), Message: se.Message}
	}
	return err
}

func lookup(r Record, key string) (any, error) {
	v, ok := r[key]
	if !ok {
		return nil, fieldError(key, "required")
	}
	return v, nil
}

func integer(r Record, key string) (int64, error) {
	v, err := lookup(r, key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fieldError(key, "expected integer, got %v", n)
		}
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fieldError(key, "expected integer, got %q", n.String())
		}
		return i, nil
	case nil:
		return 0, fieldError(key, "expected number, received null")
	default:
		return 0, fieldError(key, "expected number, received %T", v)
	}
}

func intField(r Record, key string) (int, error) {
	n, err := integer(r, key)
	return int(n), err
}

func str(r Record, key string) (string, error) {
	v, err := lookup(r, key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		if v == nil {
			return "", fieldError(key, "expected string, received null")
		}
		return "", fieldError(key, "expected string, received %T", v)
	}
	return s, nil
}

func nullableStr(r Record, key string) (*string, error) {
	v, err := lookup(r, key)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fieldError(key, "expected string, received %T", v)
	}
	return &s, nil
}

func boolean(r Record, key string) (bool, error) {
	v, err := lookup(r, key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fieldError(key, "expected boolean, received %T", v)
	}
	return b, nil
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func timestamp(r Record, key string) (time.Time, error) {
	v, err := lookup(r, key)
	if err != nil {
		return time.Time{}, err
	}
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fieldError(key, "invalid date %q", t)
	default:
		return time.Time{}, fieldError(key, "expected date, received %T", v)
	}
}

func record(r Record, key string) (Record, error) {
	v, err := lookup(r, key)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fieldError(key, "expected object, received %T", v)
	}
	return m, nil
}

// collector keeps the first error seen so parsers can read fields in a row.
type collector struct {
	err error
}

func (c *collector) int(r Record, key string) int {
	if c.err != nil {
		return 0
	}
	v, err := intField(r, key)
	c.err = err
	return v
}

func (c *collector) id(r Record, key string) int64 {
	if c.err != nil {
		return 0
	}
	v, err := integer(r, key)
	c.err = err
	return v
}

func (c *collector) str(r Record, key string) string {
	if c.err != nil {
		return ""
	}
	v, err := str(r, key)
	c.err = err
	return v
}

func (c *collector) nullableStr(r Record, key string) *string {
	if c.err != nil {
		return nil
	}
	v, err := nullableStr(r, key)
	c.err = err
	return v
}

func (c *collector) bool(r Record, key string) bool {
	if c.err != nil {
		return false
	}
	v, err := boolean(r, key)
	c.err = err
	return v
}

func (c *collector) time(r Record, key string) time.Time {
	if c.err != nil {
		return time.Time{}
	}
	v, err := timestamp(r, key)
	c.err = err
	return v
}

func (c *collector) record(r Record, key string) Record {
	if c.err != nil {
		return nil
	}
	v, err := record(r, key)
	c.err = err
	return v
}
