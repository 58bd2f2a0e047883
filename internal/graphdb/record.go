package graphdb

import "time"

// Record is one result row keyed by the RETURN aliases of the query.
type Record map[string]any

// Has reports whether key is present and non-null.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// String returns the value at key, or "" when it is absent or not a string.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int returns the value at key as int64. Neo4j returns integers as int64;
// the narrower Go types are accepted for records built in tests.
func (r Record) Int(key string) int64 {
	switch v := r[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// Bool returns the value at key, or false.
func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Strings returns a list value. The driver decodes lists as []any.
func (r Record) Strings(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Time returns a temporal value at key. The driver decodes DATETIME as
// time.Time; absent or other values yield the zero time.
func (r Record) Time(key string) time.Time {
	t, _ := r[key].(time.Time)
	return t
}
