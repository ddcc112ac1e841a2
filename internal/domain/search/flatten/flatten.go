// Package flatten explodes array-valued record fields into a list of distinct
// values, each linked back to the record it was first seen in.
package flatten

import "github.com/waqarniyazi/aiportalx/internal/domain/model"

// Value is one distinct field value and the id of the record that first
// carried it.
type Value struct {
	SourceRecordID string `json:"id"`
	Value          string `json:"value"`
}

// Flatten walks records and their field values in order and keeps the first
// occurrence of every value. Values compare by exact string equality.
func Flatten[R model.Record](records []R, field string) []Value {
	seen := make(map[string]struct{})
	out := make([]Value, 0)
	for _, r := range records {
		for _, v := range r.FieldValues(field) {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, Value{SourceRecordID: r.RecordID(), Value: v})
		}
	}
	return out
}

// Strings returns the bare values.
func Strings(values []Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.Value
	}
	return out
}

// Select keeps the values for which keep returns true, preserving order.
func Select(values []Value, keep func(string) bool) []Value {
	out := make([]Value, 0, len(values))
	for _, v := range values {
		if keep(v.Value) {
			out = append(out, v)
		}
	}
	return out
}
