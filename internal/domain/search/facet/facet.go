// Package facet normalizes caller-supplied filter parameters into a Bag.
//
// Normalization never fails: a malformed value degrades to "no constraint"
// for its facet.
package facet

import (
	"encoding/json"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Values is one raw facet parameter. It decodes from a JSON string or number,
// an array of them, or null; any other JSON value decodes to nil.
type Values []string

// UnmarshalJSON implements json.Unmarshal for scalar-or-array parameters.
func (v *Values) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		*v = nil
		return nil //nolint:nilerr // malformed filter input means no constraint
	}
	*v = fromAny(raw)
	return nil
}

func fromAny(raw any) Values {
	switch x := raw.(type) {
	case string:
		return Values{x}
	case float64:
		return Values{strconv.FormatFloat(x, 'f', -1, 64)}
	case []any:
		out := make(Values, 0, len(x))
		for _, e := range x {
			switch s := e.(type) {
			case string:
				out = append(out, s)
			case float64:
				out = append(out, strconv.FormatFloat(s, 'f', -1, 64))
			}
		}
		return out
	default:
		return nil
	}
}

// Raw is an unnormalized parameter bag: facet name to zero or more values.
// A missing key and a nil slice both mean "not supplied".
type Raw map[string]Values

// NormalizeOptions tunes Normalize.
type NormalizeOptions struct {
	// SplitComma splits each element on commas before trimming, for clients
	// that join several values into one query parameter.
	SplitComma bool
}

// Bag is a normalized filter bag. Every facet it holds maps to a non-empty
// sequence of trimmed, non-empty values; facet names are kept sorted.
// The zero Bag is empty and ready to use.
type Bag struct {
	keys   []string
	values map[string][]string
}

// Normalize builds a Bag from raw parameters.
func Normalize(raw Raw) Bag {
	return NormalizeWith(raw, NormalizeOptions{})
}

// NormalizeWith builds a Bag from raw parameters using opts.
func NormalizeWith(raw Raw, opts NormalizeOptions) Bag {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	b := Bag{}
	for _, name := range names {
		vals := raw[name]
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if opts.SplitComma {
			vals = splitComma(vals)
		}
		cleaned := Clean(vals)
		if len(cleaned) == 0 {
			continue
		}
		b.add(name, cleaned)
	}
	sort.Strings(b.keys)
	return b
}

// Clean trims every value and drops the ones that end up empty. Order is
// preserved. It returns nil when nothing remains.
func Clean(vals []string) []string {
	var out []string
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func splitComma(vals Values) Values {
	out := make(Values, 0, len(vals))
	for _, v := range vals {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}

func (b *Bag) add(name string, vals []string) {
	if b.values == nil {
		b.values = make(map[string][]string)
	}
	if existing, ok := b.values[name]; ok {
		for _, v := range vals {
			if !slices.Contains(existing, v) {
				existing = append(existing, v)
			}
		}
		b.values[name] = existing
		return
	}
	b.keys = append(b.keys, name)
	b.values[name] = vals
}

// Keys returns the facet names in sorted order.
func (b Bag) Keys() []string { return slices.Clone(b.keys) }

// Values returns a copy of the values selected for a facet, nil if absent.
func (b Bag) Values(name string) []string { return slices.Clone(b.values[name]) }

// Has reports whether the facet is constrained.
func (b Bag) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Len returns the number of constrained facets.
func (b Bag) Len() int { return len(b.keys) }

// IsEmpty reports whether the bag constrains nothing.
func (b Bag) IsEmpty() bool { return len(b.keys) == 0 }

// Raw converts the bag back into raw parameters.
func (b Bag) Raw() Raw {
	out := make(Raw, len(b.keys))
	for _, k := range b.keys {
		out[k] = slices.Clone(b.values[k])
	}
	return out
}

// Equal reports whether two bags hold the same facets and values in the same
// order.
func (b Bag) Equal(other Bag) bool {
	if !slices.Equal(b.keys, other.keys) {
		return false
	}
	for _, k := range b.keys {
		if !slices.Equal(b.values[k], other.values[k]) {
			return false
		}
	}
	return true
}
