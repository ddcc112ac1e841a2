// Package predicate builds the store-independent selection condition for a
// catalogue query.
//
// A Predicate is a closed set of variants. Store drivers translate it with an
// exhaustive type switch and reject anything else.
package predicate

import (
	"strings"

	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/facet"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/match"
)

// Kind names a predicate variant.
type Kind string

// Predicate kinds.
const (
	KindIdentity Kind = "identity"
	KindFacets   Kind = "facets"
	KindText     Kind = "text"
)

// Predicate selects records.
type Predicate interface {
	Kind() Kind
	// Matches evaluates the predicate in process.
	Matches(r model.Record) bool
	sealed()
}

// Identity is a canonical organization + model lookup by slug.
type Identity struct {
	Primary   string
	Secondary string
}

// Valid reports whether both slugs are non-empty after trimming.
func (id *Identity) Valid() bool {
	return id != nil && strings.TrimSpace(id.Primary) != "" && strings.TrimSpace(id.Secondary) != ""
}

// IdentityMatch selects the records whose primary and secondary identity
// fields match the given slugs.
type IdentityMatch struct {
	PrimaryField   string
	PrimarySlug    string
	SecondaryField string
	SecondarySlug  string
}

func (IdentityMatch) sealed() {}

// Kind implements Predicate.
func (IdentityMatch) Kind() Kind { return KindIdentity }

// Matches implements Predicate. A multi-valued field matches when any of its
// values matches the slug.
func (p IdentityMatch) Matches(r model.Record) bool {
	return anySlug(r.FieldValues(p.PrimaryField), p.PrimarySlug) &&
		anySlug(r.FieldValues(p.SecondaryField), p.SecondarySlug)
}

func anySlug(values []string, slug string) bool {
	for _, v := range values {
		if match.Slug(v, slug) {
			return true
		}
	}
	return false
}

// Clause requires the record field to hold at least one of Values.
type Clause struct {
	Field  string
	Values []string
}

// Matches reports whether any record value equals any clause value.
func (c Clause) Matches(r model.Record) bool {
	for _, have := range r.FieldValues(c.Field) {
		for _, want := range c.Values {
			if match.Equal(have, want) {
				return true
			}
		}
	}
	return false
}

// FacetConjunction is the AND of its clauses. No clauses matches everything.
type FacetConjunction struct {
	Clauses []Clause
}

func (FacetConjunction) sealed() {}

// Kind implements Predicate.
func (FacetConjunction) Kind() Kind { return KindFacets }

// Matches implements Predicate.
func (p FacetConjunction) Matches(r model.Record) bool {
	for _, c := range p.Clauses {
		if !c.Matches(r) {
			return false
		}
	}
	return true
}

// MatchesAll reports whether the conjunction is unconstrained.
func (p FacetConjunction) MatchesAll() bool { return len(p.Clauses) == 0 }

// TextSearch selects records where any of Fields contains Term as a literal,
// case-insensitive substring.
type TextSearch struct {
	Fields []string
	Term   string
}

func (TextSearch) sealed() {}

// Kind implements Predicate.
func (TextSearch) Kind() Kind { return KindText }

// Matches implements Predicate.
func (p TextSearch) Matches(r model.Record) bool {
	for _, f := range p.Fields {
		for _, v := range r.FieldValues(f) {
			if match.Contains(v, p.Term) {
				return true
			}
		}
	}
	return false
}

// Text builds a TextSearch over fields. The term is trimmed.
func Text(term string, fields ...string) TextSearch {
	return TextSearch{Fields: fields, Term: strings.TrimSpace(term)}
}

// Build converts a bag keyed by record fields into a Predicate.
//
// A valid identity wins over the bag: the result is an IdentityMatch on
// Organization and Model and every facet is ignored. Otherwise each facet
// becomes one clause, in the bag's key order.
func Build(bag facet.Bag, identity *Identity) Predicate {
	if identity.Valid() {
		return IdentityMatch{
			PrimaryField:   model.FieldOrganization,
			PrimarySlug:    strings.TrimSpace(identity.Primary),
			SecondaryField: model.FieldModel,
			SecondarySlug:  strings.TrimSpace(identity.Secondary),
		}
	}
	clauses := make([]Clause, 0, bag.Len())
	for _, k := range bag.Keys() {
		clauses = append(clauses, Clause{Field: k, Values: bag.Values(k)})
	}
	return FacetConjunction{Clauses: clauses}
}

// Filter returns the records that satisfy p, in input order.
func Filter[R model.Record](records []R, p Predicate) []R {
	out := make([]R, 0, len(records))
	for _, r := range records {
		if p.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
