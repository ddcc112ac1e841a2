package facet

import (
	"sort"

	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/match"
)

// Facet binds a public facet name to the record field it filters on.
type Facet struct {
	Name    string
	Field   string
	Aliases []string
}

// Registry resolves public facet names onto record fields.
type Registry struct {
	facets []Facet
	byName map[string]Facet
}

// NewRegistry creates a registry. Lookups fold ASCII case; the first facet
// registered under a name wins.
func NewRegistry(facets ...Facet) *Registry {
	r := &Registry{byName: make(map[string]Facet)}
	for _, f := range facets {
		r.facets = append(r.facets, f)
		for _, n := range append([]string{f.Name, f.Field}, f.Aliases...) {
			key := match.Fold(n)
			if _, ok := r.byName[key]; !ok {
				r.byName[key] = f
			}
		}
	}
	return r
}

// Catalog facet names.
const (
	Task         = "Task"
	Domain       = "Domain"
	Organization = "Organization"
	Country      = "Country"
	Model        = "Model"
)

// DefaultRegistry returns the facets of the model catalogue.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Facet{Name: Task, Field: model.FieldTask, Aliases: []string{"tasks"}},
		Facet{Name: Domain, Field: model.FieldDomain, Aliases: []string{"domains"}},
		Facet{Name: Organization, Field: model.FieldOrganization, Aliases: []string{"organizations"}},
		Facet{Name: Country, Field: model.FieldCountry, Aliases: []string{"countries"}},
		Facet{Name: Model, Field: model.FieldModel, Aliases: []string{"models", "name"}},
	)
}

// Facets returns the registered facets in registration order.
func (r *Registry) Facets() []Facet {
	out := make([]Facet, len(r.facets))
	copy(out, r.facets)
	return out
}

// Lookup finds a facet by name, field or alias.
func (r *Registry) Lookup(name string) (Facet, bool) {
	f, ok := r.byName[match.Fold(name)]
	return f, ok
}

// Resolve rewrites a bag keyed by public names into a bag keyed by record
// fields. Unknown names are dropped. Names that resolve to the same field are
// merged, keeping the first occurrence of each value.
func (r *Registry) Resolve(bag Bag) Bag {
	out := Bag{}
	for _, name := range bag.keys {
		f, ok := r.Lookup(name)
		if !ok {
			continue
		}
		out.add(f.Field, bag.Values(name))
	}
	sort.Strings(out.keys)
	return out
}
