// Package order sorts catalogue results. Predicates never impose an order;
// callers pick one here.
package order

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/waqarniyazi/aiportalx/internal/domain"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/match"
)

// Field is a sortable model field.
type Field string

// Sortable fields.
const (
	ByModel           Field = model.FieldModel
	ByPublicationDate Field = model.FieldPublicationDate
	ByTrainingCompute Field = model.FieldTrainingCompute
)

// Direction is ascending or descending.
type Direction string

// Directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order is a field and a direction.
type Order struct {
	Field     Field
	Direction Direction
}

// Default sorts by model name, A to Z.
var Default = Order{Field: ByModel, Direction: Asc}

var aliases = map[string]Field{
	"model":                   ByModel,
	"name":                    ByModel,
	"publication date":        ByPublicationDate,
	"publication_date":        ByPublicationDate,
	"date":                    ByPublicationDate,
	"training compute (flop)": ByTrainingCompute,
	"training_compute":        ByTrainingCompute,
	"flop":                    ByTrainingCompute,
}

// Parse reads a sort field and direction. An empty field yields Default.
// An empty direction is ascending for names and descending otherwise.
func Parse(field, direction string) (Order, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		field = string(Default.Field)
	}
	f, ok := aliases[match.Fold(field)]
	if !ok {
		return Order{}, domain.NewQueryError("sort", "must be one of Model, Publication date, Training compute (FLOP)")
	}

	var d Direction
	switch match.Fold(strings.TrimSpace(direction)) {
	case "":
		d = Desc
		if f == ByModel {
			d = Asc
		}
	case "asc":
		d = Asc
	case "desc":
		d = Desc
	default:
		return Order{}, domain.NewQueryError("order", "must be asc or desc")
	}
	return Order{Field: f, Direction: d}, nil
}

// Sort orders models in place. The sort is stable; records with a missing or
// unparseable sort value go last in both directions.
func Sort(models []*model.Model, o Order) {
	slices.SortStableFunc(models, func(a, b *model.Model) int {
		ka, okA := key(a, o.Field)
		kb, okB := key(b, o.Field)
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		c := ka.compare(kb)
		if o.Direction == Desc {
			c = -c
		}
		return c
	})
}

type sortKey struct {
	s string
	n float64
}

func (k sortKey) compare(other sortKey) int {
	if k.s != "" || other.s != "" {
		return strings.Compare(k.s, other.s)
	}
	return cmp.Compare(k.n, other.n)
}

func key(m *model.Model, f Field) (sortKey, bool) {
	switch f {
	case ByPublicationDate:
		d := strings.TrimSpace(m.PublicationDate)
		return sortKey{s: d}, d != ""
	case ByTrainingCompute:
		n, err := strconv.ParseFloat(strings.TrimSpace(m.TrainingCompute), 64)
		if err != nil {
			return sortKey{}, false
		}
		return sortKey{n: n}, true
	default:
		name := match.Fold(strings.TrimSpace(m.Name))
		return sortKey{s: name}, name != ""
	}
}
