package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/waqarniyazi/aiportalx/internal/db"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/match"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

// column describes where a record field lives in the models table.
type column struct {
	name  string
	array bool
}

var columns = map[string]column{
	model.FieldTask:         {name: "task", array: true},
	model.FieldDomain:       {name: "domain", array: true},
	model.FieldOrganization: {name: "organization", array: true},
	model.FieldCountry:      {name: "country", array: true},
	model.FieldModel:        {name: "name"},
}

// Where translates a predicate into a boolean SQL expression and its
// positional arguments. Values are always passed as arguments and compared
// with ascii_fold, so matching folds ASCII case only.
func Where(p predicate.Predicate) (string, []any, error) {
	w := &whereBuilder{}
	switch p := p.(type) {
	case nil:
		return "TRUE", nil, nil
	case predicate.FacetConjunction:
		if p.MatchesAll() {
			return "TRUE", nil, nil
		}
		for _, c := range p.Clauses {
			col, err := lookup(c.Field)
			if err != nil {
				return "", nil, err
			}
			folded := make([]string, len(c.Values))
			for i, v := range c.Values {
				folded[i] = match.Fold(v)
			}
			w.add(col, "ascii_fold(%s) = ANY("+w.arg(folded)+")")
		}
	case predicate.IdentityMatch:
		for _, pair := range [][2]string{{p.PrimaryField, p.PrimarySlug}, {p.SecondaryField, p.SecondarySlug}} {
			col, err := lookup(pair[0])
			if err != nil {
				return "", nil, err
			}
			w.add(col, "replace(ascii_fold(%s), ' ', '-') = "+w.arg(match.SlugKey(pair[1])))
		}
	case predicate.TextSearch:
		term := w.arg(match.Fold(p.Term))
		var ors []string
		for _, f := range p.Fields {
			col, err := lookup(f)
			if err != nil {
				return "", nil, err
			}
			ors = append(ors, expr(col, "strpos(ascii_fold(%s), "+term+") > 0"))
		}
		w.parts = append(w.parts, "("+strings.Join(ors, " OR ")+")")
	default:
		return "", nil, db.Unsupported(p)
	}
	return strings.Join(w.parts, " AND "), w.args, nil
}

type whereBuilder struct {
	parts []string
	args  []any
}

func (w *whereBuilder) arg(v any) string {
	w.args = append(w.args, v)
	return "$" + strconv.Itoa(len(w.args))
}

func (w *whereBuilder) add(col column, cond string) {
	w.parts = append(w.parts, expr(col, cond))
}

// expr applies cond to a scalar column directly and to an array column
// through unnest, true when any element satisfies it.
func expr(col column, cond string) string {
	if !col.array {
		return fmt.Sprintf(cond, col.name)
	}
	return fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(%s) v WHERE %s)", col.name, fmt.Sprintf(cond, "v"))
}

func lookup(field string) (column, error) {
	col, ok := columns[field]
	if !ok {
		return column{}, fmt.Errorf("%w: no column for field %q", db.ErrUnsupportedPredicate, field)
	}
	return col, nil
}
