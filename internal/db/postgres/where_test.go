package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/waqarniyazi/aiportalx/internal/db"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/facet"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

func TestWhere_MatchAll(t *testing.T) {
	for _, p := range []predicate.Predicate{nil, predicate.FacetConjunction{}} {
		sql, args, err := Where(p)
		require.NoError(t, err)
		require.Equal(t, "TRUE", sql)
		require.Empty(t, args)
	}
}

func TestWhere_Facets(t *testing.T) {
	bag := facet.Normalize(facet.Raw{
		model.FieldTask:  {"Chat", "Vision"},
		model.FieldModel: {"GPT-4o"},
	})
	sql, args, err := Where(predicate.Build(bag, nil))
	require.NoError(t, err)
	require.Equal(t,
		"ascii_fold(name) = ANY($1) AND "+
			"EXISTS (SELECT 1 FROM unnest(task) v WHERE ascii_fold(v) = ANY($2))",
		sql)
	require.Equal(t, []any{[]string{"gpt-4o"}, []string{"chat", "vision"}}, args)
}

func TestWhere_Identity(t *testing.T) {
	sql, args, err := Where(predicate.Build(facet.Bag{}, &predicate.Identity{Primary: "Meta AI", Secondary: "llama-3"}))
	require.NoError(t, err)
	require.Equal(t,
		"EXISTS (SELECT 1 FROM unnest(organization) v WHERE replace(ascii_fold(v), ' ', '-') = $1) AND "+
			"replace(ascii_fold(name), ' ', '-') = $2",
		sql)
	require.Equal(t, []any{"meta-ai", "llama-3"}, args)
}

func TestWhere_Text(t *testing.T) {
	sql, args, err := Where(predicate.Text("C++ (Beta)%", model.FieldModel, model.FieldCountry))
	require.NoError(t, err)
	require.Equal(t,
		"(strpos(ascii_fold(name), $1) > 0 OR "+
			"EXISTS (SELECT 1 FROM unnest(country) v WHERE strpos(ascii_fold(v), $1) > 0))",
		sql)
	require.Equal(t, []any{"c++ (beta)%"}, args)
}

func TestWhere_UnknownField(t *testing.T) {
	p := predicate.FacetConjunction{Clauses: []predicate.Clause{{Field: model.FieldAuthors, Values: []string{"x"}}}}
	_, _, err := Where(p)
	require.ErrorIs(t, err, db.ErrUnsupportedPredicate)
}
