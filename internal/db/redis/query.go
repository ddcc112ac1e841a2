package redis

import (
	"fmt"
	"strings"

	"github.com/waqarniyazi/aiportalx/internal/db"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/match"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

// matchAll is the FT.SEARCH query selecting every document.
const matchAll = "*"

// translation is an FT.SEARCH query plus whether results still need the
// predicate applied in process.
type translation struct {
	query    string
	postEval bool
}

// translate turns a predicate into an FT.SEARCH query string.
//
// TAG attributes are case-insensitive, so facet values go in verbatim.
// Identity lookups use the slug keys written next to every document.
// RediSearch has no literal infix match on TEXT attributes, so a TextSearch
// selects everything and is evaluated after loading.
func translate(p predicate.Predicate) (translation, error) {
	switch p := p.(type) {
	case predicate.FacetConjunction:
		if p.MatchesAll() {
			return translation{query: matchAll}, nil
		}
		parts := make([]string, 0, len(p.Clauses))
		for _, c := range p.Clauses {
			attr, ok := fieldAttrs[c.Field]
			if !ok {
				return translation{}, fmt.Errorf("%w: field %q is not indexed", db.ErrUnsupportedPredicate, c.Field)
			}
			parts = append(parts, buildTagFilter(attr, c.Values...))
		}
		return translation{query: strings.Join(parts, " ")}, nil
	case predicate.IdentityMatch:
		return translation{query: buildTagFilter(attrOrgKey, match.SlugKey(p.PrimarySlug)) + " " +
			buildTagFilter(attrNameKey, match.SlugKey(p.SecondarySlug))}, nil
	case predicate.TextSearch:
		return translation{query: matchAll, postEval: true}, nil
	default:
		return translation{}, db.Unsupported(p)
	}
}

func buildTagFilter(attr string, values ...string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = tagEscaper.Replace(v)
	}
	return fmt.Sprintf("@%s:{%s}", attr, strings.Join(escaped, " | "))
}

var tagEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"[", "\\[",
	"]", "\\]",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	"/", "\\/",
	" ", "\\ ",
)
