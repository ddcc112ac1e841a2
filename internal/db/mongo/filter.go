package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/waqarniyazi/aiportalx/internal/db"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/match"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

// caseInsensitive is the $regex option used for every pattern. Unlike the
// other drivers it also folds non-ASCII letters, so "É" matches "é" here.
const caseInsensitive = "i"

// Filter translates a predicate into a find filter. Every user value is
// quoted before it becomes a pattern. A nil predicate matches everything.
func Filter(p predicate.Predicate) (bson.D, error) {
	switch p := p.(type) {
	case nil:
		return bson.D{}, nil
	case predicate.FacetConjunction:
		filter := bson.D{}
		for _, c := range p.Clauses {
			in := make(bson.A, 0, len(c.Values))
			for _, v := range c.Values {
				in = append(in, regex(match.ExactPattern(v)))
			}
			filter = append(filter, bson.E{Key: c.Field, Value: bson.D{{Key: "$in", Value: in}}})
		}
		return filter, nil
	case predicate.IdentityMatch:
		return bson.D{
			{Key: p.PrimaryField, Value: regex(match.SlugPattern(p.PrimarySlug))},
			{Key: p.SecondaryField, Value: regex(match.SlugPattern(p.SecondarySlug))},
		}, nil
	case predicate.TextSearch:
		or := make(bson.A, 0, len(p.Fields))
		for _, f := range p.Fields {
			or = append(or, bson.D{{Key: f, Value: regex(match.SubstringPattern(p.Term))}})
		}
		return bson.D{{Key: "$or", Value: or}}, nil
	default:
		return nil, db.Unsupported(p)
	}
}

func regex(pattern string) primitive.Regex {
	return primitive.Regex{Pattern: pattern, Options: caseInsensitive}
}
