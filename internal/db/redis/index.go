package redis

import (
	"context"

	"github.com/waqarniyazi/aiportalx/internal/db"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
)

// Index attribute aliases of the model index.
const (
	attrTask         = "task"
	attrDomain       = "domain"
	attrOrganization = "organization"
	attrCountry      = "country"
	attrName         = "name"
	attrOrgKey       = "org_key"
	attrNameKey      = "name_key"
)

const tagSeparator = "|"

// fieldAttrs maps record fields onto their TAG attribute.
var fieldAttrs = map[string]string{
	model.FieldTask:         attrTask,
	model.FieldDomain:       attrDomain,
	model.FieldOrganization: attrOrganization,
	model.FieldCountry:      attrCountry,
	model.FieldModel:        attrName,
}

// tagAttr is one TAG attribute of the model index.
type tagAttr struct {
	path          string // JSONPath into the stored document
	alias         string
	caseSensitive bool
}

// modelSchema lists the attributes of the model index. Facet values match
// case-insensitively; the slug keys are written already folded.
var modelSchema = []tagAttr{
	{path: "$.Task[*]", alias: attrTask},
	{path: "$.Domain[*]", alias: attrDomain},
	{path: "$.Organization[*]", alias: attrOrganization},
	{path: `$["Country (from Organization)"][*]`, alias: attrCountry},
	{path: "$.Model", alias: attrName},
	{path: "$.__org_keys[*]", alias: attrOrgKey, caseSensitive: true},
	{path: "$.__name_key", alias: attrNameKey, caseSensitive: true},
}

// createArgs returns the FT.CREATE arguments of the model index.
func createArgs(name, prefix string) []string {
	args := []string{name, "ON", "JSON", "PREFIX", "1", prefix, "SCHEMA"}
	for _, a := range modelSchema {
		args = append(args, a.path, "AS", a.alias, "TAG", "SEPARATOR", tagSeparator)
		if a.caseSensitive {
			args = append(args, "CASESENSITIVE")
		}
	}
	return args
}

// EnsureIndex creates the model index unless it already exists.
func (s *Store) EnsureIndex(ctx context.Context) error {
	exists, err := s.IndexExists(ctx, s.indexName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	cmd := s.b().Arbitrary("FT.CREATE").Args(createArgs(s.indexName, s.keyPrefix)...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		// Another replica may have created it since the probe.
		if isRedisErr(err, "index already exists") {
			return nil
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

// IndexExists probes index existence via FT.INFO; "unknown index name" means absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index") {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}
