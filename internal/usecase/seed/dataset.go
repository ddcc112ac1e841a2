package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/waqarniyazi/aiportalx/internal/domain"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/facet"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/match"
)

// legacyNameKey is the name field of older dataset exports.
const legacyNameKey = "System"

// idNamespace derives stable ids for documents that carry none.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://aiportalx.com/models"))

func listField(m *model.Model, key string) *[]string {
	switch key {
	case model.FieldDomain:
		return &m.Domain
	case model.FieldTask:
		return &m.Task
	case model.FieldOrganization:
		return &m.Organization
	case model.FieldCountry:
		return &m.Country
	case model.FieldAuthors:
		return &m.Authors
	}
	return nil
}

func textField(m *model.Model, key string) *string {
	switch key {
	case model.FieldID:
		return &m.ID
	case model.FieldModel:
		return &m.Name
	case model.FieldPublicationDate:
		return &m.PublicationDate
	case model.FieldModelAccessibility:
		return &m.Accessibility
	case model.FieldParameters:
		return &m.Parameters
	case model.FieldTrainingCompute:
		return &m.TrainingCompute
	case "Link":
		return &m.Link
	case "Citations":
		return &m.Citations
	case "Reference":
		return &m.Reference
	case "Parameters notes":
		return &m.ParametersNotes
	case "Training compute notes":
		return &m.TrainingComputeNotes
	case "Training dataset":
		return &m.TrainingDataset
	case "Training dataset notes":
		return &m.TrainingDatasetNotes
	case "Training dataset size (datapoints)":
		return &m.TrainingDatasetSize
	case "Dataset size notes":
		return &m.DatasetSizeNotes
	case "Training hardware":
		return &m.TrainingHardware
	case "Hardware quantity":
		return &m.HardwareQuantity
	case "Confidence":
		return &m.Confidence
	case "Abstract":
		return &m.Abstract
	case "Base model":
		return &m.BaseModel
	case "Finetune compute (FLOP)":
		return &m.FinetuneCompute
	case "Finetune compute notes":
		return &m.FinetuneComputeNotes
	case "Training code accessibility":
		return &m.TrainingCodeAccessibility
	case "Accessibility notes":
		return &m.AccessibilityNotes
	case "Organization categorization (from Organization)":
		return &m.OrganizationCategorization
	}
	return nil
}

// Decode reads a JSON array of model documents. Field values are coerced
// leniently: list fields accept a string, a number or an array; text fields
// accept a string, a number or a boolean. Unknown keys are ignored.
func Decode(r io.Reader) ([]*model.Model, error) {
	var docs []map[string]json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&docs); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDataset, err)
	}

	out := make([]*model.Model, 0, len(docs))
	for i, doc := range docs {
		m, err := decodeDoc(doc)
		if err != nil {
			return nil, fmt.Errorf("%w: document %d: %w", domain.ErrInvalidDataset, i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func decodeDoc(doc map[string]json.RawMessage) (*model.Model, error) {
	m := &model.Model{}
	for key, raw := range doc {
		if dst := listField(m, key); dst != nil {
			var v facet.Values
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("field %q: %w", key, err)
			}
			*dst = facet.Clean(v)
			continue
		}
		if dst := textField(m, key); dst != nil {
			s, err := text(raw)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", key, err)
			}
			*dst = s
		}
	}
	if m.Name == "" {
		if raw, ok := doc[legacyNameKey]; ok {
			s, err := text(raw)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", legacyNameKey, err)
			}
			m.Name = s
		}
	}
	return m, nil
}

// text renders a scalar JSON value as a trimmed string. null and composite
// values become "".
func text(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err //nolint:wrapcheck // wrapped by caller
		}
		return strings.TrimSpace(s), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return "", err //nolint:wrapcheck // wrapped by caller
		}
		return strconv.FormatBool(b), nil
	case 'n', '[', '{':
		return "", nil
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", err //nolint:wrapcheck // wrapped by caller
		}
		return n.String(), nil
	}
}

// identityKey identifies a model by its primary organization and name under
// slug matching, so "Meta AI/Llama 3" and "meta-ai/llama-3" collide.
func identityKey(m *model.Model) string {
	return match.SlugKey(strings.TrimSpace(m.PrimaryOrganization())) + "/" + match.SlugKey(strings.TrimSpace(m.Name))
}

// stableID derives an id from the identity key.
func stableID(m *model.Model) string {
	return uuid.NewSHA1(idNamespace, []byte(identityKey(m))).String()
}
