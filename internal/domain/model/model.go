package model

// Canonical record field names. They match the keys of the stored documents.
const (
	FieldID                 = "_id"
	FieldModel              = "Model"
	FieldTask               = "Task"
	FieldDomain             = "Domain"
	FieldOrganization       = "Organization"
	FieldCountry            = "Country (from Organization)"
	FieldAuthors            = "Authors"
	FieldPublicationDate    = "Publication date"
	FieldTrainingCompute    = "Training compute (FLOP)"
	FieldParameters         = "Parameters"
	FieldModelAccessibility = "Model accessibility"
)

// Record is a read-only view over a stored document: an id plus the values of
// any field, scalar fields exposed as a one-element slice.
type Record interface {
	RecordID() string
	FieldValues(field string) []string
}

// Model is one AI model document of the catalogue. The core never mutates
// Models it reads from the store.
type Model struct {
	ID                         string   `json:"_id" bson:"_id"`
	Name                       string   `json:"Model" bson:"Model"`
	Domain                     []string `json:"Domain,omitempty" bson:"Domain,omitempty"`
	Task                       []string `json:"Task,omitempty" bson:"Task,omitempty"`
	Organization               []string `json:"Organization,omitempty" bson:"Organization,omitempty"`
	Country                    []string `json:"Country (from Organization),omitempty" bson:"Country (from Organization),omitempty"`
	PublicationDate            string   `json:"Publication date,omitempty" bson:"Publication date,omitempty"`
	Authors                    []string `json:"Authors,omitempty" bson:"Authors,omitempty"`
	Accessibility              string   `json:"Model accessibility,omitempty" bson:"Model accessibility,omitempty"`
	Link                       string   `json:"Link,omitempty" bson:"Link,omitempty"`
	Citations                  string   `json:"Citations,omitempty" bson:"Citations,omitempty"`
	Reference                  string   `json:"Reference,omitempty" bson:"Reference,omitempty"`
	Parameters                 string   `json:"Parameters,omitempty" bson:"Parameters,omitempty"`
	ParametersNotes            string   `json:"Parameters notes,omitempty" bson:"Parameters notes,omitempty"`
	TrainingCompute            string   `json:"Training compute (FLOP),omitempty" bson:"Training compute (FLOP),omitempty"`
	TrainingComputeNotes       string   `json:"Training compute notes,omitempty" bson:"Training compute notes,omitempty"`
	TrainingDataset            string   `json:"Training dataset,omitempty" bson:"Training dataset,omitempty"`
	TrainingDatasetNotes       string   `json:"Training dataset notes,omitempty" bson:"Training dataset notes,omitempty"`
	TrainingDatasetSize        string   `json:"Training dataset size (datapoints),omitempty" bson:"Training dataset size (datapoints),omitempty"`
	DatasetSizeNotes           string   `json:"Dataset size notes,omitempty" bson:"Dataset size notes,omitempty"`
	TrainingHardware           string   `json:"Training hardware,omitempty" bson:"Training hardware,omitempty"`
	HardwareQuantity           string   `json:"Hardware quantity,omitempty" bson:"Hardware quantity,omitempty"`
	Confidence                 string   `json:"Confidence,omitempty" bson:"Confidence,omitempty"`
	Abstract                   string   `json:"Abstract,omitempty" bson:"Abstract,omitempty"`
	BaseModel                  string   `json:"Base model,omitempty" bson:"Base model,omitempty"`
	FinetuneCompute            string   `json:"Finetune compute (FLOP),omitempty" bson:"Finetune compute (FLOP),omitempty"`
	FinetuneComputeNotes       string   `json:"Finetune compute notes,omitempty" bson:"Finetune compute notes,omitempty"`
	TrainingCodeAccessibility  string   `json:"Training code accessibility,omitempty" bson:"Training code accessibility,omitempty"`
	AccessibilityNotes         string   `json:"Accessibility notes,omitempty" bson:"Accessibility notes,omitempty"`
	OrganizationCategorization string   `json:"Organization categorization (from Organization),omitempty" bson:"Organization categorization (from Organization),omitempty"`
}

var _ Record = (*Model)(nil)

// RecordID returns the document id.
func (m *Model) RecordID() string { return m.ID }

// FieldValues returns the values stored under a canonical field name.
// Unknown fields and empty scalars yield nil.
func (m *Model) FieldValues(field string) []string {
	switch field {
	case FieldTask:
		return m.Task
	case FieldDomain:
		return m.Domain
	case FieldOrganization:
		return m.Organization
	case FieldCountry:
		return m.Country
	case FieldAuthors:
		return m.Authors
	case FieldID:
		return scalar(m.ID)
	case FieldModel:
		return scalar(m.Name)
	case FieldPublicationDate:
		return scalar(m.PublicationDate)
	case FieldTrainingCompute:
		return scalar(m.TrainingCompute)
	case FieldParameters:
		return scalar(m.Parameters)
	case FieldModelAccessibility:
		return scalar(m.Accessibility)
	default:
		return nil
	}
}

// PrimaryOrganization returns the first listed organization or "".
func (m *Model) PrimaryOrganization() string {
	if len(m.Organization) == 0 {
		return ""
	}
	return m.Organization[0]
}

func scalar(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}
