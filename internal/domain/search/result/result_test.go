package result

import (
	"encoding/json"
	"testing"

	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/flatten"
)

func catalogue() []*model.Model {
	return []*model.Model{
		{ID: "1", Name: "GPT-4o", Organization: []string{"OpenAI"}, Task: []string{"Chat", "Vision"}, Country: []string{"United States of America"}},
		{ID: "2", Name: "Whisper", Organization: []string{"OpenAI"}, Task: []string{"Speech recognition"}, Domain: []string{"Speech"}},
		{ID: "3", Name: "Visual ChatGPT", Organization: []string{"Microsoft"}, Task: []string{"Chat", "Visual question answering"}},
	}
}

func TestNewListing(t *testing.T) {
	l := NewListing(catalogue())

	if got := flatten.Strings(l.Tasks); len(got) != 4 {
		t.Errorf("tasks = %v", got)
	}
	if len(l.Organizations) != 2 || l.Organizations[1].SourceRecordID != "3" {
		t.Errorf("organizations = %+v", l.Organizations)
	}
	if len(l.Domains) != 1 || len(l.Countries) != 1 || len(l.Models) != 3 {
		t.Errorf("listing = %+v", l)
	}
}

func TestNewListing_EmptyEncodesArrays(t *testing.T) {
	b, err := json.Marshal(NewListing(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"tasks":[],"domains":[],"organizations":[],"countries":[],"models":[]}`
	if string(b) != want {
		t.Errorf("got %s", b)
	}
}

func TestNewGroups(t *testing.T) {
	g := NewGroups(catalogue(), "vis", 10)

	if len(g.Models) != 1 || g.Models[0].ID != "3" {
		t.Errorf("models = %+v", g.Models)
	}
	if got := flatten.Strings(g.Tasks); len(got) != 2 || got[0] != "Vision" || got[1] != "Visual question answering" {
		t.Errorf("tasks = %v", got)
	}
	if len(g.Organizations) != 0 {
		t.Errorf("organizations = %v", g.Organizations)
	}
}

func TestNewGroups_Limit(t *testing.T) {
	var records []*model.Model
	for i := 0; i < 15; i++ {
		records = append(records, &model.Model{ID: string(rune('a' + i)), Name: "Model"})
	}
	if g := NewGroups(records, "model", 10); len(g.Models) != 10 {
		t.Errorf("models = %d, want 10", len(g.Models))
	}
}
