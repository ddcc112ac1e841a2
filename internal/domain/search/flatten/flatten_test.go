package flatten

import (
	"reflect"
	"strings"
	"testing"

	"github.com/waqarniyazi/aiportalx/internal/domain/model"
)

func TestFlatten_DedupAndOrder(t *testing.T) {
	records := []*model.Model{
		{ID: "1", Task: []string{"Chat", "Chat", "Vision"}},
		{ID: "2", Task: []string{"Vision", "Audio"}},
	}

	got := Flatten(records, model.FieldTask)

	want := []Value{
		{SourceRecordID: "1", Value: "Chat"},
		{SourceRecordID: "1", Value: "Vision"},
		{SourceRecordID: "2", Value: "Audio"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestFlatten_ExactEquality(t *testing.T) {
	records := []*model.Model{
		{ID: "a", Domain: []string{"Language"}},
		{ID: "b", Domain: []string{"language", "Language "}},
	}
	got := Strings(Flatten(records, model.FieldDomain))
	want := []string{"Language", "language", "Language "}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFlatten_EmptyAndMissing(t *testing.T) {
	if got := Flatten([]*model.Model{}, model.FieldTask); len(got) != 0 {
		t.Errorf("empty input: %v", got)
	}
	records := []*model.Model{{ID: "1"}, {ID: "2", Country: []string{"France"}}}
	got := Flatten(records, model.FieldCountry)
	if len(got) != 1 || got[0].SourceRecordID != "2" {
		t.Errorf("got %+v", got)
	}
}

func TestFlatten_ScalarField(t *testing.T) {
	records := []*model.Model{
		{ID: "1", Name: "GPT-4o"},
		{ID: "2", Name: "GPT-4o"},
		{ID: "3", Name: "Whisper"},
	}
	got := Strings(Flatten(records, model.FieldModel))
	if !reflect.DeepEqual(got, []string{"GPT-4o", "Whisper"}) {
		t.Errorf("got %v", got)
	}
}

func TestFlatten_Deterministic(t *testing.T) {
	records := []*model.Model{
		{ID: "1", Task: []string{"b", "a", "c"}},
		{ID: "2", Task: []string{"c", "d"}},
	}
	first := Flatten(records, model.FieldTask)
	for i := 0; i < 10; i++ {
		if !reflect.DeepEqual(first, Flatten(records, model.FieldTask)) {
			t.Fatal("output changed between calls")
		}
	}
}

func TestSelect(t *testing.T) {
	values := []Value{{"1", "Chat"}, {"1", "Vision"}, {"2", "Video chat"}}
	got := Select(values, func(s string) bool { return strings.Contains(strings.ToLower(s), "chat") })
	want := []Value{{"1", "Chat"}, {"2", "Video chat"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v", got)
	}
}
