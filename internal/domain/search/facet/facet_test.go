package facet

import (
	"encoding/json"
	"slices"
	"testing"
)

func TestValues_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Values
	}{
		{"string", `"Chat"`, Values{"Chat"}},
		{"array", `["Chat","Vision"]`, Values{"Chat", "Vision"}},
		{"null", `null`, nil},
		{"number", `3`, Values{"3"}},
		{"mixed array", `["Chat", 1, null, {"x":1}]`, Values{"Chat", "1"}},
		{"object", `{"a":"b"}`, nil},
		{"bool", `true`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Values
			if err := json.Unmarshal([]byte(tt.in), &v); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(v, tt.want) {
				t.Errorf("got %v, want %v", v, tt.want)
			}
		})
	}
}

func TestRaw_UnmarshalJSON(t *testing.T) {
	var raw Raw
	in := `{"Task":"Chat","Domain":["Language"," "],"Country":null}`
	if err := json.Unmarshal([]byte(in), &raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bag := Normalize(raw)
	if !slices.Equal(bag.Keys(), []string{"Domain", "Task"}) {
		t.Errorf("keys = %v", bag.Keys())
	}
}

func TestNormalize(t *testing.T) {
	raw := Raw{
		"Task":         {"  Chat ", "", "Vision"},
		"Domain":       {"   ", ""},
		"Organization": nil,
		"Country":      {"United States of America"},
		"  ":           {"ignored"},
	}

	bag := Normalize(raw)

	if got := bag.Keys(); !slices.Equal(got, []string{"Country", "Task"}) {
		t.Fatalf("keys = %v", got)
	}
	if got := bag.Values("Task"); !slices.Equal(got, []string{"Chat", "Vision"}) {
		t.Errorf("Task = %v", got)
	}
	if bag.Has("Domain") {
		t.Error("all-whitespace facet must be omitted")
	}
	if bag.Has("Organization") {
		t.Error("missing facet must be omitted")
	}
	if bag.Len() != 2 {
		t.Errorf("Len = %d", bag.Len())
	}
}

func TestNormalize_EmptyInputs(t *testing.T) {
	for _, raw := range []Raw{nil, {}, {"Task": {}}, {"Task": {" ", "\t"}}} {
		bag := Normalize(raw)
		if !bag.IsEmpty() {
			t.Errorf("Normalize(%v) = %v, want empty", raw, bag.Keys())
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	raws := []Raw{
		{"Task": {" Chat", "Vision "}, "Domain": {"Language"}},
		{"Organization": {"OpenAI", "  ", "Google"}},
		{},
	}
	for _, raw := range raws {
		once := Normalize(raw)
		twice := Normalize(once.Raw())
		if !once.Equal(twice) {
			t.Errorf("not idempotent for %v", raw)
		}
	}
}

func TestNormalizeWith_SplitComma(t *testing.T) {
	raw := Raw{"Task": {"Chat, Vision", ",", "Audio"}}

	split := NormalizeWith(raw, NormalizeOptions{SplitComma: true})
	if got := split.Values("Task"); !slices.Equal(got, []string{"Chat", "Vision", "Audio"}) {
		t.Errorf("split Task = %v", got)
	}

	plain := Normalize(raw)
	if got := plain.Values("Task"); !slices.Equal(got, []string{"Chat, Vision", ",", "Audio"}) {
		t.Errorf("plain Task = %v", got)
	}
}

func TestBag_ValuesAreCopies(t *testing.T) {
	bag := Normalize(Raw{"Task": {"Chat"}})
	vals := bag.Values("Task")
	vals[0] = "mutated"
	if bag.Values("Task")[0] != "Chat" {
		t.Error("Values must return a copy")
	}
}

func TestClean(t *testing.T) {
	if got := Clean([]string{" a ", "", "b"}); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Clean = %v", got)
	}
	if got := Clean([]string{" "}); got != nil {
		t.Errorf("Clean = %v, want nil", got)
	}
}
