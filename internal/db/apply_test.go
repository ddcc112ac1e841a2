package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

func TestApply(t *testing.T) {
	models := []*model.Model{
		{ID: "1", Name: "GPT-4o", Task: []string{"Chat"}},
		{ID: "2", Name: "Whisper", Task: []string{"Speech recognition"}},
		{ID: "3", Name: "Claude", Task: []string{"Chat"}},
	}

	tests := []struct {
		name string
		q    *Query
		want []string
	}{
		{"nil predicate", &Query{}, []string{"1", "2", "3"}},
		{"facet", &Query{Predicate: predicate.FacetConjunction{Clauses: []predicate.Clause{
			{Field: model.FieldTask, Values: []string{"chat"}},
		}}}, []string{"1", "3"}},
		{"limit", &Query{Predicate: predicate.FacetConjunction{}, Limit: 2}, []string{"1", "2"}},
		{"text", &Query{Predicate: predicate.Text("whis", model.FieldModel)}, []string{"2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(models, tt.q)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d models, want %d", len(got), len(tt.want))
			}
			for i, m := range got {
				if m.ID != tt.want[i] {
					t.Errorf("got[%d] = %s, want %s", i, m.ID, tt.want[i])
				}
			}
		})
	}
}

type flakyPinger struct {
	failures int
	calls    int
}

func (p *flakyPinger) Ping(context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("not yet")
	}
	return nil
}

func TestWaitForReady(t *testing.T) {
	p := &flakyPinger{failures: 2}
	if err := WaitForReady(context.Background(), p, time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.calls != 3 {
		t.Errorf("calls = %d, want 3", p.calls)
	}
}

func TestWaitForReady_Timeout(t *testing.T) {
	p := &flakyPinger{failures: 1 << 30}
	err := WaitForReady(context.Background(), p, 150*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}

func TestError_Unwrap(t *testing.T) {
	err := &Error{Op: OpFind, Err: ErrKeyNotFound}
	if !errors.Is(err, ErrKeyNotFound) {
		t.Error("expected errors.Is to see through db.Error")
	}
	if err.Error() != "FIND: db: key not found" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(Unsupported(nil), ErrUnsupportedPredicate) {
		t.Error("Unsupported must wrap ErrUnsupportedPredicate")
	}
}
