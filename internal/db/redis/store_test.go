package redis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/waqarniyazi/aiportalx/internal/db"
	"github.com/waqarniyazi/aiportalx/internal/domain/model"
	"github.com/waqarniyazi/aiportalx/internal/domain/search/predicate"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestIsRedisErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		sub  string
		want bool
	}{
		{"case-insensitive", mock.Result(mock.RedisError("Index Already Exists")).Error(), "index already exists", true},
		{"other server error", mock.Result(mock.RedisError("ERR syntax")).Error(), "unknown index name", false},
		{"not a server error", context.DeadlineExceeded, "deadline", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRedisErr(tt.err, tt.sub); got != tt.want {
				t.Errorf("isRedisErr(%v, %q) = %v, want %v", tt.err, tt.sub, got, tt.want)
			}
		})
	}
}

// --- kv.go tests ---

func TestGet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "k")).
		Return(mock.Result(mock.RedisString("v")))

	s := NewStoreForTest(c)
	got, err := s.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("got %q", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "k")).
		Return(mock.Result(mock.RedisNil()))

	s := NewStoreForTest(c)
	if _, err := s.Get(context.Background(), "k"); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestSetWithTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("SET", "k", "v", "EX", "60")).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.SetWithTTL(context.Background(), "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDel_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "k")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Del(context.Background(), "k"); !isDBError(err) {
		t.Errorf("expected db.Error, got %v", err)
	}
}

// --- index.go tests ---

func TestCreateArgs(t *testing.T) {
	joined := strings.Join(createArgs(DefaultIndexName, DefaultKeyPrefix), " ")
	for _, want := range []string{
		"aiportalx:models:idx ON JSON PREFIX 1 aiportalx:model: SCHEMA",
		"$.Task[*] AS task TAG SEPARATOR |",
		`$["Country (from Organization)"][*] AS country TAG SEPARATOR |`,
		"$.__name_key AS name_key TAG SEPARATOR | CASESENSITIVE",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args %q missing %q", joined, want)
		}
	}
	if strings.Contains(joined, "$.Task[*] AS task TAG SEPARATOR | CASESENSITIVE") {
		t.Error("facet attributes must be case-insensitive")
	}
}

func TestEnsureIndex_Creates(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	gomock.InOrder(
		c.EXPECT().
			Do(gomock.Any(), mock.Match("FT.INFO", DefaultIndexName)).
			Return(mock.Result(mock.RedisError("Unknown index name"))),
		c.EXPECT().
			Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
				return cmd[0] == "FT.CREATE" && cmd[1] == DefaultIndexName
			})).
			Return(mock.Result(mock.RedisString("OK"))),
	)

	s := NewStoreForTest(c)
	if err := s.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnsureIndex_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", DefaultIndexName)).
		Return(mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{})))

	s := NewStoreForTest(c)
	if err := s.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnsureIndex_CreatedConcurrently(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", DefaultIndexName)).
		Return(mock.Result(mock.RedisError("Unknown index name")))
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "FT.CREATE" })).
		Return(mock.Result(mock.RedisError("Index already exists")))

	s := NewStoreForTest(c)
	if err := s.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnsureIndex_CreateError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", DefaultIndexName)).
		Return(mock.Result(mock.RedisError("Unknown index name")))
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "FT.CREATE" })).
		Return(mock.Result(mock.RedisError("ERR unknown argument")))

	s := NewStoreForTest(c)
	if err := s.EnsureIndex(context.Background()); !isDBError(err) {
		t.Errorf("expected db.Error, got %v", err)
	}
}

// --- query.go tests ---

func TestTranslate(t *testing.T) {
	tests := []struct {
		name     string
		p        predicate.Predicate
		want     string
		postEval bool
	}{
		{"match all", predicate.FacetConjunction{}, "*", false},
		{
			"facets",
			predicate.FacetConjunction{Clauses: []predicate.Clause{
				{Field: model.FieldCountry, Values: []string{"United States of America"}},
				{Field: model.FieldTask, Values: []string{"Chat", "Image generation"}},
			}},
			`@country:{United\ States\ of\ America} @task:{Chat | Image\ generation}`,
			false,
		},
		{
			"identity",
			predicate.IdentityMatch{
				PrimaryField: model.FieldOrganization, PrimarySlug: "Meta AI",
				SecondaryField: model.FieldModel, SecondarySlug: "llama-3.1",
			},
			`@org_key:{meta\-ai} @name_key:{llama\-3\.1}`,
			false,
		},
		{"text", predicate.Text("llama", model.FieldModel), "*", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := translate(tt.p)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.query != tt.want || got.postEval != tt.postEval {
				t.Errorf("translate = %+v, want %q (post %v)", got, tt.want, tt.postEval)
			}
		})
	}
}

func TestTranslate_UnindexedField(t *testing.T) {
	p := predicate.FacetConjunction{Clauses: []predicate.Clause{{Field: model.FieldAuthors, Values: []string{"x"}}}}
	if _, err := translate(p); !errors.Is(err, db.ErrUnsupportedPredicate) {
		t.Errorf("expected ErrUnsupportedPredicate, got %v", err)
	}
}

func TestBuildTagFilter_Escaping(t *testing.T) {
	got := buildTagFilter("name", "C++ (beta)", "a|b")
	want := `@name:{C\+\+\ \(beta\) | a\|b}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// --- models.go tests ---

func searchReply(docs ...string) rueidis.RedisResult {
	msgs := []rueidis.RedisMessage{mock.RedisInt64(int64(len(docs)))}
	for i, d := range docs {
		msgs = append(msgs,
			mock.RedisString(DefaultKeyPrefix+string(rune('a'+i))),
			mock.RedisArray(mock.RedisString("$"), mock.RedisString(d)),
		)
	}
	return mock.Result(mock.RedisArray(msgs...))
}

func TestFind_Facets(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match(
			"FT.SEARCH", DefaultIndexName, "@task:{Chat}",
			"RETURN", "1", "$", "LIMIT", "0", "10000", "DIALECT", "2",
		)).
		Return(searchReply(
			`{"_id":"1","Model":"GPT-4o","Task":["Chat"],"__org_keys":["openai"],"__name_key":"gpt-4o"}`,
		))

	s := NewStoreForTest(c)
	p := predicate.FacetConjunction{Clauses: []predicate.Clause{{Field: model.FieldTask, Values: []string{"Chat"}}}}
	got, err := s.Find(context.Background(), &db.Query{Predicate: p})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" || got[0].Name != "GPT-4o" {
		t.Errorf("got %+v", got)
	}
}

func TestFind_TextSearchEvaluatedAfterLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH" && cmd[2] == "*"
		})).
		Return(searchReply(
			`{"_id":"1","Model":"GPT-4o"}`,
			`{"_id":"2","Model":"Meta Llama 3"}`,
			`{"_id":"3","Model":"Code Llama"}`,
		))

	s := NewStoreForTest(c)
	got, err := s.Find(context.Background(), &db.Query{Predicate: predicate.Text("LLAMA", model.FieldModel), Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("got %+v", got)
	}
}

func TestFind_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if _, err := s.Find(context.Background(), &db.Query{}); !isDBError(err) {
		t.Errorf("expected db.Error, got %v", err)
	}
}

func TestFindOne_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool { return cmd[0] == "FT.SEARCH" })).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s := NewStoreForTest(c)
	p := predicate.IdentityMatch{PrimaryField: model.FieldOrganization, PrimarySlug: "x", SecondaryField: model.FieldModel, SecondarySlug: "y"}
	if _, err := s.FindOne(context.Background(), p); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestUpsertMany(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisString("OK")),
			mock.Result(mock.RedisString("OK")),
		})

	s := NewStoreForTest(c)
	err := s.UpsertMany(context.Background(), []*model.Model{
		{ID: "1", Name: "GPT-4o", Organization: []string{"OpenAI"}},
		{ID: "2", Name: "Whisper", Organization: []string{"OpenAI"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpsertMany_Empty(t *testing.T) {
	s := NewStoreForTest(nil) // client not called
	if err := s.UpsertMany(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewDocument_SlugKeys(t *testing.T) {
	d := newDocument(&model.Model{ID: "1", Name: "Meta Llama 3", Organization: []string{"Meta AI", "Meta"}})
	if d.NameKey != "meta-llama-3" {
		t.Errorf("NameKey = %q", d.NameKey)
	}
	if len(d.OrgKeys) != 2 || d.OrgKeys[0] != "meta-ai" || d.OrgKeys[1] != "meta" {
		t.Errorf("OrgKeys = %v", d.OrgKeys)
	}
}

func TestCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.SEARCH", DefaultIndexName, "*", "LIMIT", "0", "0")).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(42))))

	s := NewStoreForTest(c)
	n, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("Count = %d, want 42", n)
	}
}

// --- helpers ---

// isDBError is a test helper for checking wrapped db.Error.
func isDBError(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr)
}
