package search

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/translate/ptlsearch/internal/domain"
	"github.com/translate/ptlsearch/internal/domain/search/environment"
	"github.com/translate/ptlsearch/internal/domain/search/query"
	logpkg "github.com/translate/ptlsearch/internal/logger"
	"github.com/translate/ptlsearch/internal/metrics"
	"github.com/translate/ptlsearch/internal/repository/popular"
)

// --- Mocks ---

type recorded struct {
	env, encoded string
}

type mockPopular struct {
	records   []recorded
	recordErr error
	top       []popular.Entry
	topErr    error
	topEnv    string
	topLimit  int
}

func (m *mockPopular) Record(_ context.Context, env, encoded string) error {
	m.records = append(m.records, recorded{env, encoded})
	return m.recordErr
}

func (m *mockPopular) Top(_ context.Context, env string, limit int) ([]popular.Entry, error) {
	m.topEnv, m.topLimit = env, limit
	return m.top, m.topErr
}

func observedContext(level zapcore.Level) (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return logpkg.ContextWithLogger(context.Background(), zap.New(core)), logs
}

// --- Tests ---

func TestParse_DirectivesInEnvironment(t *testing.T) {
	svc := New(environment.DefaultTable(), nil)

	res := svc.Parse(context.Background(), environment.Editor, "in:source hello world", nil)
	if res.Environment != environment.Editor {
		t.Errorf("Environment = %q", res.Environment)
	}
	if res.Query.Encode() != "hello%20world&sfields=source" {
		t.Errorf("Encode() = %q", res.Query.Encode())
	}
}

func TestParse_UnknownEnvironmentFallsBack(t *testing.T) {
	svc := New(environment.DefaultTable(), nil)

	res := svc.Parse(context.Background(), "nope", "in:locations x", nil)
	if res.Environment != environment.Editor {
		t.Errorf("Environment = %q, want %q", res.Environment, environment.Editor)
	}
	if !reflect.DeepEqual(res.Query.Fields(), []string{"locations"}) {
		t.Errorf("Fields() = %v", res.Query.Fields())
	}
}

func TestParse_TerminologyRejectsLocations(t *testing.T) {
	svc := New(environment.DefaultTable(), nil)
	ctx, logs := observedContext(zapcore.DebugLevel)

	before := testutil.ToFloat64(metrics.QueryDirectivesTotal.WithLabelValues(environment.Terminology, "false"))
	res := svc.Parse(ctx, environment.Terminology, "in:locations in:notes x", nil)

	if !reflect.DeepEqual(res.Query.Fields(), []string{"notes"}) {
		t.Errorf("Fields() = %v, want [notes]", res.Query.Fields())
	}
	after := testutil.ToFloat64(metrics.QueryDirectivesTotal.WithLabelValues(environment.Terminology, "false"))
	if after-before != 1 {
		t.Errorf("invalid directive counter advanced by %f, want 1", after-before)
	}
	if logs.FilterMessage("Dropped unknown search fields").Len() != 1 {
		t.Errorf("expected one debug line for dropped fields, got %v", logs.All())
	}
}

func TestParse_CheckedScopeCounted(t *testing.T) {
	svc := New(environment.DefaultTable(), nil)

	before := testutil.ToFloat64(metrics.QueryParseTotal.WithLabelValues(environment.Editor, string(query.ScopeChecked)))
	res := svc.Parse(context.Background(), environment.Editor, "plugin: text", []string{"target"})
	after := testutil.ToFloat64(metrics.QueryParseTotal.WithLabelValues(environment.Editor, string(query.ScopeChecked)))

	if res.Query.Encode() != "plugin%3A%20text&sfields=target" {
		t.Errorf("Encode() = %q", res.Query.Encode())
	}
	if after-before != 1 {
		t.Errorf("parse counter advanced by %f, want 1", after-before)
	}
}

func TestParse_RecordsPopular(t *testing.T) {
	pop := &mockPopular{}
	svc := New(environment.DefaultTable(), pop)

	svc.Parse(context.Background(), environment.Terminology, "in:target file", nil)
	svc.Parse(context.Background(), environment.Editor, "in:source", nil)
	svc.Parse(context.Background(), environment.Editor, "", []string{"source"})

	want := []recorded{{environment.Terminology, "file&sfields=target"}}
	if !reflect.DeepEqual(pop.records, want) {
		t.Errorf("records = %+v, want %+v (empty text is not recorded)", pop.records, want)
	}
}

func TestParse_RecordErrorIsSwallowed(t *testing.T) {
	pop := &mockPopular{recordErr: errors.New("redis down")}
	svc := New(environment.DefaultTable(), pop)
	ctx, logs := observedContext(zapcore.WarnLevel)

	before := testutil.ToFloat64(metrics.PopularRecordErrorsTotal)
	res := svc.Parse(ctx, environment.Editor, "hello", nil)

	if res.Query.Encode() != "hello" {
		t.Errorf("Encode() = %q", res.Query.Encode())
	}
	if testutil.ToFloat64(metrics.PopularRecordErrorsTotal)-before != 1 {
		t.Error("record error counter not incremented")
	}
	if logs.FilterMessage("Failed to record popular search").Len() != 1 {
		t.Errorf("expected warning, got %v", logs.All())
	}
}

func TestPopular_Disabled(t *testing.T) {
	svc := New(environment.DefaultTable(), nil)
	_, _, err := svc.Popular(context.Background(), environment.Editor, 5)
	if !errors.Is(err, domain.ErrPopularDisabled) {
		t.Errorf("expected ErrPopularDisabled, got %v", err)
	}
}

func TestPopular_LimitClamping(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{"zero", 0, DefaultPopularLimit},
		{"negative", -3, DefaultPopularLimit},
		{"normal", 25, 25},
		{"over max", 1000, MaxPopularLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pop := &mockPopular{}
			svc := New(environment.DefaultTable(), pop)
			if _, _, err := svc.Popular(context.Background(), environment.Editor, tt.limit); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pop.topLimit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", pop.topLimit, tt.wantLimit)
			}
		})
	}
}

func TestPopular_ResolvesEnvironment(t *testing.T) {
	pop := &mockPopular{top: []popular.Entry{{Query: "hello", Count: 3}}}
	svc := New(environment.DefaultTable(), pop)

	env, entries, err := svc.Popular(context.Background(), "unknown", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env != environment.Editor || pop.topEnv != environment.Editor {
		t.Errorf("env = %q, store saw %q", env, pop.topEnv)
	}
	if len(entries) != 1 || entries[0].Count != 3 {
		t.Errorf("entries = %+v", entries)
	}
}

func TestPopular_StoreError(t *testing.T) {
	pop := &mockPopular{topErr: errors.New("down")}
	svc := New(environment.DefaultTable(), pop)
	if _, _, err := svc.Popular(context.Background(), environment.Editor, 5); err == nil {
		t.Fatal("expected error")
	}
}

func TestEnvironments(t *testing.T) {
	svc := New(environment.DefaultTable(), nil)
	def, infos := svc.Environments()

	if def != environment.Editor {
		t.Errorf("default = %q", def)
	}
	want := []EnvironmentInfo{
		{Name: "editor", Fields: []string{"source", "target", "notes", "locations"}},
		{Name: "terminology", Fields: []string{"source", "target", "notes"}},
	}
	if !reflect.DeepEqual(infos, want) {
		t.Errorf("Environments() = %+v, want %+v", infos, want)
	}
}
