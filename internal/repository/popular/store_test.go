package popular

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/translate/ptlsearch/internal/db"
)

type fakeStore struct {
	incrs     map[string]map[string]float64
	expires   []string
	incrErr   error
	expireErr error
	topErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{incrs: make(map[string]map[string]float64)}
}

func (f *fakeStore) ZIncrBy(_ context.Context, key, member string, incr float64) error {
	if f.incrErr != nil {
		return f.incrErr
	}
	if f.incrs[key] == nil {
		f.incrs[key] = make(map[string]float64)
	}
	f.incrs[key][member] += incr
	return nil
}

func (f *fakeStore) ZTop(_ context.Context, key string, n int) ([]db.ScoredMember, error) {
	if f.topErr != nil {
		return nil, f.topErr
	}
	var out []db.ScoredMember
	for m, s := range f.incrs[key] {
		out = append(out, db.ScoredMember{Member: m, Score: s})
	}
	// insertion sort by score desc, member asc
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && less(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func less(a, b db.ScoredMember) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Member < b.Member
}

func (f *fakeStore) Expire(_ context.Context, key string, _ time.Duration, _ bool) error {
	if f.expireErr != nil {
		return f.expireErr
	}
	f.expires = append(f.expires, key)
	return nil
}

func TestRecordAndTop(t *testing.T) {
	fs := newFakeStore()
	s := New(fs, "ptlsearch:", 24*time.Hour)
	ctx := context.Background()

	for _, q := range []string{"hello", "world", "hello", "hello&sfields=source", "hello"} {
		if err := s.Record(ctx, "editor", q); err != nil {
			t.Fatalf("Record(%q): %v", q, err)
		}
	}
	if err := s.Record(ctx, "terminology", "term"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	top, err := s.Top(ctx, "editor", 2)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0] != (Entry{Query: "hello", Count: 3}) {
		t.Errorf("top[0] = %+v", top[0])
	}
	if top[1].Count != 1 {
		t.Errorf("top[1] = %+v", top[1])
	}

	if _, ok := fs.incrs["ptlsearch:popular:terminology"]["term"]; !ok {
		t.Error("environments must use separate keys")
	}
	if len(fs.expires) != 6 || fs.expires[0] != "ptlsearch:popular:editor" {
		t.Errorf("expires = %v", fs.expires)
	}
}

func TestRecord_NoTTL(t *testing.T) {
	fs := newFakeStore()
	s := New(fs, "", 0)
	if err := s.Record(context.Background(), "editor", "q"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(fs.expires) != 0 {
		t.Errorf("EXPIRE must not be sent without ttl, got %v", fs.expires)
	}
}

func TestRecord_Errors(t *testing.T) {
	tests := []struct {
		name    string
		store   *fakeStore
		wantErr string
	}{
		{"incr", &fakeStore{incrs: map[string]map[string]float64{}, incrErr: errors.New("down")}, "ZINCRBY"},
		{"expire", &fakeStore{incrs: map[string]map[string]float64{}, expireErr: errors.New("down")}, "EXPIRE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.store, "p:", time.Hour).Record(context.Background(), "editor", "q")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestTop_Error(t *testing.T) {
	fs := newFakeStore()
	fs.topErr = errors.New("down")
	_, err := New(fs, "p:", time.Hour).Top(context.Background(), "editor", 10)
	if err == nil || !strings.Contains(err.Error(), "p:popular:editor") {
		t.Errorf("error = %v, want key in message", err)
	}
}
