package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	r := New(&mockDBPinger{}).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Checks["parser"] != CheckOK {
		t.Errorf("expected parser %q, got %q", CheckOK, r.Checks["parser"])
	}
}

func TestCheck_DBError(t *testing.T) {
	r := New(&mockDBPinger{err: errors.New("conn refused")}).Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
}

func TestCheck_NoDatabase(t *testing.T) {
	r := New(nil).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckDisabled {
		t.Errorf("expected database %q, got %q", CheckDisabled, r.Checks["database"])
	}
}
