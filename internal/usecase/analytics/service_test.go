package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/northgate-partners/webcore/internal/domain"
)

type mockRecorder struct {
	err  error
	last domain.Event
}

func (m *mockRecorder) AppendAnalytics(_ context.Context, ev domain.Event) error {
	m.last = ev
	return m.err
}

func TestRecord(t *testing.T) {
	repo := &mockRecorder{}
	svc := New(repo)

	ev, err := svc.Record(context.Background(), Input{
		Name:      "page_view",
		Path:      "/services/strategy",
		Referrer:  "https://google.com",
		SessionID: "s-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uuid.Parse(ev.ID); err != nil {
		t.Errorf("expected uuid id, got %q", ev.ID)
	}
	if ev.OccurredAt.IsZero() {
		t.Error("missing timestamp")
	}
	if repo.last.Name != "page_view" || repo.last.Path != "/services/strategy" {
		t.Errorf("event not appended: %+v", repo.last)
	}
}

func TestRecord_Validation(t *testing.T) {
	svc := New(&mockRecorder{})

	tests := []struct {
		name string
		in   Input
	}{
		{name: "missing name", in: Input{Path: "/x"}},
		{name: "missing path", in: Input{Name: "page_view"}},
		{name: "whitespace name", in: Input{Name: "  ", Path: "/x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), tt.in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRecord_StoreFailureSwallowed(t *testing.T) {
	repo := &mockRecorder{err: errors.New("redis down")}
	svc := New(repo)

	if _, err := svc.Record(context.Background(), Input{Name: "page_view", Path: "/"}); err != nil {
		t.Fatalf("store failure must be fire-and-forget, got %v", err)
	}
}
