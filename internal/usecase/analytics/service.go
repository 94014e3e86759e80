package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/northgate-partners/webcore/internal/domain"
	"github.com/northgate-partners/webcore/internal/logger"
)

// Recorder appends analytics events for downstream consumers.
type Recorder interface {
	AppendAnalytics(ctx context.Context, ev domain.Event) error
}

// Input is one raw event from the browser.
type Input struct {
	Name      string
	Path      string
	Referrer  string
	SessionID string
}

// Service captures analytics events. Fire-and-forget: a store failure is
// logged and swallowed so the page never sees an analytics error.
type Service struct {
	repo Recorder
}

// New creates an analytics service. repo can be nil when no stream store
// is configured; events are then validated and dropped.
func New(repo Recorder) *Service {
	return &Service{repo: repo}
}

// Record validates, stamps, and appends one event.
func (s *Service) Record(ctx context.Context, in Input) (domain.Event, error) {
	name := strings.TrimSpace(in.Name)
	path := strings.TrimSpace(in.Path)
	if name == "" {
		return domain.Event{}, fmt.Errorf("%w: event name is required", domain.ErrValidation)
	}
	if path == "" {
		return domain.Event{}, fmt.Errorf("%w: event path is required", domain.ErrValidation)
	}

	ev := domain.Event{
		ID:         uuid.NewString(),
		Name:       name,
		Path:       path,
		Referrer:   strings.TrimSpace(in.Referrer),
		SessionID:  strings.TrimSpace(in.SessionID),
		OccurredAt: time.Now().UTC(),
	}

	if s.repo == nil {
		return ev, nil
	}

	if err := s.repo.AppendAnalytics(ctx, ev); err != nil {
		logger.FromContext(ctx).Warn("analytics event dropped", zap.Error(err), zap.String("event", ev.Name))
	}
	return ev, nil
}
