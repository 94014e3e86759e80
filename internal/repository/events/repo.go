package events

import (
	"context"
	"strconv"
	"time"

	"github.com/northgate-partners/webcore/internal/domain"
)

// Stream keys consumed by the out-of-scope downstream workers (dashboard
// aggregator, mailer/spreadsheet appender).
const (
	analyticsStream = "webcore:events:analytics"
	contactStream   = "webcore:events:contact"
)

// appender is the slice of the Redis store the repo needs.
type appender interface {
	XAdd(ctx context.Context, stream string, fields map[string]string) error
}

// Repo appends domain events to Redis streams.
type Repo struct {
	store appender
}

// New creates an event repository.
func New(store appender) *Repo {
	return &Repo{store: store}
}

// AppendAnalytics records one analytics event.
func (r *Repo) AppendAnalytics(ctx context.Context, ev domain.Event) error {
	return r.store.XAdd(ctx, analyticsStream, map[string]string{
		"id":          ev.ID,
		"name":        ev.Name,
		"path":        ev.Path,
		"referrer":    ev.Referrer,
		"session_id":  ev.SessionID,
		"occurred_at": strconv.FormatInt(ev.OccurredAt.UnixMilli(), 10),
	})
}

// AppendContactNotification enqueues a contact submission for the
// external mailer. The submission row is already persisted; this is the
// delivery handoff only.
func (r *Repo) AppendContactNotification(ctx context.Context, sub domain.ContactSubmission) error {
	return r.store.XAdd(ctx, contactStream, map[string]string{
		"id":          sub.ID,
		"name":        sub.Name,
		"email":       sub.Email,
		"phone":       sub.Phone,
		"message":     sub.Message,
		"received_at": sub.ReceivedAt.Format(time.RFC3339),
	})
}
