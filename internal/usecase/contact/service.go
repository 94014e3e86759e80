package contact

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"go.uber.org/zap"

	"github.com/northgate-partners/webcore/internal/domain"
	"github.com/northgate-partners/webcore/internal/logger"
)

// Store persists contact submissions.
type Store interface {
	Insert(ctx context.Context, sub domain.ContactSubmission) error
}

// Notifier hands a persisted submission to the external mailer.
type Notifier interface {
	AppendContactNotification(ctx context.Context, sub domain.ContactSubmission) error
}

// Input is one raw contact-form submission.
type Input struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Service validates and persists contact submissions. Email delivery is
// external; this service stores the row and enqueues a notification.
type Service struct {
	store         Store
	notifier      Notifier
	defaultRegion string
}

// New creates a contact service. defaultRegion is the ISO country code
// assumed for phone numbers without an international prefix.
func New(store Store, notifier Notifier, defaultRegion string) *Service {
	if defaultRegion == "" {
		defaultRegion = "AE"
	}
	return &Service{store: store, notifier: notifier, defaultRegion: defaultRegion}
}

// Submit validates the input, normalizes the phone number to E.164,
// persists the submission, and enqueues the mailer notification. A
// notification enqueue failure is logged but does not lose the row.
func (s *Service) Submit(ctx context.Context, in Input) (domain.ContactSubmission, error) {
	sub := domain.ContactSubmission{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
	}

	if sub.Name == "" {
		return domain.ContactSubmission{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if sub.Email == "" {
		return domain.ContactSubmission{}, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(sub.Email); err != nil {
		return domain.ContactSubmission{}, fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	if sub.Message == "" {
		return domain.ContactSubmission{}, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}

	if phone := strings.TrimSpace(in.Phone); phone != "" {
		normalized, err := s.normalizePhone(phone)
		if err != nil {
			return domain.ContactSubmission{}, err
		}
		sub.Phone = normalized
	}

	sub.ID = uuid.NewString()
	sub.ReceivedAt = time.Now().UTC()

	if err := s.store.Insert(ctx, sub); err != nil {
		return domain.ContactSubmission{}, fmt.Errorf("store submission: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.AppendContactNotification(ctx, sub); err != nil {
			logger.FromContext(ctx).Warn("contact notification enqueue failed",
				zap.Error(err), zap.String("submission_id", sub.ID))
		}
	}
	return sub, nil
}

// normalizePhone parses and validates a phone number, returning E.164.
func (s *Service) normalizePhone(raw string) (string, error) {
	num, err := phonenumbers.Parse(raw, s.defaultRegion)
	if err != nil {
		return "", fmt.Errorf("%w: invalid phone number", domain.ErrValidation)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: invalid phone number", domain.ErrValidation)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
