package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/srbeng/srb-site/internal/contact/domain"
	"github.com/srbeng/srb-site/internal/logging"
	"github.com/srbeng/srb-site/internal/metrics"
	"github.com/srbeng/srb-site/internal/storage"
)

// Mailer delivers a contact message to the company inbox.
type Mailer interface {
	Send(ctx context.Context, m domain.Message) error
}

type Options struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Now     func() time.Time
}

type Service struct {
	messages storage.ContactMessages
	mailer   Mailer
	log      *zap.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// New builds the contact service. A nil mailer means email delivery is not
// configured and every submission ends in ErrEmailNotConfigured after saving.
func New(messages storage.ContactMessages, mailer Mailer, opts Options) *Service {
	s := &Service{
		messages: messages,
		mailer:   mailer,
		log:      logging.OrNop(opts.Logger).Named("contact"),
		metrics:  opts.Metrics,
		now:      opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Submit validates m, stores it, then emails it.
func (s *Service) Submit(ctx context.Context, m domain.Message) (err error) {
	defer func() { s.metrics.RecordContact(err) }()

	m.Normalize()
	if err := m.Validate(); err != nil {
		return err
	}
	m.CreatedAt = s.now().UTC()

	if err := s.messages.InsertContact(ctx, m); err != nil {
		s.log.Error("save contact message failed", zap.Error(err))
		reason := err.Error()
		var re *storage.RemoteError
		if errors.As(err, &re) {
			reason = re.Message()
		}
		return &domain.SaveError{Reason: reason, Err: err}
	}

	if s.mailer == nil {
		s.log.Warn("contact message saved but email delivery is not configured")
		return domain.ErrEmailNotConfigured
	}
	if err := s.mailer.Send(ctx, m); err != nil {
		s.log.Error("send contact email failed", zap.Error(err))
		return &domain.SendError{Err: err}
	}

	s.log.Info("contact message delivered", zap.String("service", m.InterestedService))
	return nil
}
