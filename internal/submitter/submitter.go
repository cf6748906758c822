// Package submitter runs one waitlist submission against a form: it validates
// the email, posts it, and reflects the outcome in the form's regions or
// through its notifier.
package submitter

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/valpere/waitlist/internal"
	"github.com/valpere/waitlist/internal/form"
	"github.com/valpere/waitlist/internal/messages"
	"github.com/valpere/waitlist/internal/validator"
	"github.com/valpere/waitlist/internal/waitlist"
)

type Outcome string

const (
	OutcomeSkipped     Outcome = "skipped"
	OutcomeInvalid     Outcome = "invalid"
	OutcomeJoined      Outcome = "joined"
	OutcomeRejected    Outcome = "rejected"
	OutcomeUnreachable Outcome = "unreachable"
)

// Joiner posts a submission. *waitlist.Client implements it.
type Joiner interface {
	Join(ctx context.Context, baseURL string, req waitlist.SubmissionRequest) (*waitlist.JoinResponse, error)
}

// Recorder keeps a log of attempts. *store.Store implements it.
type Recorder interface {
	SaveAttempt(ctx context.Context, a internal.Attempt) error
}

type Option func(*Submitter)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Submitter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMessages(p *messages.Printer) Option {
	return func(s *Submitter) {
		if p != nil {
			s.msgs = p
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Submitter) {
		s.recorder = r
	}
}

// WithSingleFlight makes concurrent submissions of the same email through g
// share one request. Submitters that should de-duplicate against each other
// must share g. Without this option every Submit sends its own request.
func WithSingleFlight(g *singleflight.Group) Option {
	return func(s *Submitter) {
		s.flight = g
	}
}

type Submitter struct {
	client   Joiner
	baseURL  string
	form     form.Form
	logger   *zap.Logger
	msgs     *messages.Printer
	recorder Recorder
	flight   *singleflight.Group
}

// New returns a Submitter posting to baseURL, which the caller has already
// resolved.
func New(client Joiner, baseURL string, f form.Form, opts ...Option) *Submitter {
	s := &Submitter{
		client:  client,
		baseURL: baseURL,
		form:    f,
		logger:  zap.NewNop(),
		msgs:    messages.New("tr"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit makes one attempt. It never returns an error: validation, server and
// transport failures are shown through the notifier and reported in the
// Outcome. There is no retry.
func (s *Submitter) Submit(ctx context.Context) Outcome {
	if !s.form.Complete() {
		return OutcomeSkipped
	}

	email := s.form.Email.Value()

	attempt := internal.Attempt{
		ID:        uuid.New().String(),
		Email:     email,
		Source:    waitlist.SourceLandingPage,
		BaseURL:   s.baseURL,
		Timestamp: time.Now(),
	}

	if err := validator.Validate(email); err != nil {
		s.alert(s.msgs.Sprintf(messages.InvalidEmail))
		attempt.Outcome = string(OutcomeInvalid)
		s.record(ctx, attempt)
		return OutcomeInvalid
	}

	resp, err := s.join(ctx, email)
	attempt.Latency = time.Since(attempt.Timestamp)

	outcome := s.apply(resp, err, &attempt)
	attempt.Outcome = string(outcome)
	s.record(ctx, attempt)

	return outcome
}

func (s *Submitter) join(ctx context.Context, email string) (*waitlist.JoinResponse, error) {
	req := waitlist.NewSubmissionRequest(email)

	if s.flight == nil {
		return s.client.Join(ctx, s.baseURL, req)
	}

	v, err, shared := s.flight.Do(s.baseURL+"\x00"+email, func() (interface{}, error) {
		return s.client.Join(ctx, s.baseURL, req)
	})
	if shared {
		s.logger.Debug("Shared in-flight waitlist request", zap.String("email", email))
	}
	if err != nil {
		return nil, err
	}
	return v.(*waitlist.JoinResponse), nil
}

func (s *Submitter) apply(resp *waitlist.JoinResponse, err error, attempt *internal.Attempt) Outcome {
	if err == nil {
		if resp == nil {
			resp = &waitlist.JoinResponse{}
		}
		s.form.Form.Hide()
		s.form.Message.Show()
		s.form.Message.SetText(s.msgs.Sprintf(messages.Joined))

		attempt.StatusCode = resp.StatusCode
		attempt.Detail = resp.Message
		s.logger.Debug("Joined waitlist",
			zap.String("email", attempt.Email),
			zap.Int("status", resp.StatusCode),
			zap.String("id", resp.ID),
			zap.String("message", resp.Message))
		return OutcomeJoined
	}

	var appErr *waitlist.ApplicationError
	if errors.As(err, &appErr) {
		attempt.StatusCode = appErr.StatusCode
		attempt.Detail = appErr.Detail

		msg := appErr.Detail
		if msg == "" {
			msg = s.msgs.Sprintf(messages.GenericError)
		}
		s.alert(msg)

		s.logger.Debug("Waitlist rejected submission",
			zap.String("email", attempt.Email),
			zap.Int("status", appErr.StatusCode),
			zap.String("detail", appErr.Detail))
		return OutcomeRejected
	}

	attempt.Detail = err.Error()
	s.logger.Error("Waitlist error", zap.Error(err))
	s.alert(s.msgs.Sprintf(messages.Unreachable))
	return OutcomeUnreachable
}

func (s *Submitter) alert(msg string) {
	if s.form.Notifier != nil {
		s.form.Notifier.Alert(msg)
	}
}

func (s *Submitter) record(ctx context.Context, attempt internal.Attempt) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.SaveAttempt(ctx, attempt); err != nil {
		s.logger.Warn("Failed to record attempt", zap.String("id", attempt.ID), zap.Error(err))
	}
}
