// Package batch submits many addresses, each through its own in-memory form.
package batch

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/valpere/waitlist/internal/form"
	"github.com/valpere/waitlist/internal/submitter"
)

// Submitter is the part of *submitter.Submitter the runner needs.
type Submitter interface {
	Submit(ctx context.Context) submitter.Outcome
}

// Factory builds a submitter bound to one form.
type Factory func(f form.Form) Submitter

type Config struct {
	Concurrency int
	Logger      *zap.Logger
}

type Result struct {
	Index   int
	Email   string
	Outcome submitter.Outcome
	// Alert is the last notice shown for this address, if any.
	Alert string
	// Message is the text of the message region after submission.
	Message string
}

type Report struct {
	Results     []Result
	Joined      int
	Invalid     int
	Rejected    int
	Unreachable int
	Skipped     int
}

type Runner struct {
	factory Factory
	config  Config
}

func New(factory Factory, config Config) *Runner {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Runner{factory: factory, config: config}
}

// Run submits every email and returns results in input order. Addresses are
// not de-duplicated here; that is up to the submitters the factory builds.
// Once ctx is done, addresses not yet started are reported as skipped.
func (r *Runner) Run(ctx context.Context, emails []string) *Report {
	results := make([]Result, len(emails))

	var g errgroup.Group
	g.SetLimit(r.config.Concurrency)

	for i, email := range emails {
		results[i] = Result{Index: i, Email: email, Outcome: submitter.OutcomeSkipped}

		if ctx.Err() != nil {
			continue
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			m := form.NewMemory(email)
			outcome := r.factory(m.Elements()).Submit(ctx)

			results[i].Outcome = outcome
			results[i].Alert = m.Notifier.Last()
			results[i].Message = m.Message.Text()

			r.config.Logger.Debug("Batch submission finished",
				zap.Int("index", i),
				zap.String("email", email),
				zap.String("outcome", string(outcome)))
			return nil
		})
	}

	_ = g.Wait()

	report := &Report{Results: results}
	for _, res := range results {
		switch res.Outcome {
		case submitter.OutcomeJoined:
			report.Joined++
		case submitter.OutcomeInvalid:
			report.Invalid++
		case submitter.OutcomeRejected:
			report.Rejected++
		case submitter.OutcomeUnreachable:
			report.Unreachable++
		default:
			report.Skipped++
		}
	}

	return report
}
