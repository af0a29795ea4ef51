package ingress

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/olivia-oracle/olivia/event"
	"github.com/olivia-oracle/olivia/metrics"
	"github.com/olivia-oracle/olivia/olerrors"
)

// Engine is the subset of oracle.Engine the dispatcher depends on. It
// is declared here, not imported from package oracle, so ingress can
// be tested against a fake without an import cycle.
type Engine interface {
	InsertEvent(ctx context.Context, rawID string, expectedOutcomeTime time.Time) error
	CompleteEvent(ctx context.Context, rawID, outcome string, at *time.Time) error
}

// SourceConfig names one ingress source and the path prefix it is
// authorized to route records under; a record whose id falls outside
// the prefix is treated as malformed and dropped.
type SourceConfig struct {
	Name       string
	PathPrefix event.Path
	Source     Source
}

// backoffFactory builds a fresh exponential backoff policy per
// retried record: base 100ms, cap 30s, indefinite retries, matching
// §4.F. It is a func field so tests can substitute a fast policy.
type backoffFactory func() backoff.BackOff

func defaultBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 0 // retry indefinitely; only ctx cancellation stops it
	return b
}

// Dispatcher runs one worker goroutine per configured source, routing
// each record it pulls to the engine and applying retry/backoff or
// drop-after-log depending on the error's classification.
type Dispatcher struct {
	engine  Engine
	sources []SourceConfig
	metrics *metrics.Metrics
	log     *zap.Logger
	newBack backoffFactory

	wg sync.WaitGroup
}

// Option configures optional Dispatcher dependencies.
type Option func(*Dispatcher)

// WithMetrics wires a metrics recorder.
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// WithLogger overrides the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// withBackoff overrides the retry policy factory, for fast tests.
func withBackoff(f backoffFactory) Option {
	return func(d *Dispatcher) { d.newBack = f }
}

// New constructs a Dispatcher over the given engine and sources.
func New(engine Engine, sources []SourceConfig, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		engine:  engine,
		sources: sources,
		log:     zap.NewNop(),
		newBack: defaultBackoff,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run starts one worker per source and blocks until ctx is cancelled
// and every worker has exited. Sources are independently cancellable
// only in the sense that a closed/erroring source's worker exits on
// its own; cancelling ctx stops all of them together.
func (d *Dispatcher) Run(ctx context.Context) {
	for _, sc := range d.sources {
		d.wg.Add(1)
		go func(sc SourceConfig) {
			defer d.wg.Done()
			d.runSource(ctx, sc)
		}(sc)
	}
	d.wg.Wait()
}

func (d *Dispatcher) runSource(ctx context.Context, sc SourceConfig) {
	for {
		rec, err := sc.Source.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, errSourceClosed) {
				return
			}
			d.log.Error("ingress source errored", zap.String("source", sc.Name), zap.Error(err))
			return
		}
		d.dispatch(ctx, sc, rec)
	}
}

// dispatch routes one record to the engine, retrying transient
// failures with backoff and dropping permanent ones after logging.
func (d *Dispatcher) dispatch(ctx context.Context, sc SourceConfig, rec Record) {
	op := func() error { return d.apply(ctx, sc, rec) }

	b := backoff.WithContext(d.newBack(), ctx)
	err := backoff.RetryNotify(func() error {
		err := op()
		if err == nil {
			return nil
		}
		switch olerrors.Classify(err) {
		case olerrors.ClassTransient, olerrors.ClassUnknown:
			return err // retry
		default:
			return backoff.Permanent(err)
		}
	}, b, func(err error, wait time.Duration) {
		d.metrics.IncIngressRetried(sc.Name)
		d.log.Warn("retrying ingress record after transient error",
			zap.String("source", sc.Name), zap.Duration("wait", wait), zap.Error(err))
	})
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return
	}

	d.metrics.IncIngressDropped(sc.Name)
	d.log.Error("dropping ingress record after permanent error",
		zap.String("source", sc.Name), zap.Error(err))
}

func (d *Dispatcher) apply(ctx context.Context, sc SourceConfig, rec Record) error {
	switch {
	case rec.Event != nil:
		return d.applyEvent(ctx, sc, *rec.Event)
	case rec.Outcome != nil:
		return d.applyOutcome(ctx, sc, *rec.Outcome)
	default:
		return fmt.Errorf("ingress: empty record from source %s: %w", sc.Name, olerrors.ErrMalformedID)
	}
}

func (d *Dispatcher) applyEvent(ctx context.Context, sc SourceConfig, rec EventRecord) error {
	id, err := event.ParseID(rec.ID)
	if err != nil {
		return err
	}
	if !id.Path.HasPrefix(sc.PathPrefix) {
		return fmt.Errorf("ingress: %s is outside source %s's prefix %s: %w", id, sc.Name, sc.PathPrefix, olerrors.ErrMalformedID)
	}
	when, err := rec.ParsedTime()
	if err != nil {
		return err
	}
	return d.engine.InsertEvent(ctx, rec.ID, when)
}

func (d *Dispatcher) applyOutcome(ctx context.Context, sc SourceConfig, rec OutcomeRecord) error {
	id, err := event.ParseID(rec.ID)
	if err != nil {
		return err
	}
	if !id.Path.HasPrefix(sc.PathPrefix) {
		return fmt.Errorf("ingress: %s is outside source %s's prefix %s: %w", id, sc.Name, sc.PathPrefix, olerrors.ErrMalformedID)
	}
	at, err := rec.ParsedTime()
	if err != nil {
		return err
	}
	return d.engine.CompleteEvent(ctx, rec.ID, rec.Outcome, at)
}
