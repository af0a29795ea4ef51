// Package oracle implements the attestation engine: given (event,
// seed) it derives an announcement; given (event, outcome) it derives
// an attestation; and it enforces "announce before attest" and
// "at most one attestation" against the persistence port.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/olivia-oracle/olivia/crypto"
	"github.com/olivia-oracle/olivia/event"
	"github.com/olivia-oracle/olivia/metrics"
	"github.com/olivia-oracle/olivia/observer"
	"github.com/olivia-oracle/olivia/olerrors"
	"github.com/olivia-oracle/olivia/store"
	"github.com/olivia-oracle/olivia/tree"
)

// Engine is the oracle's attestation engine. It holds the secret key
// and seed in memory for the process lifetime and never persists
// them; every other piece of state lives behind store.Port.
type Engine struct {
	seed          crypto.Seed
	secretKey     crypto.SecretKey
	schemaVersion uint32

	port    store.Port
	obs     *observer.Broadcaster
	metrics *metrics.Metrics
	log     *zap.Logger

	now func() time.Time
}

// Option configures optional Engine dependencies.
type Option func(*Engine)

// WithObserver wires a broadcaster that receives EventCreated/EventAttested notifications.
func WithObserver(b *observer.Broadcaster) Option {
	return func(e *Engine) { e.obs = b }
}

// WithMetrics wires a metrics recorder.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger overrides the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// withClock overrides time.Now, for deterministic tests.
func withClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New constructs an Engine. seed is the process-lifetime nonce-derivation
// secret (distinct from secretKey); schemaVersion is the persistence
// schema this process expects.
func New(seed crypto.Seed, secretKey crypto.SecretKey, schemaVersion uint32, port store.Port, opts ...Option) *Engine {
	e := &Engine{
		seed:          seed,
		secretKey:     secretKey,
		schemaVersion: schemaVersion,
		port:          port,
		log:           zap.NewNop(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PublicKey returns the oracle's long-term public key X.
func (e *Engine) PublicKey() crypto.PublicKey { return e.secretKey.PublicKey() }

// SchemaVersion returns the schema version this engine expects.
func (e *Engine) SchemaVersion() uint32 { return e.schemaVersion }

// Init writes OracleMeta on first start, or verifies it matches the
// configured key and schema version. A mismatch is fatal: the process
// must refuse to start rather than risk reusing x under a different
// identity.
func (e *Engine) Init(ctx context.Context) error {
	if err := e.port.Init(ctx, e.schemaVersion); err != nil {
		return err
	}
	want := store.OracleMeta{PublicKey: e.PublicKey(), SchemaVersion: e.schemaVersion}

	existing, ok, err := e.port.GetMeta(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return e.port.SetMeta(ctx, want)
	}
	if existing.SchemaVersion != want.SchemaVersion || !existing.PublicKey.Equal(want.PublicKey) {
		return fmt.Errorf("oracle: persisted meta (schema=%d) does not match configured identity (schema=%d): %w",
			existing.SchemaVersion, want.SchemaVersion, olerrors.ErrIdentityMismatch)
	}
	return nil
}

// InsertEvent creates the tree ancestry if missing, derives the
// announcement, and stores the event row in one atomic unit. Inserting
// the same id with the same resulting announcement bytes twice is a
// no-op (idempotent re-delivery). Inserting an id that already exists
// with different announcement bytes fails with
// olerrors.ErrExistsDifferentAnnouncement; the stored row is authoritative.
func (e *Engine) InsertEvent(ctx context.Context, rawID string, expectedOutcomeTime time.Time) error {
	id, err := event.ParseID(rawID)
	if err != nil {
		return err
	}
	if id.Kind.Tag == event.Predicate {
		return fmt.Errorf("oracle: %s is a predicate, which is never independently announced: %w", id, olerrors.ErrMalformedID)
	}

	nonces := make([]crypto.Point, id.Kind.Slots())
	for i := range nonces {
		nonces[i] = crypto.DeriveNonce(e.seed, id.String(), i).Point
	}

	oracleEventBytes := event.EncodeOracleEventBytes(id, expectedOutcomeTime, nonces)
	sig := crypto.SignAnnouncement(e.secretKey, oracleEventBytes)

	ev := store.Event{
		ID:                  id,
		ExpectedOutcomeTime: expectedOutcomeTime,
		Announcement: &store.Announcement{
			OracleEventBytes: oracleEventBytes,
			Signature:        sig,
			AnnouncedAt:      e.now(),
		},
	}

	if err := e.port.InsertEventWithAncestors(ctx, ev, tree.BuildNodes(id.Path)); err != nil {
		if errors.Is(err, olerrors.ErrExistsDifferentAnnouncement) {
			e.metrics.IncInsertConflicts()
		}
		return err
	}

	e.metrics.IncEventsInserted()
	e.obs.Publish(observer.Notification{Kind: observer.EventCreated, ID: id})
	return nil
}

// CompleteEvent validates outcome against id's kind, derives the
// per-slot completion scalars, and sets the attestation atomically
// conditioned on no attestation already being present. Re-delivery of
// the same outcome for an already-attested event is a no-op. Delivery
// of a *different* outcome for an already-attested event is refused
// loudly: revealing two distinct completions for the same slot would
// leak the oracle's secret key.
func (e *Engine) CompleteEvent(ctx context.Context, rawID, outcome string, at *time.Time) error {
	id, err := event.ParseID(rawID)
	if err != nil {
		return err
	}
	if id.Kind.Tag == event.Predicate {
		return fmt.Errorf("oracle: %s is a predicate, which is never independently attested: %w", id, olerrors.ErrMalformedID)
	}
	if err := id.ValidateOutcome(outcome); err != nil {
		return err
	}

	ev, ok, err := e.port.GetEvent(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("oracle: %s: %w", id, olerrors.ErrNoSuchEvent)
	}
	if ev.Announcement == nil {
		return fmt.Errorf("oracle: %s has no announcement to attest against: %w", id, olerrors.ErrNoSuchEvent)
	}

	slots, err := id.Slots(outcome)
	if err != nil {
		return err
	}
	scalars := make([]crypto.Scalar, len(slots))
	for i, v := range slots {
		nonce := crypto.DeriveNonce(e.seed, id.String(), i)
		scalars[i] = crypto.CompleteAttestation(e.secretKey, nonce, id.String(), i, v)
	}

	attestTime := e.now()
	if at != nil {
		attestTime = *at
	}
	if attestTime.Before(ev.Announcement.AnnouncedAt) {
		attestTime = ev.Announcement.AnnouncedAt
	}

	att := store.Attestation{Outcome: outcome, Time: attestTime, Scalars: scalars}
	err = e.port.SetAttestation(ctx, id, att)
	if err == nil {
		e.metrics.IncEventsAttested()
		e.obs.Publish(observer.Notification{Kind: observer.EventAttested, ID: id})
		return nil
	}
	if !errors.Is(err, olerrors.ErrAlreadyAttested) {
		return err
	}

	existing, ok, gerr := e.port.GetEvent(ctx, id)
	if gerr != nil {
		return gerr
	}
	if ok && existing.Attestation != nil && existing.Attestation.Outcome == outcome {
		return nil // idempotent re-delivery of the same outcome
	}

	// Security-critical: refuses to reveal a second, distinct
	// completion for a slot that has already been revealed once.
	e.metrics.IncInvariantViolations()
	e.log.Error("refused second distinct attestation for event",
		zap.String("event_id", id.String()),
		zap.String("attempted_outcome", outcome),
	)
	return fmt.Errorf("oracle: %s: %w", id, errors.Join(olerrors.ErrAlreadyAttested, olerrors.ErrKeyReuseAttempt))
}
