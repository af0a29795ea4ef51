package oracle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olivia-oracle/olivia/crypto"
	"github.com/olivia-oracle/olivia/event"
	"github.com/olivia-oracle/olivia/metrics"
	"github.com/olivia-oracle/olivia/olerrors"
	"github.com/olivia-oracle/olivia/store/memstore"
)

func mustParse(t *testing.T, raw string) event.ID {
	t.Helper()
	id, err := event.ParseID(raw)
	require.NoError(t, err)
	return id
}

func testSecretKey(t *testing.T, b byte) crypto.SecretKey {
	t.Helper()
	var seed [32]byte
	seed[31] = b
	sk, err := crypto.NewSecretKey(seed)
	require.NoError(t, err)
	return sk
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	sk := testSecretKey(t, 7)
	var seed crypto.Seed
	seed[0] = 9
	port := memstore.New()
	e := New(seed, sk, 1, port)
	require.NoError(t, e.Init(context.Background()))
	return e
}

func TestInitIsIdempotentAcrossRestarts(t *testing.T) {
	sk := testSecretKey(t, 1)
	var seed crypto.Seed
	port := memstore.New()

	e1 := New(seed, sk, 3, port)
	require.NoError(t, e1.Init(context.Background()))

	e2 := New(seed, sk, 3, port)
	require.NoError(t, e2.Init(context.Background()))
	require.True(t, e1.PublicKey().Equal(e2.PublicKey()))
}

func TestInitRefusesMismatchedIdentity(t *testing.T) {
	port := memstore.New()
	e1 := New(crypto.Seed{}, testSecretKey(t, 1), 1, port)
	require.NoError(t, e1.Init(context.Background()))

	e2 := New(crypto.Seed{}, testSecretKey(t, 2), 1, port)
	err := e2.Init(context.Background())
	require.ErrorIs(t, err, olerrors.ErrIdentityMismatch)
}

func TestInsertEventIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	when := time.Date(2026, 6, 20, 19, 0, 0, 0, time.UTC)

	require.NoError(t, e.InsertEvent(ctx, "/NBA/match/2026-06-20/Mavericks_Lakers.winner", when))
	require.NoError(t, e.InsertEvent(ctx, "/NBA/match/2026-06-20/Mavericks_Lakers.winner", when))
}

func TestInsertEventRejectsPredicateKind(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	err := e.InsertEvent(ctx, "/weather/2026-07-01.predicate_2_gt_50", time.Now())
	require.ErrorIs(t, err, olerrors.ErrMalformedID)
}

func TestCompleteEventVerifiesAgainstAnnouncement(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	when := time.Date(2026, 6, 20, 19, 0, 0, 0, time.UTC)
	id := "/NBA/match/2026-06-20/Mavericks_Lakers.winner"

	require.NoError(t, e.InsertEvent(ctx, id, when))
	require.NoError(t, e.CompleteEvent(ctx, id, "Mavericks", nil))

	ev, ok, err := e.port.GetEvent(ctx, mustParse(t, id))
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, ev.Attestation.Scalars, 1)

	// The first nonce point follows the uint16-prefixed id, the 8-byte
	// time and the uint16 slot count in the announced bytes.
	off := 2 + len(id) + 8 + 2
	nonce, err := crypto.ParsePoint(ev.Announcement.OracleEventBytes[off : off+33])
	require.NoError(t, err)
	require.True(t, crypto.VerifyCompletion(ev.Attestation.Scalars[0], nonce, e.PublicKey(), id, 0, "Mavericks"))
}

func TestCompleteEventRedeliveryOfSameOutcomeIsNoop(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	when := time.Date(2026, 6, 20, 19, 0, 0, 0, time.UTC)
	id := "/NBA/match/2026-06-20/Mavericks_Lakers.winner"

	require.NoError(t, e.InsertEvent(ctx, id, when))
	require.NoError(t, e.CompleteEvent(ctx, id, "Mavericks", nil))
	require.NoError(t, e.CompleteEvent(ctx, id, "Mavericks", nil))
}

func TestCompleteEventRefusesDistinctSecondOutcome(t *testing.T) {
	m := metrics.New(nil)
	sk := testSecretKey(t, 3)
	var seed crypto.Seed
	port := memstore.New()
	e := New(seed, sk, 1, port, WithMetrics(m))
	require.NoError(t, e.Init(context.Background()))

	ctx := context.Background()
	when := time.Date(2026, 6, 20, 19, 0, 0, 0, time.UTC)
	id := "/NBA/match/2026-06-20/Mavericks_Lakers.winner"

	require.NoError(t, e.InsertEvent(ctx, id, when))
	require.NoError(t, e.CompleteEvent(ctx, id, "Mavericks", nil))

	err := e.CompleteEvent(ctx, id, "Lakers", nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, olerrors.ErrAlreadyAttested))
	require.True(t, errors.Is(err, olerrors.ErrKeyReuseAttempt))
}

func TestCompleteEventRequiresAnnouncementFirst(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	err := e.CompleteEvent(ctx, "/NBA/match/2026-06-20/Mavericks_Lakers.winner", "Mavericks", nil)
	require.ErrorIs(t, err, olerrors.ErrNoSuchEvent)
}

func TestCompleteEventRejectsOutcomeNotInKind(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	when := time.Date(2026, 6, 20, 19, 0, 0, 0, time.UTC)
	id := "/NBA/match/2026-06-20/Mavericks_Lakers.winner"
	require.NoError(t, e.InsertEvent(ctx, id, when))

	err := e.CompleteEvent(ctx, id, "Celtics", nil)
	require.Error(t, err)
}

func TestCompleteEventOnDigitsKindDerivesOneScalarPerSlot(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	when := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	id := "/lottery/2026-07-01.digits_4"

	require.NoError(t, e.InsertEvent(ctx, id, when))
	require.NoError(t, e.CompleteEvent(ctx, id, "0492", nil))

	ev, ok, err := e.port.GetEvent(ctx, mustParse(t, id))
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, ev.Attestation.Scalars, 4)
}

func TestInsertEventMaterializesAncestorTree(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	when := time.Date(2026, 6, 20, 19, 0, 0, 0, time.UTC)
	require.NoError(t, e.InsertEvent(ctx, "/NBA/match/2026-06-20/Mavericks_Lakers.winner", when))

	children, err := e.port.Children(ctx, "/")
	require.NoError(t, err)
	require.Len(t, children, 1)
	require.Equal(t, "/NBA", string(children[0].ID))
}

func TestAttestationTimeIsClampedToAnnouncementTime(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	when := time.Date(2026, 6, 20, 19, 0, 0, 0, time.UTC)
	id := "/NBA/match/2026-06-20/Mavericks_Lakers.winner"
	require.NoError(t, e.InsertEvent(ctx, id, when))

	tooEarly := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, e.CompleteEvent(ctx, id, "Mavericks", &tooEarly))

	parsed, ok, err := e.port.GetEvent(ctx, mustParse(t, id))
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, parsed.Attestation.Time.Before(parsed.Announcement.AnnouncedAt))
}
