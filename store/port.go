package store

import (
	"context"
	"time"

	"github.com/olivia-oracle/olivia/event"
)

// Port is the capability interface any backing store must implement.
// Every operation is asynchronous (ctx-cancellable) and, per the
// concurrency model, internally concurrency-safe: the engine holds no
// locks of its own and never reads-then-writes without a guard — the
// guards below (InsertEventWithAncestors, SetAttestation) are the
// atomic units the engine relies on.
type Port interface {
	// Init creates tables/indices or verifies an existing schema,
	// failing on a version mismatch (fatal — refuse to start).
	Init(ctx context.Context, schemaVersion uint32) error

	// GetMeta returns the persisted oracle metadata, or ok=false if
	// none has been written yet.
	GetMeta(ctx context.Context) (meta OracleMeta, ok bool, err error)
	// SetMeta writes oracle metadata once. It fails if metadata is
	// already present with a different value; writing the identical
	// value again is a no-op success.
	SetMeta(ctx context.Context, meta OracleMeta) error

	// InsertNodeIfAbsent is idempotent: inserting an already-present
	// node with the same parent is a no-op.
	InsertNodeIfAbsent(ctx context.Context, node TreeNode) error

	// InsertEventWithAncestors is one atomic unit: it creates every
	// ancestor node that is missing and inserts the event row. If the
	// event id already exists with identical announcement bytes, it is
	// a no-op (Ok). If it exists with different announcement bytes,
	// it returns an error wrapping olerrors.ErrExistsDifferentAnnouncement
	// and leaves the existing row untouched and authoritative.
	InsertEventWithAncestors(ctx context.Context, ev Event, ancestors []TreeNode) error

	// GetEvent returns the full row, or ok=false if the id is unknown.
	GetEvent(ctx context.Context, id event.ID) (ev Event, ok bool, err error)

	// SetAttestation is a compare-and-set on "attestation IS NULL". If
	// the row already carries an attestation it returns an error
	// wrapping olerrors.ErrAlreadyAttested, regardless of whether att
	// matches the existing one.
	SetAttestation(ctx context.Context, id event.ID, att Attestation) error

	// EarliestUnattested returns announced-but-unattested events whose
	// expected outcome time is before the given instant, oldest first.
	// It enables bounded-lookback catch-up; it is optional and may
	// return an empty slice if the backend does not support it.
	EarliestUnattested(ctx context.Context, before time.Time, limit int) ([]Event, error)

	// Children returns the direct children of path, for the read side.
	Children(ctx context.Context, path event.Path) ([]TreeNode, error)

	// MinMaxChild returns the lexicographically smallest and largest
	// direct child of path, for the read side's range queries. ok is
	// false if path has no children.
	MinMaxChild(ctx context.Context, path event.Path) (min, max TreeNode, ok bool, err error)
}
