// Package store defines the persistence port: the abstract CRUD
// surface over events, tree nodes, announcements, attestations and
// oracle metadata that the engine and tree manager depend on. The
// concrete backing store (in-memory, relational) is an external
// concern; this package only owns the contract plus a reference
// in-memory implementation under ./memstore.
package store

import (
	"time"

	"github.com/olivia-oracle/olivia/crypto"
	"github.com/olivia-oracle/olivia/event"
)

// Announcement is the signed commitment published before an event
// resolves: the canonical oracle-event bytes and the schnorr
// signature over them under the oracle's long-term key. AnnouncedAt
// is the wall-clock time the commitment was made, used only to
// enforce "attestation time >= announcement time" — it is not part of
// the signed bytes, which commit to ExpectedOutcomeTime instead.
type Announcement struct {
	OracleEventBytes []byte
	Signature        crypto.Signature
	AnnouncedAt      time.Time
}

// Attestation is the revealed completion for a realised outcome: one
// scalar per outcome slot of the event's kind.
type Attestation struct {
	Outcome string
	Time    time.Time
	Scalars []crypto.Scalar
}

// Event is a persisted event row. Announcement is set exactly once, on
// creation; Attestation is set at most once and requires a present
// Announcement.
type Event struct {
	ID                   event.ID
	ExpectedOutcomeTime  time.Time
	Announcement         *Announcement
	Attestation          *Attestation
}

// TreeNode is one path in the hierarchical namespace.
type TreeNode struct {
	ID     event.Path
	Parent *event.Path
	Kind   *string
}

// OracleMeta is the immutable, once-written identity of the running
// oracle: its public key and the schema version it was initialized
// against.
type OracleMeta struct {
	PublicKey     crypto.PublicKey
	SchemaVersion uint32
}
