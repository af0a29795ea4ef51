// Package olerrors classifies the error conditions that flow between
// the event tree, the oracle engine, the persistence port and the
// ingress dispatcher, per the error handling design: Malformed,
// Conflict, Transient, Fatal, Invariant.
package olerrors

import (
	"errors"
)

// Class is the error handling bucket a given error falls into.
type Class int

const (
	// ClassUnknown is returned by Classify for errors it does not recognise;
	// callers should treat these conservatively as transient.
	ClassUnknown Class = iota
	ClassMalformed
	ClassConflict
	ClassTransient
	ClassFatal
	ClassInvariant
)

func (c Class) String() string {
	switch c {
	case ClassMalformed:
		return "malformed"
	case ClassConflict:
		return "conflict"
	case ClassTransient:
		return "transient"
	case ClassFatal:
		return "fatal"
	case ClassInvariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// Sentinel errors shared across packages. Each is tagged with the
// class it belongs to via the classified map below; wrapping with
// fmt.Errorf("...: %w", ErrX) preserves classification through
// errors.Is.
var (
	// ErrMalformedID means an event id failed to parse.
	ErrMalformedID = errors.New("olivia: malformed event id")
	// ErrMalformedOutcome means an outcome literal does not parse for its kind.
	ErrMalformedOutcome = errors.New("olivia: malformed outcome")
	// ErrMalformedTime means a timestamp field failed RFC3339 parsing.
	ErrMalformedTime = errors.New("olivia: malformed time")

	// ErrExistsDifferentAnnouncement is returned when an event id already
	// exists with announcement bytes that differ from the one just computed.
	ErrExistsDifferentAnnouncement = errors.New("olivia: event exists with a different announcement")
	// ErrOutcomeConflict is returned when re-delivery of an outcome differs
	// from the one already attested.
	ErrOutcomeConflict = errors.New("olivia: outcome conflicts with existing attestation")

	// ErrTransient wraps persistence/transport hiccups that should be retried.
	ErrTransient = errors.New("olivia: transient failure")

	// ErrSchemaMismatch means the persisted schema version does not match
	// the running binary's expectation. Fatal: refuse to start.
	ErrSchemaMismatch = errors.New("olivia: schema version mismatch")
	// ErrMetaMissing means oracle metadata was not found at startup.
	ErrMetaMissing = errors.New("olivia: oracle metadata missing")
	// ErrMalformedSeed means the configured oracle seed is not usable.
	ErrMalformedSeed = errors.New("olivia: malformed oracle seed")
	// ErrIdentityMismatch means the persisted OracleMeta does not match
	// the configured key/schema at startup. Fatal: refuse to start
	// rather than risk signing under the wrong key or schema.
	ErrIdentityMismatch = errors.New("olivia: persisted oracle identity does not match configuration")

	// ErrNoSuchEvent means complete_event was called for an unknown id.
	ErrNoSuchEvent = errors.New("olivia: no such event")
	// ErrAlreadyAttested means the event already carries an attestation.
	ErrAlreadyAttested = errors.New("olivia: event already attested")
	// ErrOutcomeNotInKind means the outcome literal is not in the kind's outcome set.
	ErrOutcomeNotInKind = errors.New("olivia: outcome not in kind's outcome set")

	// ErrKeyReuseAttempt is the invariant violation: an attempt to set a
	// second, different attestation for the same event. This must never be
	// silently dropped; it indicates either a bug or an attack on the
	// at-most-one-attestation guarantee that protects the oracle's secret key.
	ErrKeyReuseAttempt = errors.New("olivia: refused second distinct attestation for event")
)

var classOf = map[error]Class{
	ErrMalformedID:                  ClassMalformed,
	ErrMalformedOutcome:             ClassMalformed,
	ErrMalformedTime:                ClassMalformed,
	ErrExistsDifferentAnnouncement:  ClassConflict,
	ErrOutcomeConflict:              ClassConflict,
	ErrTransient:                    ClassTransient,
	ErrSchemaMismatch:               ClassFatal,
	ErrMetaMissing:                  ClassFatal,
	ErrMalformedSeed:                ClassFatal,
	ErrIdentityMismatch:             ClassFatal,
	ErrNoSuchEvent:                  ClassMalformed,
	ErrAlreadyAttested:              ClassConflict,
	ErrOutcomeNotInKind:             ClassMalformed,
	ErrKeyReuseAttempt:              ClassInvariant,
}

// Classify reports the handling bucket for err, walking its wrap chain
// against the known sentinels. Unrecognised errors classify as
// ClassUnknown, which the dispatcher treats as transient (retry) rather
// than silently dropping unfamiliar failures.
func Classify(err error) Class {
	if err == nil {
		return ClassUnknown
	}
	for sentinel, class := range classOf {
		if errors.Is(err, sentinel) {
			return class
		}
	}
	return ClassUnknown
}
