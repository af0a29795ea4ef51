// Package ingress consumes event-insert and outcome-insert records
// from named sources and routes each to the oracle engine, retrying
// transient failures with backoff and dropping permanent ones after
// logging. All source workers share one context: cancelling it stops
// every worker; a single source cannot be cancelled on its own.
package ingress

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/olivia-oracle/olivia/olerrors"
)

// EventRecord announces a new event: its id and the wall-clock time
// its outcome is expected to become known.
type EventRecord struct {
	ID                  string `json:"id"`
	ExpectedOutcomeTime string `json:"expected_outcome_time"`
}

// OutcomeRecord delivers a realised outcome for a previously-announced
// event. Time is optional: absent, the engine stamps wall-clock at
// attestation.
type OutcomeRecord struct {
	ID      string  `json:"id"`
	Outcome string  `json:"outcome"`
	Time    *string `json:"time,omitempty"`
}

// Record is exactly one of Event or Outcome, never both.
type Record struct {
	Event   *EventRecord
	Outcome *OutcomeRecord
}

// ParsedTime returns the RFC3339 expected_outcome_time as a time.Time.
func (r EventRecord) ParsedTime() (time.Time, error) {
	t, err := time.Parse(time.RFC3339, r.ExpectedOutcomeTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("ingress: event record %q: %w", r.ID, olerrors.ErrMalformedTime)
	}
	return t, nil
}

// ParsedTime returns the optional RFC3339 time field, or nil if absent.
func (r OutcomeRecord) ParsedTime() (*time.Time, error) {
	if r.Time == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *r.Time)
	if err != nil {
		return nil, fmt.Errorf("ingress: outcome record %q: %w", r.ID, olerrors.ErrMalformedTime)
	}
	return &t, nil
}

// DecodeEventRecord unmarshals one line-delimited JSON EventRecord.
func DecodeEventRecord(raw []byte) (EventRecord, error) {
	var r EventRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return EventRecord{}, fmt.Errorf("ingress: malformed event record: %w", olerrors.ErrMalformedID)
	}
	return r, nil
}

// DecodeOutcomeRecord unmarshals one line-delimited JSON OutcomeRecord.
func DecodeOutcomeRecord(raw []byte) (OutcomeRecord, error) {
	var r OutcomeRecord
	if err := json.Unmarshal(raw, &r); err != nil {
		return OutcomeRecord{}, fmt.Errorf("ingress: malformed outcome record: %w", olerrors.ErrMalformedID)
	}
	return r, nil
}
