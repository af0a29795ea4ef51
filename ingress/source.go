package ingress

import "context"

// Source is a pull-based record transport: one named stream of
// EventRecord or OutcomeRecord values. Next blocks until a record is
// available, ctx is cancelled, or the source is exhausted. A worker
// that does not call Next does not pull — that is the entire
// backpressure mechanism (§4.F).
type Source interface {
	Next(ctx context.Context) (Record, error)
}

// ChannelSource is a Source backed by a Go channel: the reference
// implementation used by tests and by cmd/oliviad's demo wiring. A
// real redis-list or http-poll transport is an external concern.
type ChannelSource struct {
	records <-chan Record
}

// NewChannelSource wraps an existing channel of records as a Source.
func NewChannelSource(records <-chan Record) *ChannelSource {
	return &ChannelSource{records: records}
}

// Next returns the next record, or ctx.Err() if cancelled, or a zero
// Record with errSourceClosed when the channel is closed and drained.
func (c *ChannelSource) Next(ctx context.Context) (Record, error) {
	select {
	case <-ctx.Done():
		return Record{}, ctx.Err()
	case r, ok := <-c.records:
		if !ok {
			return Record{}, errSourceClosed
		}
		return r, nil
	}
}
