package event

import (
	"encoding/binary"
	"time"

	"github.com/olivia-oracle/olivia/crypto"
)

// EncodeOracleEventBytes canonically serializes the tuple that an
// announcement commits to and signs:
// (event_id, expected_outcome_time, [nonce_point per outcome slot]).
// The encoding is length-prefixed, big-endian, and stable across
// releases: it is what the oracle's long-term key signs, so it must
// never change shape once events have been announced under it.
func EncodeOracleEventBytes(id ID, expectedOutcomeTime time.Time, nonces []crypto.Point) []byte {
	idBytes := []byte(id.String())
	out := make([]byte, 0, 2+len(idBytes)+8+2+33*len(nonces))

	out = appendUint16Prefixed(out, idBytes)
	out = appendInt64(out, expectedOutcomeTime.UTC().UnixNano())
	out = appendUint16(out, uint16(len(nonces)))
	for _, n := range nonces {
		b := n.Bytes()
		out = append(out, b[:]...)
	}
	return out
}

func appendUint16Prefixed(out []byte, b []byte) []byte {
	out = appendUint16(out, uint16(len(b)))
	return append(out, b...)
}

func appendUint16(out []byte, v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return append(out, b[:]...)
}

func appendInt64(out []byte, v int64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	return append(out, b[:]...)
}
