// Package crypto implements the secp256k1 scalar/point arithmetic and
// schnorr-style signing scheme behind announcements and attestations:
// deterministic per-slot nonce derivation, announcement signing, and
// the anticipated-signature construction that lets a verifier compute
// S_{e,i,v} = R_{e,i} + c_{e,i,v}*X from the announcement alone.
package crypto

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// taggedHash domain-separates a hash by usage the way BIP-340 tags a
// SHA256 hash, except blake2b already supports a native keyed MAC mode
// up to 64 bytes, so the tag doubles as the key rather than needing a
// hand-rolled double-hash prefix.
func taggedHash(tag string, parts ...[]byte) [32]byte {
	h, err := blake2b.New256([]byte(tag))
	if err != nil {
		// Only returns an error for oversized keys; our tags are all
		// short string literals fixed at compile time.
		panic(err)
	}
	for _, p := range parts {
		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(p)))
		h.Write(lenBuf[:])
		h.Write(p)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func uint64Bytes(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}
