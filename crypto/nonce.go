package crypto

// Seed is a process-lifetime secret independent of the oracle's signing
// key x. It is the sole source of the determinism that makes nonce
// derivation — and therefore insert_event and complete_event —
// idempotent and crash-safe. It is never substituted with an RNG.
type Seed [32]byte

// Nonce is the per-(event, slot) nonce: the scalar r_{e,i} kept
// secret until attestation time, and the point R_{e,i} published in
// the announcement.
type Nonce struct {
	Scalar Scalar
	Point  Point
}

// DeriveNonce computes r_{e,i} = H("olivia/nonce", seed, e, i) mod n
// and R_{e,i} = r_{e,i}*G. Calling this twice for the same
// (seed, eventID, slot) always yields the same nonce — that is the
// entire idempotence and key-reuse-safety argument for the scheme.
func DeriveNonce(seed Seed, eventID string, slot int) Nonce {
	h := taggedHash("olivia/nonce", seed[:], []byte(eventID), uint64Bytes(uint64(slot)))
	r := scalarFromHash(h)
	return Nonce{Scalar: r, Point: r.BasePoint()}
}
