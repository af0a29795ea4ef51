package crypto

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// SecretKey is the oracle's long-term signing key x, held in memory
// for the process lifetime and never persisted by this package.
type SecretKey struct {
	scalar Scalar
}

// NewSecretKey wraps a 32-byte big-endian scalar as the oracle's secret
// key. It never consults an RNG: x is loaded once at process start,
// external to this package, typically derived from operator-controlled
// key material.
func NewSecretKey(b [32]byte) (SecretKey, error) {
	var s secp256k1.ModNScalar
	overflow := s.SetBytes(&b)
	if overflow != 0 || s.IsZero() {
		return SecretKey{}, errMalformedSeed
	}
	return SecretKey{scalar: Scalar{v: s}}, nil
}

// PublicKey derives X = x*G.
func (sk SecretKey) PublicKey() PublicKey {
	return sk.scalar.BasePoint()
}

// Scalar returns the raw signing scalar x. The schnorr signer and the
// attestation completion in this package read the field directly.
func (sk SecretKey) Scalar() Scalar {
	return sk.scalar
}
