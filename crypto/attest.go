package crypto

// Challenge computes c_{e,i,v} = H("olivia/attest", X, R, e, i, v) mod n,
// the per-slot, per-candidate-value challenge that anyone holding the
// announcement (X and R_{e,i}) can compute for any candidate value v —
// this is what lets a third party build S_{e,i,v} without the oracle's
// participation.
func Challenge(pub PublicKey, nonce Point, eventID string, slot int, value string) Scalar {
	xb := pub.Bytes()
	rb := nonce.Bytes()
	h := taggedHash("olivia/attest", xb[:], rb[:], []byte(eventID), uint64Bytes(uint64(slot)), []byte(value))
	return scalarFromHash(h)
}

// AnticipatedPoint computes S_{e,i,v} = R_{e,i} + c_{e,i,v}*X, the
// point the revealed scalar s_{e,i,v} must equal s*G for, once the
// oracle commits to value v.
func AnticipatedPoint(nonce Point, challenge Scalar, pub PublicKey) Point {
	return nonce.Add(pub.ScalarMult(challenge))
}

// CompleteAttestation reveals s_{e,i,v} = r_{e,i} + c_{e,i,v}*x mod n
// for the chosen outcome value v at slot i. Calling this twice for the
// same (seed, x, eventID, slot) with the same value reproduces the
// identical scalar (attestation determinism); calling it with two
// different values for the same slot would leak x to anyone who
// collects both revealed scalars — the engine layer is responsible for
// making that combination unreachable (§ key-reuse safety).
func CompleteAttestation(sk SecretKey, nonce Nonce, eventID string, slot int, value string) Scalar {
	pub := sk.PublicKey()
	c := Challenge(pub, nonce.Point, eventID, slot, value)
	return nonce.Scalar.Add(c.Mul(sk.scalar))
}

// VerifyCompletion checks s*G == S_{e,i,v} for a revealed scalar s,
// recomputing the anticipated point from the announcement (nonce
// point, public key) and the claimed value.
func VerifyCompletion(s Scalar, nonce Point, pub PublicKey, eventID string, slot int, value string) bool {
	c := Challenge(pub, nonce, eventID, slot, value)
	want := AnticipatedPoint(nonce, c, pub)
	return s.BasePoint().Equal(want)
}

// RecoverSecretFromReuse implements the key-reuse-safety property
// (§8 property 4): given two distinct revealed scalars s, s' for
// candidate values v != v' at the same slot, recovers the oracle's
// secret key x = (s - s') * inv(c - c'). It exists purely to make the
// property testable; the engine must never let both scalars be
// revealed in the first place.
func RecoverSecretFromReuse(s, sPrime, c, cPrime Scalar) Scalar {
	numerator := s.Sub(sPrime)
	denom := c.Sub(cPrime)
	return numerator.Mul(denom.Inverse())
}
