package crypto

// Signature is a schnorr signature (R, s) over an arbitrary message,
// used to sign the canonical oracle-event bytes of an announcement.
type Signature struct {
	R Point
	S Scalar
}

// announcementNonce derives the deterministic signing nonce for an
// announcement signature: H("olivia/ann-nonce", x, A) mod n. Using the
// secret key and the message being signed (rather than an RNG) means
// re-signing the same announcement bytes always reproduces the same
// signature, which is what makes insert_event idempotent under
// re-delivery.
func announcementNonce(sk SecretKey, message []byte) Scalar {
	xBytes := sk.scalar.Bytes()
	h := taggedHash("olivia/ann-nonce", xBytes[:], message)
	return scalarFromHash(h)
}

// announcementChallenge computes e = H(R, X, A) mod n for the
// announcement schnorr signature.
func announcementChallenge(r, x Point, message []byte) Scalar {
	rb := r.Bytes()
	xb := x.Bytes()
	h := taggedHash("olivia/ann-challenge", rb[:], xb[:], message)
	return scalarFromHash(h)
}

// SignAnnouncement produces the schnorr signature over the canonical
// oracle-event bytes under the oracle's long-term key.
func SignAnnouncement(sk SecretKey, message []byte) Signature {
	k := announcementNonce(sk, message)
	R := k.BasePoint()
	X := sk.PublicKey()
	e := announcementChallenge(R, X, message)
	// s = k + e*x mod n
	s := k.Add(e.Mul(sk.scalar))
	return Signature{R: R, S: s}
}

// VerifyAnnouncement checks s*G == R + e*X for the given public key
// and message.
func VerifyAnnouncement(pub PublicKey, message []byte, sig Signature) bool {
	e := announcementChallenge(sig.R, pub, message)
	lhs := sig.S.BasePoint()
	rhs := sig.R.Add(pub.ScalarMult(e))
	return lhs.Equal(rhs)
}
