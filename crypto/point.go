package crypto

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Point is an affine point on secp256k1. It underlies the oracle's
// public key X, every per-slot nonce point R_{e,i}, and every
// anticipated signature point S_{e,i,v}.
type Point struct {
	j secp256k1.JacobianPoint
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	var sum secp256k1.JacobianPoint
	secp256k1.AddNonConst(&p.j, &q.j, &sum)
	sum.ToAffine()
	return Point{j: sum}
}

// ScalarMult returns s*p.
func (p Point) ScalarMult(s Scalar) Point {
	var out secp256k1.JacobianPoint
	secp256k1.ScalarMultNonConst(&s.v, &p.j, &out)
	out.ToAffine()
	return Point{j: out}
}

// Bytes returns the 33-byte SEC1-compressed encoding.
func (p Point) Bytes() [33]byte {
	pub := secp256k1.NewPublicKey(&p.j.X, &p.j.Y)
	var out [33]byte
	copy(out[:], pub.SerializeCompressed())
	return out
}

// Equal reports whether two points are the same curve point.
func (p Point) Equal(q Point) bool {
	return p.Bytes() == q.Bytes()
}

// ParsePoint decodes a 33-byte SEC1-compressed point.
func ParsePoint(b []byte) (Point, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return Point{}, errMalformedSeed
	}
	var j secp256k1.JacobianPoint
	pub.AsJacobian(&j)
	return Point{j: j}, nil
}

// PublicKey is an alias for Point: the oracle's long-term public key
// X is, cryptographically, just another curve point.
type PublicKey = Point
