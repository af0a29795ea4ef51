package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testSecretKey(t *testing.T) SecretKey {
	t.Helper()
	var raw [32]byte
	copy(raw[:], []byte("olivia-test-oracle-secret-key!!!"))
	sk, err := NewSecretKey(raw)
	require.NoError(t, err)
	return sk
}

func TestNonceDerivationIsDeterministic(t *testing.T) {
	var seed Seed
	copy(seed[:], []byte("olivia-test-seed"))

	n1 := DeriveNonce(seed, "/NBA/match/2021-06-20/MIL_BKN.winner", 0)
	n2 := DeriveNonce(seed, "/NBA/match/2021-06-20/MIL_BKN.winner", 0)
	require.Equal(t, n1.Scalar.Bytes(), n2.Scalar.Bytes())
	require.True(t, n1.Point.Equal(n2.Point))

	n3 := DeriveNonce(seed, "/NBA/match/2021-06-20/MIL_BKN.winner", 1)
	require.False(t, n1.Scalar.Bytes() == n3.Scalar.Bytes())
}

func TestAnnouncementSignatureRoundTrips(t *testing.T) {
	sk := testSecretKey(t)
	pub := sk.PublicKey()
	msg := []byte("oracle-event-bytes-for-an-announcement")

	sig := SignAnnouncement(sk, msg)
	require.True(t, VerifyAnnouncement(pub, msg, sig))
	require.False(t, VerifyAnnouncement(pub, []byte("different bytes"), sig))
}

// TestAttestationCompletionVerifies is testable property 3: for any
// completed scalar s at slot i for value v, s*G == R + c*X.
func TestAttestationCompletionVerifies(t *testing.T) {
	sk := testSecretKey(t)
	var seed Seed
	copy(seed[:], []byte("olivia-test-seed"))

	eventID := "/NBA/match/2021-06-20/MIL_BKN.winner"
	nonce := DeriveNonce(seed, eventID, 0)

	s := CompleteAttestation(sk, nonce, eventID, 0, "MIL")
	require.True(t, VerifyCompletion(s, nonce.Point, sk.PublicKey(), eventID, 0, "MIL"))
	require.False(t, VerifyCompletion(s, nonce.Point, sk.PublicKey(), eventID, 0, "BKN"))
}

// TestAttestationDeterminism is testable property 2: the scalar vector
// is a function only of (x, seed, E, v).
func TestAttestationDeterminism(t *testing.T) {
	sk := testSecretKey(t)
	var seed Seed
	copy(seed[:], []byte("olivia-test-seed"))
	eventID := "/time/2025-01-01T00:00:00.occur"
	nonce := DeriveNonce(seed, eventID, 0)

	s1 := CompleteAttestation(sk, nonce, eventID, 0, "true")
	s2 := CompleteAttestation(sk, nonce, eventID, 0, "true")
	require.Equal(t, s1.Bytes(), s2.Bytes())
}

// TestKeyReuseRecoversSecret is testable property 4: revealing two
// distinct completions for the same slot lets an observer recover x.
// This is exactly the scenario the oracle engine must make unreachable.
func TestKeyReuseRecoversSecret(t *testing.T) {
	sk := testSecretKey(t)
	var seed Seed
	copy(seed[:], []byte("olivia-test-seed"))
	eventID := "/NBA/match/2021-06-20/MIL_BKN.winner"
	nonce := DeriveNonce(seed, eventID, 0)
	pub := sk.PublicKey()

	sMIL := CompleteAttestation(sk, nonce, eventID, 0, "MIL")
	sBKN := CompleteAttestation(sk, nonce, eventID, 0, "BKN")

	cMIL := Challenge(pub, nonce.Point, eventID, 0, "MIL")
	cBKN := Challenge(pub, nonce.Point, eventID, 0, "BKN")

	recovered := RecoverSecretFromReuse(sMIL, sBKN, cMIL, cBKN)
	require.Equal(t, sk.scalar.Bytes(), recovered.Bytes())
}
