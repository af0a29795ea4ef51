package event

import (
	"testing"
	"time"

	"github.com/olivia-oracle/olivia/crypto"
	"github.com/stretchr/testify/require"
)

func TestParseIDWinner(t *testing.T) {
	id, err := ParseID("/NBA/match/2021-06-20/MIL_BKN.winner")
	require.NoError(t, err)
	require.Equal(t, Winner, id.Kind.Tag)
	a, b, err := id.Teams()
	require.NoError(t, err)
	require.Equal(t, "MIL", a)
	require.Equal(t, "BKN", b)

	set, err := id.OutcomeSet()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"MIL", "BKN"}, set)

	require.NoError(t, id.ValidateOutcome("MIL"))
	require.Error(t, id.ValidateOutcome("draw"))
}

func TestParseIDVsAllowsDraw(t *testing.T) {
	id, err := ParseID("/NBA/match/2021-06-20/MIL_BKN.vs")
	require.NoError(t, err)
	require.NoError(t, id.ValidateOutcome("draw"))
}

func TestParseIDRejectsMissingLeadingSlash(t *testing.T) {
	_, err := ParseID("NBA/match.winner")
	require.Error(t, err)
}

func TestParseIDDigitsSlots(t *testing.T) {
	id, err := ParseID("/price/BTCUSD/2025-01-01.digits_5")
	require.NoError(t, err)
	require.Equal(t, 5, id.Kind.Width)
	require.Equal(t, 5, id.Kind.Slots())

	slots, err := id.Slots("29345")
	require.NoError(t, err)
	require.Equal(t, []string{"2", "9", "3", "4", "5"}, slots)

	require.Error(t, id.ValidateOutcome("2934"))
}

func TestPredicateProjection(t *testing.T) {
	id, err := ParseID("/price/BTCUSD/2025-01-01.predicate_5_gt_20000")
	require.NoError(t, err)
	require.Equal(t, Predicate, id.Kind.Tag)

	base, err := id.BaseDigitsID()
	require.NoError(t, err)
	require.Equal(t, "/price/BTCUSD/2025-01-01.digits_5", base.String())

	ok, err := EvaluatePredicate(id.Kind, "29345")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = EvaluatePredicate(id.Kind, "00001")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestPathAncestors(t *testing.T) {
	p, err := ParsePath("/NBA/match/2021-06-20/MIL_BKN")
	require.NoError(t, err)
	require.Equal(t, []Path{"/", "/NBA", "/NBA/match", "/NBA/match/2021-06-20"}, p.Ancestors())

	parent, ok := p.Parent()
	require.True(t, ok)
	require.Equal(t, Path("/NBA/match/2021-06-20"), parent)
}

func TestPathHasPrefix(t *testing.T) {
	p, err := ParsePath("/NBA/match/2021-06-20/MIL_BKN")
	require.NoError(t, err)

	require.True(t, p.HasPrefix(RootPath))
	require.True(t, p.HasPrefix("/NBA"))
	require.True(t, p.HasPrefix("/NBA/match"))
	require.True(t, p.HasPrefix(p))
	require.False(t, p.HasPrefix("/NFL"))
	require.False(t, p.HasPrefix("/NBA/match/2021-06-20/MIL_BKN/extra"))
}

func TestEncodeOracleEventBytesStable(t *testing.T) {
	id, err := ParseID("/time/2025-01-01T00:00:00.occur")
	require.NoError(t, err)
	when := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	var seed crypto.Seed
	copy(seed[:], []byte("seed"))
	n := crypto.DeriveNonce(seed, id.String(), 0)

	b1 := EncodeOracleEventBytes(id, when, []crypto.Point{n.Point})
	b2 := EncodeOracleEventBytes(id, when, []crypto.Point{n.Point})
	require.Equal(t, b1, b2)
}
