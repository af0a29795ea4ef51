package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/olivia-oracle/olivia/event"
	"github.com/olivia-oracle/olivia/store"
	"github.com/stretchr/testify/require"
)

func mustID(t *testing.T, raw string) event.ID {
	t.Helper()
	id, err := event.ParseID(raw)
	require.NoError(t, err)
	return id
}

func TestInsertEventWithAncestorsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New()
	id := mustID(t, "/NBA/match/2021-06-20/MIL_BKN.winner")
	ancestors := []store.TreeNode{{ID: "/"}}

	ann := &store.Announcement{OracleEventBytes: []byte("bytes-v1")}
	ev := store.Event{ID: id, ExpectedOutcomeTime: time.Now(), Announcement: ann}

	require.NoError(t, s.InsertEventWithAncestors(ctx, ev, ancestors))
	require.NoError(t, s.InsertEventWithAncestors(ctx, ev, ancestors))

	got, ok, err := s.GetEvent(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, ann.OracleEventBytes, got.Announcement.OracleEventBytes)
}

func TestInsertEventWithAncestorsRejectsDivergentAnnouncement(t *testing.T) {
	ctx := context.Background()
	s := New()
	id := mustID(t, "/NBA/match/2021-06-20/MIL_BKN.winner")

	ev1 := store.Event{ID: id, Announcement: &store.Announcement{OracleEventBytes: []byte("v1")}}
	ev2 := store.Event{ID: id, Announcement: &store.Announcement{OracleEventBytes: []byte("v2")}}

	require.NoError(t, s.InsertEventWithAncestors(ctx, ev1, nil))
	err := s.InsertEventWithAncestors(ctx, ev2, nil)
	require.Error(t, err)
}

func TestSetAttestationCompareAndSet(t *testing.T) {
	ctx := context.Background()
	s := New()
	id := mustID(t, "/time/2025-01-01T00:00:00.occur")
	ev := store.Event{ID: id, Announcement: &store.Announcement{OracleEventBytes: []byte("bytes")}}
	require.NoError(t, s.InsertEventWithAncestors(ctx, ev, nil))

	att := store.Attestation{Outcome: "true", Time: time.Now()}
	require.NoError(t, s.SetAttestation(ctx, id, att))

	err := s.SetAttestation(ctx, id, store.Attestation{Outcome: "true", Time: time.Now()})
	require.Error(t, err)
}

func TestAncestorsExistAfterInsert(t *testing.T) {
	ctx := context.Background()
	s := New()
	path, err := event.ParsePath("/NBA/match/2021-06-20/MIL_BKN")
	require.NoError(t, err)
	id := mustID(t, "/NBA/match/2021-06-20/MIL_BKN.winner")

	nodes := []store.TreeNode{{ID: "/"}}
	for _, anc := range path.Ancestors()[1:] {
		parent, _ := anc.Parent()
		p := parent
		nodes = append(nodes, store.TreeNode{ID: anc, Parent: &p})
	}
	leafParent, _ := path.Parent()
	nodes = append(nodes, store.TreeNode{ID: path, Parent: &leafParent})

	ev := store.Event{ID: id, Announcement: &store.Announcement{OracleEventBytes: []byte("b")}}
	require.NoError(t, s.InsertEventWithAncestors(ctx, ev, nodes))

	rootChildren, err := s.Children(ctx, "/")
	require.NoError(t, err)
	require.Len(t, rootChildren, 1)
	require.Equal(t, event.Path("/NBA"), rootChildren[0].ID)

	leafChildren, err := s.Children(ctx, leafParent)
	require.NoError(t, err)
	require.Len(t, leafChildren, 1)
	require.Equal(t, path, leafChildren[0].ID)
}
