// Package memstore is the in-memory reference implementation of
// store.Port. It backs the engine's own tests, the tree manager's
// tests, and the cmd/oliviad demo binary; it is also
// what the `database.backend: in-memory` configuration option (an
// external concern) would wire up.
package memstore

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/olivia-oracle/olivia/event"
	"github.com/olivia-oracle/olivia/olerrors"
	"github.com/olivia-oracle/olivia/store"
)

// Store is a mutex-guarded in-memory store.Port. The engine holds no
// locks of its own, so every exported method here is safe for
// concurrent use from multiple ingress workers.
type Store struct {
	mu sync.RWMutex

	schemaVersion uint32
	initialized   bool

	meta *store.OracleMeta

	nodes  map[event.Path]store.TreeNode
	events map[string]store.Event
}

// New returns an empty, uninitialized store.
func New() *Store {
	return &Store{
		nodes:  make(map[event.Path]store.TreeNode),
		events: make(map[string]store.Event),
	}
}

func (s *Store) Init(ctx context.Context, schemaVersion uint32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized && s.schemaVersion != schemaVersion {
		return fmt.Errorf("memstore: running schema %d but store was initialized at %d: %w",
			schemaVersion, s.schemaVersion, olerrors.ErrSchemaMismatch)
	}
	s.schemaVersion = schemaVersion
	s.initialized = true
	return nil
}

func (s *Store) GetMeta(ctx context.Context) (store.OracleMeta, bool, error) {
	if err := ctx.Err(); err != nil {
		return store.OracleMeta{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.meta == nil {
		return store.OracleMeta{}, false, nil
	}
	return *s.meta, true, nil
}

func (s *Store) SetMeta(ctx context.Context, meta store.OracleMeta) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meta != nil {
		if s.meta.SchemaVersion != meta.SchemaVersion || !s.meta.PublicKey.Equal(meta.PublicKey) {
			return fmt.Errorf("memstore: oracle metadata already set to a different value: %w", olerrors.ErrIdentityMismatch)
		}
		return nil
	}
	m := meta
	s.meta = &m
	return nil
}

func (s *Store) InsertNodeIfAbsent(ctx context.Context, node store.TreeNode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertNodeIfAbsentLocked(node)
}

func (s *Store) insertNodeIfAbsentLocked(node store.TreeNode) error {
	if _, exists := s.nodes[node.ID]; exists {
		return nil
	}
	s.nodes[node.ID] = node
	return nil
}

func (s *Store) InsertEventWithAncestors(ctx context.Context, ev store.Event, ancestors []store.TreeNode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range ancestors {
		if err := s.insertNodeIfAbsentLocked(n); err != nil {
			return err
		}
	}

	key := ev.ID.String()
	existing, exists := s.events[key]
	if !exists {
		s.events[key] = ev
		return nil
	}

	if existing.Announcement == nil || ev.Announcement == nil ||
		!bytes.Equal(existing.Announcement.OracleEventBytes, ev.Announcement.OracleEventBytes) {
		return fmt.Errorf("memstore: event %s already exists with a different announcement: %w",
			key, olerrors.ErrExistsDifferentAnnouncement)
	}
	return nil
}

func (s *Store) GetEvent(ctx context.Context, id event.ID) (store.Event, bool, error) {
	if err := ctx.Err(); err != nil {
		return store.Event{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.events[id.String()]
	return ev, ok, nil
}

func (s *Store) SetAttestation(ctx context.Context, id event.ID, att store.Attestation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := id.String()
	ev, ok := s.events[key]
	if !ok {
		return fmt.Errorf("memstore: %s: %w", key, olerrors.ErrNoSuchEvent)
	}
	if ev.Attestation != nil {
		return fmt.Errorf("memstore: %s: %w", key, olerrors.ErrAlreadyAttested)
	}
	a := att
	ev.Attestation = &a
	s.events[key] = ev
	return nil
}

func (s *Store) EarliestUnattested(ctx context.Context, before time.Time, limit int) ([]store.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Event
	for _, ev := range s.events {
		if ev.Attestation != nil || ev.Announcement == nil {
			continue
		}
		if ev.ExpectedOutcomeTime.Before(before) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ExpectedOutcomeTime.Before(out[j].ExpectedOutcomeTime)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) Children(ctx context.Context, path event.Path) ([]store.TreeNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.TreeNode
	for _, n := range s.nodes {
		if n.Parent != nil && *n.Parent == path {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) MinMaxChild(ctx context.Context, path event.Path) (store.TreeNode, store.TreeNode, bool, error) {
	children, err := s.Children(ctx, path)
	if err != nil {
		return store.TreeNode{}, store.TreeNode{}, false, err
	}
	if len(children) == 0 {
		return store.TreeNode{}, store.TreeNode{}, false, nil
	}
	return children[0], children[len(children)-1], true, nil
}

var _ store.Port = (*Store)(nil)
