// Package tree maintains the parent/child namespace: it ensures every
// event's ancestor paths exist as tree nodes before (or atomically
// with) the event itself being inserted.
package tree

import (
	"context"

	"github.com/olivia-oracle/olivia/event"
	"github.com/olivia-oracle/olivia/store"
)

// Manager builds and persists the ancestor chain for a path. The
// insert-if-absent recipe at each level is what keeps it safe under
// concurrent insertion of sibling events: two workers racing to create
// "/NBA/match" both succeed, because neither overwrites the other.
type Manager struct {
	port store.Port
}

// NewManager returns a tree Manager backed by the given persistence port.
func NewManager(port store.Port) *Manager {
	return &Manager{port: port}
}

// BuildNodes returns the full chain of tree nodes from the root down
// to, and including, path — each with its parent pointer set — in an
// order safe to insert parent-before-child. Engines pass this directly
// to store.Port.InsertEventWithAncestors; EnsureAncestors below uses it
// to materialize ancestry independent of any event insert.
func BuildNodes(path event.Path) []store.TreeNode {
	ancestors := path.Ancestors()
	nodes := make([]store.TreeNode, 0, len(ancestors)+1)
	for i, p := range ancestors {
		if i == 0 {
			nodes = append(nodes, store.TreeNode{ID: p})
			continue
		}
		parent := ancestors[i-1]
		nodes = append(nodes, store.TreeNode{ID: p, Parent: &parent})
	}
	if len(ancestors) == 0 {
		// path is the root itself: a single node with no parent.
		return append(nodes, store.TreeNode{ID: path})
	}
	leafParent := ancestors[len(ancestors)-1]
	nodes = append(nodes, store.TreeNode{ID: path, Parent: &leafParent})
	return nodes
}

// EnsureAncestors materializes every prefix of path as a tree node,
// root first, using insert-if-absent at each level. It is idempotent
// and does not insert path itself — callers that are about to insert
// an event at path should instead pass BuildNodes(path) to
// InsertEventWithAncestors so ancestry and the event land in the same
// atomic unit.
func (m *Manager) EnsureAncestors(ctx context.Context, path event.Path) error {
	nodes := BuildNodes(path)
	if len(nodes) == 0 {
		return nil
	}
	for _, n := range nodes[:len(nodes)-1] {
		if err := m.port.InsertNodeIfAbsent(ctx, n); err != nil {
			return err
		}
	}
	return nil
}
