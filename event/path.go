// Package event implements the event namespace: slash-rooted paths,
// "<path>.<kind>" identifiers, the enumerated outcome kinds and their
// outcome spaces, and the canonical serialization signed inside an
// announcement.
package event

import (
	"fmt"
	"strings"

	"github.com/olivia-oracle/olivia/olerrors"
)

// maxPathLength bounds a path the way the engine bounds any
// externally supplied identifier: generous enough for real event
// trees, small enough to keep announcement bytes bounded.
const maxPathLength = 1024

// Path is a slash-rooted namespace path, e.g. "/NBA/match/2021-06-20/MIL_BKN".
// The root path is "/".
type Path string

// RootPath is the tree root.
const RootPath Path = "/"

// ParsePath validates and normalizes a path string.
func ParsePath(raw string) (Path, error) {
	if raw == "" || raw[0] != '/' {
		return "", fmt.Errorf("event: path %q must start with '/': %w", raw, olerrors.ErrMalformedID)
	}
	if len(raw) > maxPathLength {
		return "", fmt.Errorf("event: path %q exceeds %d bytes: %w", raw, maxPathLength, olerrors.ErrMalformedID)
	}
	if raw == "/" {
		return RootPath, nil
	}
	trimmed := strings.TrimSuffix(raw, "/")
	for _, seg := range strings.Split(trimmed[1:], "/") {
		if seg == "" {
			return "", fmt.Errorf("event: path %q has an empty segment: %w", raw, olerrors.ErrMalformedID)
		}
		if seg == "." || seg == ".." {
			return "", fmt.Errorf("event: path %q contains a relative segment: %w", raw, olerrors.ErrMalformedID)
		}
	}
	return Path(trimmed), nil
}

// Segments returns the non-empty path components, root excluded.
func (p Path) Segments() []string {
	if p == RootPath || p == "" {
		return nil
	}
	return strings.Split(string(p)[1:], "/")
}

// Parent returns the path with its last segment removed, and whether
// p had a parent at all (the root has none).
func (p Path) Parent() (Path, bool) {
	segs := p.Segments()
	if len(segs) == 0 {
		return "", false
	}
	if len(segs) == 1 {
		return RootPath, true
	}
	return Path("/" + strings.Join(segs[:len(segs)-1], "/")), true
}

// Ancestors returns every prefix path from the root down to, but not
// including, p itself, root first. Used by the tree manager to
// materialize ancestry.
func (p Path) Ancestors() []Path {
	segs := p.Segments()
	out := make([]Path, 0, len(segs))
	for i := range segs {
		if i == 0 {
			out = append(out, RootPath)
			continue
		}
		out = append(out, Path("/"+strings.Join(segs[:i], "/")))
	}
	return out
}

// LastSegment returns the final path component, or "" for the root.
func (p Path) LastSegment() string {
	segs := p.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

func (p Path) String() string { return string(p) }

// HasPrefix reports whether prefix is a prefix of or equal to p, i.e. prefix is
// RootPath or one of p's ancestors, or p itself. Used by the ingress
// dispatcher to route records to the source configured for their
// path's subtree.
func (p Path) HasPrefix(prefix Path) bool {
	if prefix == RootPath {
		return true
	}
	pSegs, prefixSegs := p.Segments(), prefix.Segments()
	if len(prefixSegs) > len(pSegs) {
		return false
	}
	for i, seg := range prefixSegs {
		if pSegs[i] != seg {
			return false
		}
	}
	return true
}
