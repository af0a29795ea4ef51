package event

import (
	"fmt"
	"strings"

	"github.com/olivia-oracle/olivia/olerrors"
)

// ID is a fully parsed event identifier, "<path>.<kind>".
type ID struct {
	raw  string
	Path Path
	Kind Kind
}

// ParseID splits an event id at its last '.', validates the path and
// parses the kind suffix.
func ParseID(raw string) (ID, error) {
	dot := strings.LastIndexByte(raw, '.')
	if dot < 0 {
		return ID{}, fmt.Errorf("event: id %q has no kind suffix: %w", raw, olerrors.ErrMalformedID)
	}
	p, err := ParsePath(raw[:dot])
	if err != nil {
		return ID{}, err
	}
	k, err := ParseKind(raw[dot+1:])
	if err != nil {
		return ID{}, err
	}
	return ID{raw: string(p) + "." + k.String(), Path: p, Kind: k}, nil
}

// String returns the canonical id string.
func (id ID) String() string { return id.raw }

// BaseDigitsID returns the event id of the digits event a predicate is
// a projection over: the same path, with a "digits_W" kind suffix.
func (id ID) BaseDigitsID() (ID, error) {
	if id.Kind.Tag != Predicate {
		return ID{}, fmt.Errorf("event: %q is not a predicate kind", id)
	}
	return ParseID(string(id.Path) + "." + id.Kind.BaseDigitsKindString())
}
