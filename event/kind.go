package event

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olivia-oracle/olivia/olerrors"
)

// Tag identifies which of the enumerated event kinds an id names.
type Tag int

const (
	Vs Tag = iota
	Winner
	Occur
	Digits
	Predicate
)

func (t Tag) String() string {
	switch t {
	case Vs:
		return "vs"
	case Winner:
		return "winner"
	case Occur:
		return "occur"
	case Digits:
		return "digits"
	case Predicate:
		return "predicate"
	default:
		return "unknown"
	}
}

// Comparator is one of the three predicate operators over a digits event.
type Comparator string

const (
	Eq Comparator = "eq"
	Lt Comparator = "lt"
	Gt Comparator = "gt"
)

// Kind is the parsed suffix after the last '.' of an event id. Digits
// carries its fixed width W; Predicate carries a reference to the
// width and comparator of the digits event it is a read-time
// projection over (§9: predicates are never independently announced).
type Kind struct {
	Tag        Tag
	Width      int        // Digits, Predicate
	Comparator Comparator // Predicate
	Threshold  string     // Predicate: W-digit decimal threshold
}

// Slots returns the number of independently-nonced outcome slots this
// kind's announcement commits to: 1 for vs/winner/occur, W for digits.
// Predicate has no slots of its own — it is derived, not announced.
func (k Kind) Slots() int {
	switch k.Tag {
	case Digits:
		return k.Width
	case Predicate:
		return 0
	default:
		return 1
	}
}

// ParseKind parses the suffix after an event id's last '.'.
func ParseKind(raw string) (Kind, error) {
	switch {
	case raw == "vs":
		return Kind{Tag: Vs}, nil
	case raw == "winner":
		return Kind{Tag: Winner}, nil
	case raw == "occur":
		return Kind{Tag: Occur}, nil
	case strings.HasPrefix(raw, "digits_"):
		w, err := strconv.Atoi(strings.TrimPrefix(raw, "digits_"))
		if err != nil || w < 1 || w > 18 {
			return Kind{}, fmt.Errorf("event: malformed digits width in %q: %w", raw, olerrors.ErrMalformedID)
		}
		return Kind{Tag: Digits, Width: w}, nil
	case strings.HasPrefix(raw, "predicate_"):
		return parsePredicateKind(raw)
	default:
		return Kind{}, fmt.Errorf("event: unknown kind %q: %w", raw, olerrors.ErrMalformedID)
	}
}

// parsePredicateKind parses "predicate_<width>_<cmp>_<threshold>", e.g.
// "predicate_5_gt_29345" for "is the 5-digit value greater than 29345?"
func parsePredicateKind(raw string) (Kind, error) {
	parts := strings.SplitN(strings.TrimPrefix(raw, "predicate_"), "_", 3)
	if len(parts) != 3 {
		return Kind{}, fmt.Errorf("event: malformed predicate kind %q: %w", raw, olerrors.ErrMalformedID)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 1 || w > 18 {
		return Kind{}, fmt.Errorf("event: malformed predicate width in %q: %w", raw, olerrors.ErrMalformedID)
	}
	cmp := Comparator(parts[1])
	if cmp != Eq && cmp != Lt && cmp != Gt {
		return Kind{}, fmt.Errorf("event: unknown predicate comparator in %q: %w", raw, olerrors.ErrMalformedID)
	}
	threshold := parts[2]
	if len(threshold) != w {
		return Kind{}, fmt.Errorf("event: predicate threshold %q does not match width %d: %w", threshold, w, olerrors.ErrMalformedID)
	}
	for _, r := range threshold {
		if r < '0' || r > '9' {
			return Kind{}, fmt.Errorf("event: predicate threshold %q is not decimal: %w", threshold, olerrors.ErrMalformedID)
		}
	}
	return Kind{Tag: Predicate, Width: w, Comparator: cmp, Threshold: threshold}, nil
}

// String renders the kind back to its event-id suffix form.
func (k Kind) String() string {
	switch k.Tag {
	case Digits:
		return fmt.Sprintf("digits_%d", k.Width)
	case Predicate:
		return fmt.Sprintf("predicate_%d_%s_%s", k.Width, k.Comparator, k.Threshold)
	default:
		return k.Tag.String()
	}
}

// BaseDigitsKindString returns the event-id suffix of the digits event
// this predicate is a projection over, at the same path.
func (k Kind) BaseDigitsKindString() string {
	return fmt.Sprintf("digits_%d", k.Width)
}
