package event

import (
	"fmt"
	"strings"

	"github.com/olivia-oracle/olivia/olerrors"
)

// Teams returns the two team literals embedded in the last path
// segment of a vs/winner event, e.g. "MIL_BKN" -> ("MIL", "BKN").
func (id ID) Teams() (string, string, error) {
	if id.Kind.Tag != Vs && id.Kind.Tag != Winner {
		return "", "", fmt.Errorf("event: %q is not a vs/winner kind", id)
	}
	seg := id.Path.LastSegment()
	parts := strings.SplitN(seg, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("event: path segment %q does not encode two teams: %w", seg, olerrors.ErrMalformedID)
	}
	return parts[0], parts[1], nil
}

const drawLiteral = "draw"

// OutcomeSet returns the full, flat set of outcome literals for kinds
// whose space is enumerable directly (vs, winner, occur). digits and
// predicate outcomes are not enumerated (10^W is not meant to be
// materialized); use ValidateOutcome instead.
func (id ID) OutcomeSet() ([]string, error) {
	switch id.Kind.Tag {
	case Vs:
		a, b, err := id.Teams()
		if err != nil {
			return nil, err
		}
		return []string{a, b, drawLiteral}, nil
	case Winner:
		a, b, err := id.Teams()
		if err != nil {
			return nil, err
		}
		return []string{a, b}, nil
	case Occur:
		return []string{"true"}, nil
	default:
		return nil, fmt.Errorf("event: kind %s has no enumerable outcome set", id.Kind.Tag)
	}
}

// ValidateOutcome reports whether literal is a member of id's outcome
// space, without requiring the full set to be enumerated for digits.
func (id ID) ValidateOutcome(literal string) error {
	switch id.Kind.Tag {
	case Vs, Winner, Occur:
		set, err := id.OutcomeSet()
		if err != nil {
			return err
		}
		for _, v := range set {
			if v == literal {
				return nil
			}
		}
		return fmt.Errorf("event: %q not in outcome set for %s: %w", literal, id, olerrors.ErrOutcomeNotInKind)
	case Digits:
		if len(literal) != id.Kind.Width {
			return fmt.Errorf("event: outcome %q is not %d digits: %w", literal, id.Kind.Width, olerrors.ErrOutcomeNotInKind)
		}
		for _, r := range literal {
			if r < '0' || r > '9' {
				return fmt.Errorf("event: outcome %q is not decimal: %w", literal, olerrors.ErrOutcomeNotInKind)
			}
		}
		return nil
	default:
		return fmt.Errorf("event: kind %s has no independently validated outcome (derived only)", id.Kind.Tag)
	}
}

// Slots decomposes a validated outcome literal into its per-slot
// values: a single element for vs/winner/occur, one decimal digit per
// slot for digits_W, in most-significant-first order matching slot
// index 0..W-1.
func (id ID) Slots(literal string) ([]string, error) {
	if err := id.ValidateOutcome(literal); err != nil {
		return nil, err
	}
	switch id.Kind.Tag {
	case Digits:
		out := make([]string, len(literal))
		for i, r := range literal {
			out[i] = string(r)
		}
		return out, nil
	default:
		return []string{literal}, nil
	}
}

// DigitOutcomeSet returns the ten candidate values {"0".."9"} a single
// digits slot may anticipate.
func DigitOutcomeSet() []string {
	return []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
}

// EvaluatePredicate evaluates a predicate kind's boolean projection
// over an already-attested base digits outcome. Predicates are never
// independently announced (§9); this is the entire derivation.
func EvaluatePredicate(k Kind, baseOutcome string) (bool, error) {
	if k.Tag != Predicate {
		return false, fmt.Errorf("event: kind %s is not a predicate", k.Tag)
	}
	if len(baseOutcome) != k.Width || len(k.Threshold) != k.Width {
		return false, fmt.Errorf("event: predicate width mismatch: base=%d threshold=%d want=%d", len(baseOutcome), len(k.Threshold), k.Width)
	}
	switch k.Comparator {
	case Eq:
		return baseOutcome == k.Threshold, nil
	case Lt:
		return baseOutcome < k.Threshold, nil
	case Gt:
		return baseOutcome > k.Threshold, nil
	default:
		return false, fmt.Errorf("event: unknown comparator %q", k.Comparator)
	}
}
