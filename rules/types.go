// Package rules: rule specification and compiled-rule types.
//
// This file declares Direction, the callback signatures, the caller-facing
// Spec record and the validated Rule form RuleSet stores.
package rules

import (
	"fmt"
	"strings"
)

// Direction selects which way the cursor walks a domain.
type Direction int

const (
	// Rightward walks from the first real segment toward the end. Default.
	Rightward Direction = iota

	// Leftward walks from the last real segment toward the beginning.
	Leftward
)

// String returns the lowercase textual name of the direction.
func (d Direction) String() string {
	switch d {
	case Rightward:
		return "rightward"
	case Leftward:
		return "leftward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection converts a direction string (case-insensitive) into a
// Direction. The empty string defaults to Rightward; anything else outside
// the two known names is ErrBadDirection.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Rightward, nil
	case "rightward":
		return Rightward, nil
	case "leftward":
		return Leftward, nil
	default:
		return 0, fmt.Errorf("rules: parse direction %q: %w", s, ErrBadDirection)
	}
}

// Predicate tests the window centered on the current position. It is the
// contract of Spec.Where, Spec.Filter and Spec.Result alike.
type Predicate func(w *Window) bool

// Action mutates segments reachable through the window. Structural changes
// go through Window.InsertLeft/InsertRight and Segment.Clear only.
type Action func(w *Window)

// Spec is the caller-facing description of one rule, as accepted by
// RuleSet.Add. Zero values mean "unconstrained": no domain, no tier, no
// filter, a Where that always holds, a Do that does nothing, no
// post-condition, rightward direction.
type Spec struct {
	// Domain names a feature whose shared-cell runs partition the word;
	// each run is processed independently. Empty means the whole word is
	// one domain.
	Domain string

	// Tier names a feature restricting the walk to segments where it is
	// defined, with adjacent same-cell runs collapsed into pseudo-segments.
	Tier string

	// Filter removes positions whose centered window fails it. Boundaries
	// always pass.
	Filter Predicate

	// Where gates execution per position. Nil means always true.
	Where Predicate

	// Do executes at each position Where admits. Nil means no-op.
	Do Action

	// Result, when set, turns each execution into a transaction: staged
	// mutations are materialized and Result is evaluated on the cleaned
	// window; false rolls the position back completely.
	Result Predicate

	// Direction is "rightward" (default, also for "") or "leftward",
	// case-insensitive. Anything else is rejected at registration.
	Direction string
}

// Rule is the validated, compiled form of a Spec, owned by its RuleSet.
type Rule struct {
	name   string
	domain string
	tier   string
	filter Predicate
	where  Predicate
	do     Action
	result Predicate
	dir    Direction
}

// Name returns the name the rule was registered under.
func (r *Rule) Name() string { return r.name }

// Direction returns the walk direction.
func (r *Rule) Direction() Direction { return r.dir }

// Domain returns the domain feature name, or "" when unset.
func (r *Rule) Domain() string { return r.domain }

// Tier returns the tier feature name, or "" when unset.
func (r *Rule) Tier() string { return r.tier }

// Transactional reports whether the rule carries a Result post-condition.
func (r *Rule) Transactional() bool { return r.result != nil }
