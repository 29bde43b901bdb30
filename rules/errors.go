package rules

import "errors"

// Sentinel errors for rule registration and application. Branch with
// errors.Is; call sites attach rule names and positions via %w wrapping.
var (
	// ErrBadDirection indicates a direction string outside {rightward, leftward}.
	ErrBadDirection = errors.New("rules: direction must be \"rightward\" or \"leftward\"")

	// ErrEmptyRuleName indicates a rule registered under the empty name.
	ErrEmptyRuleName = errors.New("rules: rule name is empty")

	// ErrUnknownRule indicates an operation referenced an unregistered rule.
	ErrUnknownRule = errors.New("rules: unknown rule")

	// ErrNilRegistry indicates a RuleSet constructed without a feature registry.
	ErrNilRegistry = errors.New("rules: feature registry is nil")

	// ErrNilSegment indicates a word containing a nil entry.
	ErrNilSegment = errors.New("rules: word contains a nil segment")

	// ErrBadSegment indicates a word entry that is not a recognized segment type.
	ErrBadSegment = errors.New("rules: word element is not a recognized segment")
)
