// Package rules: the RuleSet scheduler.
//
// A RuleSet owns named rules plus two scheduling lists: order — a sequence
// of groups applied one per cycle — and persist — rules applied before the
// first group, between every two groups, and after the last. Rule names in
// the scheduling lists need not exist at call time; each application attempt
// on a missing name reports an error for that attempt without aborting the
// run.
package rules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/phonolab/phonoseg/feature"
	"github.com/phonolab/phonoseg/segment"
)

// RuleSet is a named collection of rules with an application schedule.
type RuleSet struct {
	reg     *feature.Registry
	rules   map[string]*Rule
	order   [][]string
	persist []string

	lastCount int            // count of the most recent Apply
	counts    map[string]int // per-rule counts of the most recent ApplyAll
}

// NewRuleSet creates an empty rule set validating against reg.
func NewRuleSet(reg *feature.Registry) (*RuleSet, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}

	return &RuleSet{
		reg:    reg,
		rules:  make(map[string]*Rule),
		counts: make(map[string]int),
	}, nil
}

// Add registers a rule under name, replacing any previous rule of the same
// name. Configuration errors — a bad direction string, an unregistered
// domain or tier feature — reject this rule only.
func (rs *RuleSet) Add(name string, spec Spec) error {
	r, err := compile(rs.reg, name, spec)
	if err != nil {
		return err
	}
	rs.rules[name] = r

	return nil
}

// AddAll registers a batch of rules. Each rule succeeds or fails
// independently; the returned error joins the per-rule failures and is nil
// only when every rule succeeded. Names are processed in sorted order for
// deterministic error reporting.
func (rs *RuleSet) AddAll(specs map[string]Spec) error {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := rs.Add(name, specs[name]); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Change replaces an existing rule; unlike Add it requires the name to be
// registered already.
func (rs *RuleSet) Change(name string, spec Spec) error {
	if _, ok := rs.rules[name]; !ok {
		return fmt.Errorf("rules: change %q: %w", name, ErrUnknownRule)
	}

	return rs.Add(name, spec)
}

// Drop removes the named rules. Unknown names are ignored. Scheduling lists
// are left as-is: a dropped name simply starts erroring per application
// attempt.
func (rs *RuleSet) Drop(names ...string) {
	for _, name := range names {
		delete(rs.rules, name)
	}
}

// Rules returns the registered rule names, sorted.
func (rs *RuleSet) Rules() []string {
	out := make([]string, 0, len(rs.rules))
	for name := range rs.rules {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Get returns the compiled rule registered under name.
func (rs *RuleSet) Get(name string) (*Rule, bool) {
	r, ok := rs.rules[name]
	return r, ok
}

// Apply runs one rule across word and returns the output word and the
// number of positions at which the rule committed. The word is not spliced
// in place — structural changes surface in the returned slice — but segment
// contents are mutated directly, as the aliasing model requires. An unknown
// rule name or a malformed word aborts with no mutation.
func (rs *RuleSet) Apply(name string, word []segment.Segment) ([]segment.Segment, int, error) {
	r, ok := rs.rules[name]
	if !ok {
		return nil, 0, fmt.Errorf("rules: apply %q: %w", name, ErrUnknownRule)
	}
	out, n, err := applyOne(rs.reg, r, word)
	if err != nil {
		return nil, 0, fmt.Errorf("rules: apply %q: %w", name, err)
	}
	rs.lastCount = n

	return out, n, nil
}

// Order replaces the scheduling order: each group is a list of rule names
// applied together as one unit per cycle.
func (rs *RuleSet) Order(groups ...[]string) {
	rs.order = make([][]string, 0, len(groups))
	for _, g := range groups {
		rs.order = append(rs.order, append([]string(nil), g...))
	}
}

// OrderNames is the singleton-group convenience: each bare name becomes its
// own group.
func (rs *RuleSet) OrderNames(names ...string) {
	groups := make([][]string, 0, len(names))
	for _, name := range names {
		groups = append(groups, []string{name})
	}
	rs.order = groups
}

// Persist replaces the persistent list: rules applied before the first
// group, between every two groups, and after the last.
func (rs *RuleSet) Persist(names ...string) {
	rs.persist = append([]string(nil), names...)
}

// ApplyAll drives the whole schedule across word: persist, group 1,
// persist, group 2, …, persist. Per-rule application counts accumulate over
// the run and are available from Counts. Missing rule names produce one
// error per application attempt; the errors are joined and returned after
// the run completes rather than aborting it.
func (rs *RuleSet) ApplyAll(word []segment.Segment) ([]segment.Segment, error) {
	if err := validateWord(word); err != nil {
		return nil, err
	}

	rs.counts = make(map[string]int)
	var errs []error

	runOne := func(name string, w []segment.Segment) []segment.Segment {
		out, n, err := rs.Apply(name, w)
		if err != nil {
			errs = append(errs, err)
			return w
		}
		rs.counts[name] += n

		return out
	}
	runPersist := func(w []segment.Segment) []segment.Segment {
		for _, name := range rs.persist {
			w = runOne(name, w)
		}

		return w
	}

	out := word
	for _, group := range rs.order {
		out = runPersist(out)
		for _, name := range group {
			out = runOne(name, out)
		}
	}
	out = runPersist(out)

	return out, errors.Join(errs...)
}

// Count returns the application count of the most recent Apply.
func (rs *RuleSet) Count() int { return rs.lastCount }

// Counts returns a copy of the per-rule application counts accumulated by
// the most recent ApplyAll.
func (rs *RuleSet) Counts() map[string]int {
	out := make(map[string]int, len(rs.counts))
	for name, n := range rs.counts {
		out[name] = n
	}

	return out
}

// compile validates a Spec into a Rule.
func compile(reg *feature.Registry, name string, spec Spec) (*Rule, error) {
	if name == "" {
		return nil, ErrEmptyRuleName
	}
	dir, err := ParseDirection(spec.Direction)
	if err != nil {
		return nil, fmt.Errorf("rules: add %q: %w", name, err)
	}
	if spec.Domain != "" && !reg.Exists(spec.Domain) {
		return nil, fmt.Errorf("rules: add %q: domain %q: %w", name, spec.Domain, feature.ErrUnknownFeature)
	}
	if spec.Tier != "" && !reg.Exists(spec.Tier) {
		return nil, fmt.Errorf("rules: add %q: tier %q: %w", name, spec.Tier, feature.ErrUnknownFeature)
	}

	return &Rule{
		name:   name,
		domain: spec.Domain,
		tier:   spec.Tier,
		filter: spec.Filter,
		where:  spec.Where,
		do:     spec.Do,
		result: spec.Result,
		dir:    dir,
	}, nil
}
