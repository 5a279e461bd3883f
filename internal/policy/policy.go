package policy

import (
	"fmt"
	"strings"

	"plexsweep/internal/services"
)

// Decision classifies a collection during a sweep.
type Decision int

const (
	Keep Decision = iota
	RemovalCandidate
)

func (d Decision) String() string {
	switch d {
	case Keep:
		return "keep"
	case RemovalCandidate:
		return "remove"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// Result is the outcome of classifying one collection's label set.
type Result struct {
	Decision Decision
	// Matched lists the labels that satisfied the keep criterion. Empty for
	// removal candidates.
	Matched []string
	Reason  string
}

// Policy evaluates a collection's labels against the configured keep
// criteria. The zero criteria set ("no restriction configured") keeps every
// collection that has at least one label.
type Policy struct {
	names    []string
	patterns []pattern
}

// New compiles a policy from exact label names and glob patterns. Blank names
// and malformed patterns are configuration errors; there is no silent
// fallback to the default policy.
func New(names, patterns []string) (*Policy, error) {
	p := &Policy{}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, services.Wrap(services.ErrConfiguration, "policy", "compile", "blank label name", nil)
		}
		p.names = append(p.names, name)
	}
	for _, source := range patterns {
		compiled, err := compilePattern(source)
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "policy", "compile", fmt.Sprintf("pattern %q", source), err)
		}
		p.patterns = append(p.patterns, compiled)
	}
	return p, nil
}

// Restricted reports whether explicit keep criteria are configured.
func (p *Policy) Restricted() bool {
	return len(p.names) > 0 || len(p.patterns) > 0
}

// Classify is a pure function of the label set: it never touches the server.
func (p *Policy) Classify(labels []string) Result {
	if !p.Restricted() {
		if len(labels) == 0 {
			return Result{Decision: RemovalCandidate, Reason: "no labels"}
		}
		return Result{
			Decision: Keep,
			Matched:  append([]string(nil), labels...),
			Reason:   fmt.Sprintf("has labels: %s", strings.Join(labels, ", ")),
		}
	}

	if len(labels) == 0 {
		return Result{Decision: RemovalCandidate, Reason: "no labels"}
	}

	var matched []string
	for _, label := range labels {
		if p.labelMatches(label) {
			matched = append(matched, label)
		}
	}
	if len(matched) == 0 {
		return Result{Decision: RemovalCandidate, Reason: "no label matches configured keep criteria"}
	}
	return Result{
		Decision: Keep,
		Matched:  matched,
		Reason:   fmt.Sprintf("protected by: %s", strings.Join(matched, ", ")),
	}
}

// labelMatches combines names and patterns by union: matching either keeps
// the collection.
func (p *Policy) labelMatches(label string) bool {
	for _, name := range p.names {
		if label == name {
			return true
		}
	}
	for _, pat := range p.patterns {
		if pat.match(label) {
			return true
		}
	}
	return false
}
