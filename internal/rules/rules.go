// Package rules evaluates the conditional clauses that gate whether a
// library or argument from a version descriptor applies to the current
// platform and feature-flag context.
package rules

import "github.com/yanquisalexander/launchcore/internal/platform"

// Action decides whether a matching rule includes or excludes its subject.
type Action string

const (
	// ActionAllow includes the subject when the rule matches.
	ActionAllow Action = "allow"
	// ActionDisallow excludes the subject when the rule matches.
	ActionDisallow Action = "disallow"
)

// OSMatcher narrows a rule to an operating system and optionally an
// architecture. Empty fields match anything.
type OSMatcher struct {
	Name string `json:"name,omitempty"`
	Arch string `json:"arch,omitempty"`
}

// Rule is one conditional clause from a descriptor. A missing action
// defaults to allow.
type Rule struct {
	Action   Action          `json:"action,omitempty"`
	OS       *OSMatcher      `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

// allows reports whether the rule's action is allow, treating an absent
// action as allow.
func (r Rule) allows() bool {
	return r.Action != ActionDisallow
}

// Applies evaluates a single rule against a platform and an optional
// feature-flag map.
//
// The feature handling is deliberately asymmetric: a feature mismatch
// downgrades a result that the OS clause left true, but a feature match
// never upgrades a result the OS clause already set to false. Launchers in
// the wild depend on this evaluation order, so it is preserved verbatim.
func (r Rule) Applies(p platform.Platform, features map[string]bool) bool {
	result := r.allows()

	if r.OS != nil {
		osMatch := (r.OS.Name == "" || r.OS.Name == p.OS) &&
			(r.OS.Arch == "" || r.OS.Arch == p.Arch)
		if r.allows() {
			result = osMatch
		} else {
			result = !osMatch
		}
	}

	if r.Features != nil {
		if features == nil {
			// A features clause with no feature context at all cannot match.
			result = !r.allows()
		} else {
			for name, expected := range r.Features {
				// A key absent from the supplied map counts as false.
				if features[name] != expected {
					result = !r.allows()
					break
				}
			}
		}
	}

	return result
}

// ShouldInclude reports whether a subject gated by the given rule list is
// included: unconditionally when the list is empty, otherwise when at least
// one rule in the list applies.
func ShouldInclude(list []Rule, p platform.Platform, features map[string]bool) bool {
	if len(list) == 0 {
		return true
	}
	for _, rule := range list {
		if rule.Applies(p, features) {
			return true
		}
	}
	return false
}
