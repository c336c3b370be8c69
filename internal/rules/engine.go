// Package rules categorizes transaction descriptions with a priority
// ordered list of exact and substring rules.
package rules

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

var ErrInvalidRule = errors.New("invalid rule")

// Rule assigns a category to descriptions equal to Exact or containing
// Contains. A rule with neither category nor subcategory matches but
// classifies nothing, which shadows lower-priority rules.
type Rule struct {
	Name        string `yaml:"name"`
	Priority    int    `yaml:"priority"`
	Exact       string `yaml:"exact"`
	Contains    string `yaml:"contains"`
	Category    string `yaml:"category"`
	Subcategory string `yaml:"subcategory"`
}

// RuleSet is the top-level YAML document.
type RuleSet struct {
	Rules []Rule `yaml:"rules"`
}

func (r Rule) matches(description string) bool {
	if r.Exact != "" && r.Exact == description {
		return true
	}

	return r.Contains != "" && strings.Contains(description, r.Contains)
}

func (r Rule) validate() error {
	if strings.TrimSpace(r.Exact) == "" && strings.TrimSpace(r.Contains) == "" {
		return fmt.Errorf("%w: needs exact or contains", ErrInvalidRule)
	}

	return nil
}

// Engine evaluates rules from highest to lowest priority. Rules of equal
// priority keep their source order.
type Engine struct {
	rules []Rule
}

func NewEngine(rules []Rule) (*Engine, error) {
	for i, r := range rules {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i+1, r.Name, err)
		}
	}

	sorted := make([]Rule, len(rules))
	copy(sorted, rules)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	return &Engine{rules: sorted}, nil
}

// Empty is an engine without rules; it never classifies.
func Empty() *Engine {
	return &Engine{}
}

// Classify returns the classification of the first matching rule.
func (e *Engine) Classify(description string) (transaction.Classification, bool) {
	r, ok := e.Match(description)
	if !ok {
		return transaction.Classification{}, false
	}

	c := transaction.Classification{Category: r.Category, Subcategory: r.Subcategory}

	return c, !c.IsZero()
}

// Match returns the first rule matching description, if any.
func (e *Engine) Match(description string) (Rule, bool) {
	for _, r := range e.rules {
		if r.matches(description) {
			return r, true
		}
	}

	return Rule{}, false
}

// Rules returns the rules in evaluation order.
func (e *Engine) Rules() []Rule {
	out := make([]Rule, len(e.rules))
	copy(out, e.rules)

	return out
}
