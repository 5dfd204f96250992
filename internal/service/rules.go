package service

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/avior/infuser/internal/domain"
)

// ParameterRule adds Parameters to every job whose path matches the
// doublestar glob Match. Patterns use forward slashes; job paths have their
// backslashes converted before matching.
type ParameterRule struct {
	Match      string
	Parameters []domain.CustomParameter
}

type ParameterRules struct {
	rules []ParameterRule
}

func NewParameterRules(rules []ParameterRule) (*ParameterRules, error) {
	for i, r := range rules {
		if r.Match == "" {
			return nil, fmt.Errorf("parameter rule %d: empty match pattern", i)
		}
		if !doublestar.ValidatePattern(r.Match) {
			return nil, fmt.Errorf("parameter rule %d: invalid pattern %q", i, r.Match)
		}
	}
	return &ParameterRules{rules: rules}, nil
}

// Apply returns params extended with the parameters of every matching rule,
// in rule order. Keys already present are never overwritten.
func (pr *ParameterRules) Apply(path string, params []domain.CustomParameter) []domain.CustomParameter {
	if pr == nil || len(pr.rules) == 0 {
		return params
	}

	name := strings.ReplaceAll(path, `\`, "/")
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		seen[p.Key] = true
	}

	for _, r := range pr.rules {
		ok, err := doublestar.Match(r.Match, name)
		if err != nil || !ok {
			continue
		}
		for _, p := range r.Parameters {
			if seen[p.Key] {
				continue
			}
			seen[p.Key] = true
			params = append(params, p)
		}
	}
	return params
}
