package categorizer

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FallbackDefault is returned when no keyword rule matches.
const FallbackDefault = "Other"

// FallbackRule maps a category to the keywords that select it.
type FallbackRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

//go:embed fallback_rules.yaml
var fallbackRulesYAML []byte

var defaultFallbackRules = mustLoadFallbackRules(fallbackRulesYAML)

// LoadFallbackRules parses an ordered YAML list of rules. Keywords are
// upper-cased so matching is case-insensitive.
func LoadFallbackRules(data []byte) ([]FallbackRule, error) {
	var rules []FallbackRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("could not parse fallback rules: %w", err)
	}
	for i := range rules {
		if strings.TrimSpace(rules[i].Category) == "" {
			return nil, fmt.Errorf("fallback rule %d has no category", i+1)
		}
		if len(rules[i].Keywords) == 0 {
			return nil, fmt.Errorf("fallback rule %q has no keywords", rules[i].Category)
		}
		for j, kw := range rules[i].Keywords {
			rules[i].Keywords[j] = strings.ToUpper(kw)
		}
	}
	return rules, nil
}

func mustLoadFallbackRules(data []byte) []FallbackRule {
	rules, err := LoadFallbackRules(data)
	if err != nil {
		panic(err)
	}
	return rules
}

// FallbackRules returns a copy of the built-in rule table in declaration order.
func FallbackRules() []FallbackRule {
	out := make([]FallbackRule, len(defaultFallbackRules))
	for i, r := range defaultFallbackRules {
		out[i] = FallbackRule{Category: r.Category, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// FallbackCategory classifies description with the built-in keyword table.
func FallbackCategory(description string) string {
	return MatchFallbackRules(defaultFallbackRules, description)
}

// MatchFallbackRules returns the category of the first rule with a keyword
// contained in the upper-cased description, or FallbackDefault.
func MatchFallbackRules(rules []FallbackRule, description string) string {
	upper := strings.ToUpper(description)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(upper, kw) {
				return rule.Category
			}
		}
	}
	return FallbackDefault
}
