package cypher

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternConfig overrides the textual rules used to recognize patterns. A nil
// config or an empty field means the built-in Cypher rule. Rules are RE2
// expressions; DefaultNodeRule and DefaultRelationshipRule document the
// capture groups each must define.
type PatternConfig struct {
	// NodeRule matches one node pattern. Required groups: var, labels.
	NodeRule string

	// RelationshipRule matches the entire text between two adjacent node
	// patterns. Required groups: arrow, left, right, var, types, hops.
	RelationshipRule string

	// TypeSeparator splits alternative relationship types. Default "|".
	TypeSeparator string

	// LeftArrow and RightArrow are the arrowhead literals the rewriter
	// writes. Defaults "<" and ">".
	LeftArrow  string
	RightArrow string
}

// DefaultPatternConfig returns the built-in Cypher rules.
func DefaultPatternConfig() *PatternConfig {
	return &PatternConfig{
		NodeRule:         DefaultNodeRule,
		RelationshipRule: DefaultRelationshipRule,
		TypeSeparator:    "|",
		LeftArrow:        "<",
		RightArrow:       ">",
	}
}

// compiledConfig is a PatternConfig resolved to compiled matchers and capture
// group indices. Immutable after construction and shared freely.
type compiledConfig struct {
	node *regexp.Regexp
	rel  *regexp.Regexp

	typeSep    string
	leftArrow  string
	rightArrow string

	nodeVar    int
	nodeLabels int

	relArrow int
	relLeft  int
	relRight int
	relVar   int
	relTypes int
	relHops  int
}

var defaultConfig = mustCompileConfig(DefaultPatternConfig())

func mustCompileConfig(cfg *PatternConfig) *compiledConfig {
	cc, err := compileConfig(cfg)
	if err != nil {
		panic(err)
	}
	return cc
}

// resolveConfig merges cfg over the defaults and compiles the result. nil and
// the all-default config share one compiled instance.
func resolveConfig(cfg *PatternConfig) (*compiledConfig, error) {
	if cfg == nil {
		return defaultConfig, nil
	}
	merged := *DefaultPatternConfig()
	if cfg.NodeRule != "" {
		merged.NodeRule = cfg.NodeRule
	}
	if cfg.RelationshipRule != "" {
		merged.RelationshipRule = cfg.RelationshipRule
	}
	if cfg.TypeSeparator != "" {
		merged.TypeSeparator = cfg.TypeSeparator
	}
	if cfg.LeftArrow != "" {
		merged.LeftArrow = cfg.LeftArrow
	}
	if cfg.RightArrow != "" {
		merged.RightArrow = cfg.RightArrow
	}
	if merged == *DefaultPatternConfig() {
		return defaultConfig, nil
	}
	return compileConfig(&merged)
}

func compileConfig(cfg *PatternConfig) (*compiledConfig, error) {
	var err error
	node := defaultNodePattern
	if cfg.NodeRule != DefaultNodeRule {
		if node, err = regexp.Compile(cfg.NodeRule); err != nil {
			return nil, fmt.Errorf("%w: node rule: %v", ErrConfig, err)
		}
	}
	rel := defaultRelationshipPattern
	if cfg.RelationshipRule != DefaultRelationshipRule {
		if rel, err = regexp.Compile(anchorRelationshipRule(cfg.RelationshipRule)); err != nil {
			return nil, fmt.Errorf("%w: relationship rule: %v", ErrConfig, err)
		}
	}

	cc := &compiledConfig{
		node:       node,
		rel:        rel,
		typeSep:    cfg.TypeSeparator,
		leftArrow:  cfg.LeftArrow,
		rightArrow: cfg.RightArrow,
	}

	var missing []string
	need := func(re *regexp.Regexp, rule, group string, idx *int) {
		*idx = re.SubexpIndex(group)
		if *idx < 0 {
			missing = append(missing, rule+" rule group "+group)
		}
	}
	need(node, "node", "var", &cc.nodeVar)
	need(node, "node", "labels", &cc.nodeLabels)
	need(rel, "relationship", "arrow", &cc.relArrow)
	need(rel, "relationship", "left", &cc.relLeft)
	need(rel, "relationship", "right", &cc.relRight)
	need(rel, "relationship", "var", &cc.relVar)
	need(rel, "relationship", "types", &cc.relTypes)
	need(rel, "relationship", "hops", &cc.relHops)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrConfig, strings.Join(missing, ", "))
	}
	return cc, nil
}
