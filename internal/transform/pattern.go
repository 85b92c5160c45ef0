package transform

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// Separator divides the match expression from the replace template.
	Separator = " -> "
	// DefaultPattern matches any name and keeps it unchanged.
	DefaultPattern = ".* -> $0"
)

// Pattern is a compiled "<match> -> <replace>" rule.
type Pattern struct {
	source   string
	match    *regexp.Regexp
	template []token
}

// token is either literal text or a capture group reference (group >= 0).
type token struct {
	literal string
	group   int
}

// ParsePattern compiles a "<match> -> <replace>" string. Only the first
// separator splits; anything after it belongs to the template. A missing or
// empty template means "$0".
func ParsePattern(s string) (*Pattern, error) {
	matchExpr, replace, _ := strings.Cut(s, Separator)
	if matchExpr == "" {
		return nil, fmt.Errorf("pattern %q has an empty match expression", s)
	}
	if replace == "" {
		replace = "$0"
	}

	re, err := regexp.Compile(matchExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid match expression %q: %w", matchExpr, err)
	}

	return &Pattern{
		source:   s,
		match:    re,
		template: parseTemplate(replace, re.NumSubexp()+1),
	}, nil
}

// MustParsePattern is like ParsePattern but panics on error.
func MustParsePattern(s string) *Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pattern) String() string { return p.source }

// MatchExpr returns the regular expression half of the pattern.
func (p *Pattern) MatchExpr() string { return p.match.String() }

// Replace runs the match against name and expands the template. The second
// result is false when name does not match.
func (p *Pattern) Replace(name string) (string, bool) {
	loc := p.match.FindStringSubmatchIndex(name)
	if loc == nil {
		return "", false
	}

	var b strings.Builder
	for _, t := range p.template {
		if t.group < 0 {
			b.WriteString(t.literal)
			continue
		}
		start, end := loc[2*t.group], loc[2*t.group+1]
		if start >= 0 {
			b.WriteString(name[start:end])
		}
	}
	return b.String(), true
}

// parseTemplate tokenizes a replace template in a single pass. "$N" takes the
// longest run of digits that names an existing group; otherwise the text is
// kept literally. Group values are never rescanned.
func parseTemplate(tmpl string, groups int) []token {
	var tokens []token
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, token{literal: lit.String(), group: -1})
			lit.Reset()
		}
	}

	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '$' {
			lit.WriteByte(tmpl[i])
			continue
		}

		j := i + 1
		for j < len(tmpl) && tmpl[j] >= '0' && tmpl[j] <= '9' {
			j++
		}
		digits := tmpl[i+1 : j]

		n, width := longestGroupPrefix(digits, groups)
		if width == 0 {
			lit.WriteByte('$')
			continue
		}

		flush()
		tokens = append(tokens, token{group: n})
		i += width
	}
	flush()

	return tokens
}

func longestGroupPrefix(digits string, groups int) (group, width int) {
	for w := len(digits); w > 0; w-- {
		n := 0
		for _, c := range digits[:w] {
			n = n*10 + int(c-'0')
			if n >= groups {
				break
			}
		}
		if n < groups {
			return n, w
		}
	}
	return 0, 0
}
