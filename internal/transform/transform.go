// Package transform turns label names into new names using a
// "<match> -> <replace>" pattern, an optional case and an optional trim.
// Everything here is pure.
package transform

import (
	"strings"

	"golang.org/x/text/language"
)

type Options struct {
	Pattern *Pattern
	Case    Case
	Trim    bool
	// Locale is used by LocaleLower and LocaleUpper; language.Und when unset.
	Locale language.Tag
}

// Apply computes the new name for name. The second result is false when name
// does not match the pattern. Case conversion runs before trimming.
func Apply(name string, opts Options) (string, bool) {
	pattern := opts.Pattern
	if pattern == nil {
		pattern = MustParsePattern(DefaultPattern)
	}

	out, ok := pattern.Replace(name)
	if !ok {
		return "", false
	}

	out = opts.Case.Apply(out, opts.Locale)
	if opts.Trim {
		out = strings.TrimSpace(out)
	}
	return out, true
}
