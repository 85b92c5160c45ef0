package transform

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ettle/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Case selects a casing applied after template expansion.
type Case int

const (
	Keep Case = iota
	Camel
	Capital
	Constant
	Dot
	Kebab
	Lower
	LowerFirst
	LocaleLower
	LocaleUpper
	No
	Pascal
	Path
	Sentence
	Snake
	Sponge
	Swap
	Title
	Train
	Upper
	UpperFirst

	numCases
)

var caseNames = [numCases]string{
	Keep:        "",
	Camel:       "camel",
	Capital:     "capital",
	Constant:    "constant",
	Dot:         "dot",
	Kebab:       "kebab",
	Lower:       "lower",
	LowerFirst:  "lowerFirst",
	LocaleLower: "localeLower",
	LocaleUpper: "localeUpper",
	No:          "no",
	Pascal:      "pascal",
	Path:        "path",
	Sentence:    "sentence",
	Snake:       "snake",
	Sponge:      "sponge",
	Swap:        "swap",
	Title:       "title",
	Train:       "train",
	Upper:       "upper",
	UpperFirst:  "upperFirst",
}

type caseFunc func(s string, locale language.Tag) string

var caseFuncs = [numCases]caseFunc{
	Keep:        func(s string, _ language.Tag) string { return s },
	Camel:       func(s string, _ language.Tag) string { return joinCompact(s, true) },
	Capital:     func(s string, _ language.Tag) string { return words.ToCase(s, strcase.TitleCase, ' ') },
	Constant:    func(s string, _ language.Tag) string { return words.ToSNAKE(s) },
	Dot:         func(s string, _ language.Tag) string { return words.ToCase(s, strcase.LowerCase, '.') },
	Kebab:       func(s string, _ language.Tag) string { return words.ToKebab(s) },
	Lower:       func(s string, _ language.Tag) string { return strings.ToLower(s) },
	LowerFirst:  func(s string, _ language.Tag) string { return mapFirst(s, unicode.ToLower) },
	LocaleLower: func(s string, t language.Tag) string { return cases.Lower(t).String(s) },
	LocaleUpper: func(s string, t language.Tag) string { return cases.Upper(t).String(s) },
	No:          func(s string, _ language.Tag) string { return words.ToCase(s, strcase.LowerCase, ' ') },
	Pascal:      func(s string, _ language.Tag) string { return joinCompact(s, false) },
	Path:        func(s string, _ language.Tag) string { return words.ToCase(s, strcase.LowerCase, '/') },
	Sentence:    func(s string, _ language.Tag) string { return sentenceCase(s) },
	Snake:       func(s string, _ language.Tag) string { return words.ToSnake(s) },
	Sponge:      func(s string, _ language.Tag) string { return spongeCase(s) },
	Swap:        func(s string, _ language.Tag) string { return swapCase(s) },
	Title:       func(s string, _ language.Tag) string { return titleCase(s) },
	Train:       func(s string, _ language.Tag) string { return words.ToCase(s, strcase.TitleCase, '-') },
	Upper:       func(s string, _ language.Tag) string { return strings.ToUpper(s) },
	UpperFirst:  func(s string, _ language.Tag) string { return mapFirst(s, unicode.ToUpper) },
}

// Cases lists every selectable case, in flag-help order.
func Cases() []Case {
	out := make([]Case, 0, numCases-1)
	for c := Camel; c < numCases; c++ {
		out = append(out, c)
	}
	return out
}

// CaseNames returns the accepted --case values.
func CaseNames() []string {
	var names []string
	for _, c := range Cases() {
		names = append(names, c.String())
	}
	return names
}

// ParseCase maps a case name to its Case. The empty string is Keep.
func ParseCase(name string) (Case, error) {
	for c := Keep; c < numCases; c++ {
		if caseNames[c] == name {
			return c, nil
		}
	}
	return Keep, fmt.Errorf("unknown case %q (allowed: %s)", name, strings.Join(CaseNames(), ", "))
}

func (c Case) String() string {
	if c < 0 || c >= numCases {
		return fmt.Sprintf("Case(%d)", int(c))
	}
	return caseNames[c]
}

// Apply converts s. locale only affects LocaleLower and LocaleUpper.
func (c Case) Apply(s string, locale language.Tag) string {
	if c < 0 || c >= numCases {
		return s
	}
	return caseFuncs[c](s, locale)
}

// Set and Type let Case be used directly as a pflag value.
func (c *Case) Set(name string) error {
	parsed, err := ParseCase(name)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c *Case) Type() string { return "case" }

// splitWord breaks words at lower/digit->upper transitions, before the last
// capital of an acronym followed by lowercase, and at any character that is
// neither a letter nor a digit.
func splitWord(prev, curr, next rune) strcase.SplitAction {
	switch {
	case !unicode.IsLetter(curr) && !unicode.IsDigit(curr):
		return strcase.SkipSplit
	case !unicode.IsUpper(curr):
		return strcase.Noop
	case unicode.IsLower(prev) || unicode.IsDigit(prev):
		return strcase.Split
	case unicode.IsUpper(prev) && unicode.IsLower(next):
		return strcase.Split
	}
	return strcase.Noop
}

var words = strcase.NewCaser(false, nil, splitWord)

// wordSeparator never survives splitWord, so it can carry word boundaries.
const wordSeparator = '_'

func splitWords(s string) []string {
	var out []string
	for _, w := range strings.Split(words.ToCase(s, strcase.Original, wordSeparator), string(wordSeparator)) {
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// joinCompact builds camel or pascal case. Words are glued directly unless
// the seam would put an upper-case letter or digit right after another one;
// those seams get an underscore so the words split the same way again.
func joinCompact(s string, lowerFirst bool) string {
	var b strings.Builder
	for i, w := range splitWords(s) {
		if i == 0 && lowerFirst {
			w = strings.ToLower(w)
		} else {
			w = capitalize(w)
		}
		if b.Len() > 0 {
			last, _ := utf8.DecodeLastRuneInString(b.String())
			first, _ := utf8.DecodeRuneInString(w)
			if upperOrDigit(last) && upperOrDigit(first) {
				b.WriteRune(wordSeparator)
			}
		}
		b.WriteString(w)
	}
	return b.String()
}

func upperOrDigit(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsDigit(r)
}

func capitalize(w string) string {
	return mapFirst(strings.ToLower(w), unicode.ToUpper)
}

func mapFirst(s string, fn func(rune) rune) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(fn(r)) + s[size:]
}

func sentenceCase(s string) string {
	return mapFirst(words.ToCase(s, strcase.LowerCase, ' '), unicode.ToUpper)
}

// spongeCase alternates letters lower/upper by position so the result is
// stable under reapplication.
func spongeCase(s string) string {
	var b strings.Builder
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			if n%2 == 0 {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			n++
		}
		b.WriteRune(r)
	}
	return b.String()
}

func swapCase(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			r = unicode.ToLower(r)
		case unicode.IsLower(r):
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

var smallWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "but": true,
	"by": true, "en": true, "for": true, "if": true, "in": true, "nor": true,
	"of": true, "on": true, "or": true, "per": true, "the": true, "to": true,
	"v": true, "vs": true, "via": true,
}

// titleCase upper-cases the first letter of each word, leaving small words
// (except the first and last) and words with inner capitals as they are.
// Whitespace is preserved.
func titleCase(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}

	var b strings.Builder
	rest := s
	for i, field := range fields {
		idx := strings.Index(rest, field)
		b.WriteString(rest[:idx])
		rest = rest[idx+len(field):]

		if i > 0 && i < len(fields)-1 && smallWords[strings.ToLower(field)] {
			b.WriteString(field)
			continue
		}
		parts := strings.Split(field, "-")
		for j, part := range parts {
			if !hasInnerUpper(part) {
				parts[j] = upperFirstLetter(part)
			}
		}
		b.WriteString(strings.Join(parts, "-"))
	}
	b.WriteString(rest)

	return b.String()
}

func hasInnerUpper(w string) bool {
	for i, r := range w {
		if i > 0 && unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func upperFirstLetter(w string) string {
	for i, r := range w {
		if unicode.IsLetter(r) {
			return w[:i] + string(unicode.ToUpper(r)) + w[i+len(string(r)):]
		}
	}
	return w
}
