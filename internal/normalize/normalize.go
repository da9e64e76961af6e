// Package normalize cleans raw or salvaged document text into readable prose.
// The pipeline runs three ordered stages: artifact cleanup, readability
// filtering, and paragraph structuring. Order matters; later stages assume the
// earlier cleanup already happened.
package normalize

import (
	"regexp"
	"strings"
)

// rule is a single rewrite step. fn takes precedence over repl when set, for
// the few rewrites that need more than a replacement template.
type rule struct {
	re   *regexp.Regexp
	repl string
	fn   func(string) string
}

func (r rule) apply(s string) string {
	if r.fn != nil {
		return r.re.ReplaceAllStringFunc(s, r.fn)
	}
	return r.re.ReplaceAllString(s, r.repl)
}

func applyRules(s string, rules []rule) string {
	for _, r := range rules {
		s = r.apply(s)
	}
	return strings.TrimSpace(s)
}

// Stage A: PDF artifact cleanup.
var artifactRules = []rule{
	// Collapse whitespace runs first so the remaining rules see single spaces.
	{re: regexp.MustCompile(`\s+`), repl: " "},
	// Re-join words broken into single spaced letters ("w o r d").
	{re: regexp.MustCompile(`\b\w( \w)+\b`), fn: func(m string) string {
		return strings.ReplaceAll(m, " ", "")
	}},
	// Numeric object references like "3 R".
	{re: regexp.MustCompile(`\b\d+ R\b`), repl: ""},
	// Structural tokens that survive a naive text harvest.
	{re: regexp.MustCompile(`/Type ?/\w+`), repl: ""},
	{re: regexp.MustCompile(`/Kids ?\[[^\]]*\]`), repl: ""},
	{re: regexp.MustCompile(`/Count ?\d+`), repl: ""},
	{re: regexp.MustCompile(`<<|>>`), repl: ""},
	{re: regexp.MustCompile(`\bendobj\b`), repl: ""},
	// Any remaining /Name command tokens.
	{re: regexp.MustCompile(`/[A-Z]\w*`), repl: ""},
	// Missing sentence punctuation at word-run boundaries ("endStart").
	{re: regexp.MustCompile(`([a-z])([A-Z])`), repl: "$1. $2"},
	// Repeated terminal punctuation.
	{re: regexp.MustCompile(`[.!?]{2,}`), repl: "."},
}

// Stage B: readability filter.
var readabilityRules = []rule{
	{re: regexp.MustCompile(`(?s)\$\$.*?\$\$`), repl: "[math]"},
	{re: regexp.MustCompile(`\$[^$\n]*?\$`), repl: "[formula]"},
	// LaTeX-style commands, with or without a brace-delimited argument.
	{re: regexp.MustCompile(`\\[a-zA-Z]+(\{[^}]*\})?`), repl: ""},
	// Clusters of symbols outside the punctuation allow-list.
	{re: regexp.MustCompile(`[^\w\s.,!?;:()\-'"/]{3,}`), repl: " "},
	// Anything outside printable ASCII, keeping newlines.
	{re: regexp.MustCompile("[^\x20-\x7e\n]"), repl: ""},
	// Standalone numeric tokens.
	{re: regexp.MustCompile(`\b\d+\b`), repl: ""},
}

// Stage C: paragraph structure.
var structureRules = []rule{
	// Break after sentence end followed by a capital.
	{re: regexp.MustCompile(`\.\s*([A-Z])`), repl: ".\n\n$1"},
	// Break before an all-caps "TITLE:" style token.
	{re: regexp.MustCompile(`([a-z]) ?([A-Z]{2,}:)`), repl: "$1\n\n$2"},
	{re: regexp.MustCompile(`\n{3,}`), repl: "\n\n"},
}

// CleanArtifacts is stage A: it strips PDF extraction artifacts and repairs
// broken word and sentence boundaries.
func CleanArtifacts(s string) string {
	return applyRules(s, artifactRules)
}

// FilterReadability is stage B: it replaces math notation with placeholders
// and drops characters and tokens that do not read as prose.
func FilterReadability(s string) string {
	return applyRules(s, readabilityRules)
}

// Structure is stage C: it re-imposes paragraph breaks on the cleaned text.
func Structure(s string) string {
	return applyRules(s, structureRules)
}

// Normalize runs all three stages in order.
func Normalize(s string) string {
	return Structure(FilterReadability(CleanArtifacts(s)))
}
