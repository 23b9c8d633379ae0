package markup

import (
	"fmt"
	"regexp"
	"strings"
)

// Recognizer holds the compiled markup-side pattern catalog: idiom
// detectors classifying what a bill section does, capture patterns that
// pull the struck and inserted phrases out of the drafting prose, and the
// law-text title/body splitter. Stateless and safe for concurrent use.
type Recognizer struct {
	// textParse splits a law section's text into its "Section N" title
	// line and the body that follows.
	textParse *regexp.Regexp

	// Idiom detectors. striking/inserting use stem forms so "strike",
	// "striking", "struck out", "insert", "inserting" all register.
	striking    *regexp.Regexp
	inserting   *regexp.Regexp
	repealed    *regexp.Regexp
	words       *regexp.Regexp
	lines       *regexp.Regexp
	subsections *regexp.Regexp
	sections    *regexp.Regexp

	// Capture patterns for each transformation.
	replaceWords      *regexp.Regexp
	replaceSubsection *regexp.Regexp
	replaceSection    *regexp.Regexp
	strikeWords       *regexp.Regexp
	insertSections    *regexp.Regexp
	sectionSubheader  *regexp.Regexp
}

// NewRecognizer creates a Recognizer with all patterns compiled.
func NewRecognizer() *Recognizer {
	return &Recognizer{
		textParse: regexp.MustCompile(`(?i)(section.*)[\n\s]*([\s\S]*)`),

		striking:    regexp.MustCompile(`strik`),
		inserting:   regexp.MustCompile(`insert`),
		repealed:    regexp.MustCompile(`repealed ?(.*)`),
		words:       regexp.MustCompile(`words?`),
		lines:       regexp.MustCompile(`lines?`),
		subsections: regexp.MustCompile(`(?:subsections?|subclauses?):`),
		sections:    regexp.MustCompile(`sections?:`),

		// Struck phrase is the first quoted run after the strike idiom;
		// inserted phrase follows the ":-" introducer and runs to the last
		// period of the clause. Straight and curly quotes both appear in
		// bill text pages.
		replaceWords: regexp.MustCompile(
			`strik.*?["\x{201c}]([^"\x{201d}]+)["\x{201d}].*insert.*?:-? (.*)\.`,
		),
		// Subsection or subclause identifier plus the multi-line inserted
		// replacement text after the introducer.
		replaceSubsection: regexp.MustCompile(
			`strik[\s\S]*?(?:subsections?|subclauses?) \((.)\)[\s\S]*?insert.*?:-?\s*([\s\S]*)`,
		),
		// Whole-section replacement: no sub-span is identifiable, only the
		// inserted text after the introducer.
		replaceSection: regexp.MustCompile(
			`strik.*section.*insert.*?:-?(.*)`,
		),
		strikeWords: regexp.MustCompile(
			`strik.*?["\x{201c}]([^"\x{201d}]+)["\x{201d}]`,
		),
		// Inserted text following the first colon after the insert idiom,
		// for "inserting ... the following N sections:- ..." drafting.
		insertSections: regexp.MustCompile(
			`insert[^:]*:-?\s*([\s\S]*)`,
		),
		sectionSubheader: regexp.MustCompile(`(?i)\bsection \d+\w*\.`),
	}
}

// buildSubsectionPattern compiles the dynamic pattern that locates a
// subsection span inside a law body: the "(x)" header through to the next
// subsection header or bracketed marker, spanning multiple lines.
func buildSubsectionPattern(subsectionIdentifier string) (*regexp.Regexp, error) {
	return regexp.Compile(fmt.Sprintf(
		`(?i)(\n|^)(section \d+.\s*)?(\(%s\))([\s\S]*?)\n(\[.*\]|\([^\d\W]\))`,
		regexp.QuoteMeta(subsectionIdentifier),
	))
}

// SplitLaw splits a law section's raw text into its title line and body.
// The second return value is false when the law text does not carry the
// expected "Section N" title form, in which case no markup is possible.
func (recognizer *Recognizer) SplitLaw(lawText string) (title, body string, ok bool) {
	parseMatch := recognizer.textParse.FindStringSubmatch(lawText)
	if parseMatch == nil {
		return "", "", false
	}
	return strings.TrimSpace(parseMatch[1]), strings.TrimSpace(parseMatch[2]), true
}
