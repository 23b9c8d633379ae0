// Package reference parses the General Laws chapter and section numbers
// that a bill section amends. Drafting conventions put the reference at
// the head of the section ("Section 2 of chapter 90 of the General Laws
// is hereby amended..."), in singular or plural form, with fractional
// section identifiers written as Unicode vulgar fractions ("60½").
package reference

import (
	"regexp"
	"strings"

	"github.com/ralatsdc/springbok-mgl/internal/logging"
	"go.uber.org/zap"
)

// LawReference is the codified-law address a bill section amends.
// ChapterNumber is empty when no chapter could be parsed, in which case
// SectionNumbers is always empty as well: a law reference is meaningless
// without a chapter. SectionNumbers preserves document order and may
// contain duplicates; deduplication happens at the cross-reference index.
type LawReference struct {
	ChapterNumber  string
	SectionNumbers []string
}

// vulgarFractions is the character class of Unicode vulgar fractions used
// as fractional section identifiers (¼ ½ ¾ ⅐ ⅑ ⅒ ⅓ ⅔ ⅕ ⅖ ⅗ ⅘ ⅙ ⅚ ⅛ ⅜ ⅝ ⅞).
const vulgarFractions = `\x{00BC}-\x{00BE}\x{2150}-\x{215E}`

// Extractor holds the compiled law-reference pattern catalog. Stateless
// and safe for concurrent use.
type Extractor struct {
	lawChapterPattern  *regexp.Regexp
	lawSectionPattern  *regexp.Regexp
	sectionListPattern *regexp.Regexp
	chapterWordPattern *regexp.Regexp
	logger             *logging.Logger
}

// NewExtractor creates an Extractor with all patterns compiled. A nil
// logger is replaced with a no-op logger.
func NewExtractor(logger *logging.Logger) *Extractor {
	return &Extractor{
		// Anchored at the bill section head: "Section <n>" followed by
		// text free of sentence terminators up to the word "chapter",
		// capturing the chapter identifier ("90", "6A", "32B").
		lawChapterPattern: regexp.MustCompile(
			`(?i)^\s*section [\d+][^a-z]\.*[^.:\-]*?chapter\s*(\d*\w*)`,
		),
		// Same anchor, up to the singular or plural "section(s)" keyword.
		// Captures which form appeared and the first section token, with a
		// trailing vulgar fraction preserved verbatim.
		lawSectionPattern: regexp.MustCompile(
			`(?i)^\s*section [\d+][^a-z]\.*[^.:\-]*?(sections?)\s*(\d*\w*\s*[` + vulgarFractions + `]*)`,
		),
		// One entry of a comma-delimited section list: numeric token,
		// optional vulgar fraction, then a comma or whitespace delimiter.
		sectionListPattern: regexp.MustCompile(
			`(\d+\w*\s*[` + vulgarFractions + `]*)[,\s]`,
		),
		chapterWordPattern: regexp.MustCompile(`(?i)chapter`),
		logger:             logging.OrNop(logger),
	}
}

// Extract parses the law reference from a bill section's text. Unmatched
// cases are reported and degrade to an empty or partial LawReference;
// Extract never fails. The invariant that an empty chapter implies no
// section numbers is enforced here by short-circuiting.
func (extractor *Extractor) Extract(sectionText string) LawReference {
	chapterMatch := extractor.lawChapterPattern.FindStringSubmatch(sectionText)
	if chapterMatch == nil {
		extractor.logger.Warn("no law chapter reference found",
			zap.String("section_text", sectionText))
		return LawReference{}
	}
	chapterNumber := chapterMatch[1]
	if chapterNumber == "" {
		return LawReference{}
	}

	return LawReference{
		ChapterNumber:  chapterNumber,
		SectionNumbers: extractor.extractSectionNumbers(sectionText),
	}
}

// extractSectionNumbers resolves the section-number portion of the
// reference. The singular form yields the captured token; the plural form
// enumerates the comma-delimited list from the text following the keyword.
func (extractor *Extractor) extractSectionNumbers(sectionText string) []string {
	sectionMatch := extractor.lawSectionPattern.FindStringSubmatchIndex(sectionText)
	if sectionMatch == nil {
		extractor.logger.Warn("no law section reference found",
			zap.String("section_text", sectionText))
		return nil
	}

	form := strings.ToLower(strings.TrimSpace(sectionText[sectionMatch[2]:sectionMatch[3]]))
	firstToken := strings.TrimRight(sectionText[sectionMatch[4]:sectionMatch[5]], " \t")

	switch form {
	case "section":
		return []string{firstToken}
	case "sections":
		return extractor.enumerateSectionList(sectionText[sectionMatch[3]:])
	default:
		extractor.logger.Warn("unrecognized law section reference form",
			zap.String("form", form),
			zap.String("section_text", sectionText))
		return nil
	}
}

// enumerateSectionList collects every section token from the text that
// follows the plural "sections" keyword. The scan is best-effort: the
// list may span the remainder of the clause ("sections 10, 11 and 12"),
// so every delimited numeric token counts. The scan stops at the first
// subsequent "chapter" keyword so the chapter identifier itself is never
// collected as a section number.
func (extractor *Extractor) enumerateSectionList(listText string) []string {
	if chapterLocation := extractor.chapterWordPattern.FindStringIndex(listText); chapterLocation != nil {
		listText = listText[:chapterLocation[0]]
	}

	var sectionNumbers []string
	for _, listMatch := range extractor.sectionListPattern.FindAllString(listText, -1) {
		token := strings.TrimRight(strings.TrimSuffix(strings.TrimRight(listMatch, " \t\n"), ","), " \t")
		if token != "" {
			sectionNumbers = append(sectionNumbers, token)
		}
	}
	return sectionNumbers
}
