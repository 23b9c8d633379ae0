package bill

import (
	"strings"

	"github.com/ralatsdc/springbok-mgl/internal/logging"
	"github.com/ralatsdc/springbok-mgl/pkg/reference"
	"go.uber.org/zap"
)

// Segmenter splits an ordered sequence of text fragments into bill
// sections and resolves each section's law reference. A nil logger is
// replaced with a no-op logger.
type Segmenter struct {
	recognizer *Recognizer
	extractor  *reference.Extractor
	logger     *logging.Logger
}

// NewSegmenter creates a Segmenter with a freshly compiled pattern catalog.
func NewSegmenter(logger *logging.Logger) *Segmenter {
	logger = logging.OrNop(logger)
	return &Segmenter{
		recognizer: NewRecognizer(),
		extractor:  reference.NewExtractor(logger),
		logger:     logger,
	}
}

// Recognizer returns the segmenter's pattern catalog.
func (segmenter *Segmenter) Recognizer() *Recognizer {
	return segmenter.recognizer
}

// Segment accumulates fragments into sections. A fragment matching the
// section header pattern closes the running section (if any) and starts a
// new one; all other fragments are appended, joined with newlines. The
// final accumulator is always flushed, so a bill with no header matches
// yields exactly one section with an empty number.
func (segmenter *Segmenter) Segment(fragments []string) []Section {
	var sections []Section
	var accumulator strings.Builder

	for _, fragment := range fragments {
		if _, isHeader := segmenter.recognizer.MatchSectionHeader(fragment); isHeader {
			if accumulator.Len() > 0 {
				sections = append(sections, segmenter.finalizeSection(accumulator.String()))
			}
			accumulator.Reset()
		}
		if accumulator.Len() == 0 {
			accumulator.WriteString(fragment)
		} else {
			accumulator.WriteString("\n")
			accumulator.WriteString(fragment)
		}
	}
	if accumulator.Len() > 0 {
		sections = append(sections, segmenter.finalizeSection(accumulator.String()))
	}

	return sections
}

// finalizeSection builds a Section from accumulated text, extracting the
// section number and law reference. A missing header is a parse-failure
// signal, not an error: the section is retained with an empty number.
func (segmenter *Segmenter) finalizeSection(sectionText string) Section {
	sectionNumber, matched := segmenter.recognizer.MatchSectionHeader(sectionText)
	if !matched {
		segmenter.logger.Warn("bill section has no header match",
			zap.String("section_text", sectionText))
	}

	return Section{
		Number:       sectionNumber,
		Text:         sectionText,
		LawReference: segmenter.extractor.Extract(sectionText),
	}
}

// CountSectionTypes tallies the classification of every section in the
// bill. Sections carrying the "amended" idiom but neither striking nor
// inserting are counted as amending with no sub-type and reported.
func (segmenter *Segmenter) CountSectionTypes(sections []Section) SectionCounts {
	counts := SectionCounts{Total: len(sections)}
	for _, section := range sections {
		switch segmenter.recognizer.Classify(section.Text) {
		case KindAmendingByStrikingAndInserting:
			counts.Amending++
			counts.AmendingByStrikingAndInserting++
		case KindAmendingByStriking:
			counts.Amending++
			counts.AmendingByStriking++
		case KindAmendingByInserting:
			counts.Amending++
			counts.AmendingByInserting++
		case KindAmending:
			counts.Amending++
			segmenter.logger.Warn("amending section is neither striking nor inserting",
				zap.String("section_number", section.Number),
				zap.String("section_text", section.Text))
		case KindRepealing:
			counts.Repealing++
		default:
			counts.Other++
		}
	}
	return counts
}
