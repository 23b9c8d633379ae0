package bill

import "regexp"

// Recognizer holds the compiled bill-side pattern catalog: the section
// header boundary and the amendment-verb idiom detectors. It is stateless
// and safe for concurrent use; construct one per pipeline invocation.
type Recognizer struct {
	sectionHeaderPattern *regexp.Regexp
	amendedPattern       *regexp.Regexp
	strikingPattern      *regexp.Regexp
	insertingPattern     *regexp.Regexp
	repealedPattern      *regexp.Regexp
}

// NewRecognizer creates a Recognizer with all patterns compiled.
func NewRecognizer() *Recognizer {
	return &Recognizer{
		// "SECTION 12." or "SECTION 12A." at the start of a fragment.
		// Case-sensitive: bill text pages capitalize section headers, and
		// the strict form avoids matching "Section 12 of chapter..." law
		// references inside a section body.
		sectionHeaderPattern: regexp.MustCompile(`^\s*SECTION\s*(\d*\w*)\s*\.`),
		amendedPattern:       regexp.MustCompile(`amended`),
		strikingPattern:      regexp.MustCompile(`striking`),
		insertingPattern:     regexp.MustCompile(`inserting`),
		repealedPattern:      regexp.MustCompile(`repealed`),
	}
}

// MatchSectionHeader reports whether the text starts a bill section and
// returns the captured section label. The label may be empty even on a
// match ("SECTION ." is tolerated by the drafting conventions).
func (recognizer *Recognizer) MatchSectionHeader(text string) (string, bool) {
	headerMatch := recognizer.sectionHeaderPattern.FindStringSubmatch(text)
	if headerMatch == nil {
		return "", false
	}
	return headerMatch[1], true
}

// IsAmending reports whether the section text carries the "amended" idiom.
func (recognizer *Recognizer) IsAmending(text string) bool {
	return recognizer.amendedPattern.MatchString(text)
}

// IsStriking reports whether the section text carries the "striking" idiom.
func (recognizer *Recognizer) IsStriking(text string) bool {
	return recognizer.strikingPattern.MatchString(text)
}

// IsInserting reports whether the section text carries the "inserting" idiom.
func (recognizer *Recognizer) IsInserting(text string) bool {
	return recognizer.insertingPattern.MatchString(text)
}

// IsRepealing reports whether the section text carries the "repealed" idiom.
func (recognizer *Recognizer) IsRepealing(text string) bool {
	return recognizer.repealedPattern.MatchString(text)
}

// Classify returns the single Kind tag for a bill section's text. The
// dispatch order is the counting contract: the "amended" idiom dominates,
// sub-typed by striking/inserting; "repealed" is only considered for
// sections that do not amend; everything else is other.
func (recognizer *Recognizer) Classify(text string) Kind {
	if recognizer.IsAmending(text) {
		isStriking := recognizer.IsStriking(text)
		isInserting := recognizer.IsInserting(text)
		switch {
		case isStriking && isInserting:
			return KindAmendingByStrikingAndInserting
		case isStriking:
			return KindAmendingByStriking
		case isInserting:
			return KindAmendingByInserting
		default:
			return KindAmending
		}
	}
	if recognizer.IsRepealing(text) {
		return KindRepealing
	}
	return KindOther
}
