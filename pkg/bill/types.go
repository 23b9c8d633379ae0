// Package bill segments the raw text of a Massachusetts legislative bill
// into numbered sections and classifies each section by how it amends
// existing law. The input is the ordered sequence of plain-text fragments
// extracted from the bill text page; the output is the structured bill the
// markup pipeline operates on.
package bill

import (
	"fmt"
	"strings"

	"github.com/ralatsdc/springbok-mgl/pkg/reference"
)

// Kind classifies what a bill section does to existing law.
type Kind string

const (
	// KindAmendingByStrikingAndInserting replaces existing law text.
	KindAmendingByStrikingAndInserting Kind = "amending_by_striking_and_inserting"
	// KindAmendingByStriking deletes existing law text.
	KindAmendingByStriking Kind = "amending_by_striking"
	// KindAmendingByInserting adds new law text.
	KindAmendingByInserting Kind = "amending_by_inserting"
	// KindAmending amends existing law but the striking/inserting sub-type
	// could not be resolved from the drafting language.
	KindAmending Kind = "amending"
	// KindRepealing removes an existing law section entirely.
	KindRepealing Kind = "repealing"
	// KindOther covers sections that do not amend or repeal codified law
	// (effective dates, appropriations, uncodified directives).
	KindOther Kind = "other"
)

// Section is one numbered unit of a bill. Number is empty when no header
// pattern matched the section's text; such sections are retained and the
// failure is reported, not fatal.
type Section struct {
	Number       string
	Text         string
	LawReference reference.LawReference
}

// SectionCounts tallies bill sections by classification.
type SectionCounts struct {
	Total                          int
	Amending                       int
	AmendingByStriking             int
	AmendingByInserting            int
	AmendingByStrikingAndInserting int
	Repealing                      int
	Other                          int
}

// String returns a CLI-friendly summary of the counts.
func (counts SectionCounts) String() string {
	var summaryBuilder strings.Builder
	summaryBuilder.WriteString(fmt.Sprintf("Total sections: %d\n", counts.Total))
	summaryBuilder.WriteString(fmt.Sprintf("Amending sections: %d\n", counts.Amending))
	summaryBuilder.WriteString(fmt.Sprintf("Amending sections by striking and inserting: %d\n", counts.AmendingByStrikingAndInserting))
	summaryBuilder.WriteString(fmt.Sprintf("Amending sections by striking: %d\n", counts.AmendingByStriking))
	summaryBuilder.WriteString(fmt.Sprintf("Amending sections by inserting: %d\n", counts.AmendingByInserting))
	summaryBuilder.WriteString(fmt.Sprintf("Repealing sections: %d\n", counts.Repealing))
	summaryBuilder.WriteString(fmt.Sprintf("Other sections: %d", counts.Other))
	return summaryBuilder.String()
}
