// Package markup produces annotated renderings of General Laws section
// text showing exactly what a bill strikes, inserts, or repeals. The
// annotations are inline asciidoc spans (strike-through for deleted
// text, colored inserts for new text), each carrying the originating
// bill section number as a superscript citation.
package markup

import (
	"fmt"
	"strings"
)

// MarkedUpText is the final artifact for one law section: the extracted
// title line plus the annotated body. It is produced once and written by
// the output layer, never mutated afterward.
type MarkedUpText struct {
	LawKey string
	Title  string
	Body   string
}

// Text renders the artifact as an asciidoc document fragment: bold title
// line, blank line, annotated body.
func (marked *MarkedUpText) Text() string {
	return fmt.Sprintf("*%s*\n\n%s", marked.Title, marked.Body)
}

// ConditionKind names a non-fatal condition raised while marking up a law
// section. Conditions are diagnostics, not errors: the engine always
// produces its best-effort output.
type ConditionKind string

const (
	// ConditionTitleParseFailed means the law text could not be split
	// into a title and body, so no markup was produced at all.
	ConditionTitleParseFailed ConditionKind = "title_parse_failed"
	// ConditionAmbiguousStrike means the struck phrase occurred zero or
	// multiple times in the body; the edit degraded to a footnote.
	ConditionAmbiguousStrike ConditionKind = "ambiguous_strike"
	// ConditionLinesUnresolvable means a line-number reference could not
	// be mapped to the law text (the law pages carry no line numbers);
	// the edit degraded to a footnote.
	ConditionLinesUnresolvable ConditionKind = "lines_unresolvable"
	// ConditionSubsectionUnmatched means the referenced subsection could
	// not be located in the law body; the body was left unchanged.
	ConditionSubsectionUnmatched ConditionKind = "subsection_unmatched"
	// ConditionNotImplemented marks a drafting sub-case with no defined
	// transformation; the body was left unchanged.
	ConditionNotImplemented ConditionKind = "not_implemented"
	// ConditionUnrecognized means no amendment idiom matched the bill
	// section's text; the body was left unchanged.
	ConditionUnrecognized ConditionKind = "unrecognized"
	// ConditionFootnoteAppended means an edit with no resolvable anchor
	// point was appended as an italicized footnote.
	ConditionFootnoteAppended ConditionKind = "footnote_appended"
)

// Condition records one non-fatal markup condition for diagnostics.
type Condition struct {
	Kind              ConditionKind
	LawKey            string
	BillSectionNumber string
	Detail            string
}

// Report aggregates the conditions raised across a whole markup run.
type Report struct {
	Conditions []Condition
}

// Add appends conditions to the report.
func (report *Report) Add(conditions ...Condition) {
	report.Conditions = append(report.Conditions, conditions...)
}

// CountByKind tallies the report's conditions per kind.
func (report *Report) CountByKind() map[ConditionKind]int {
	counts := make(map[ConditionKind]int)
	for _, reportCondition := range report.Conditions {
		counts[reportCondition.Kind]++
	}
	return counts
}

// String returns a CLI-friendly summary of the report.
func (report *Report) String() string {
	if len(report.Conditions) == 0 {
		return "Markup conditions: 0"
	}

	var reportBuilder strings.Builder
	reportBuilder.WriteString(fmt.Sprintf("Markup conditions: %d", len(report.Conditions)))
	for _, reportCondition := range report.Conditions {
		reportBuilder.WriteString("\n  " + reportCondition.String())
	}
	return reportBuilder.String()
}

// String returns a log-friendly rendering of the condition.
func (condition Condition) String() string {
	var conditionBuilder strings.Builder
	conditionBuilder.WriteString(string(condition.Kind))
	if condition.LawKey != "" {
		conditionBuilder.WriteString(" law=" + condition.LawKey)
	}
	if condition.BillSectionNumber != "" {
		conditionBuilder.WriteString(" bill_section=" + condition.BillSectionNumber)
	}
	if condition.Detail != "" {
		conditionBuilder.WriteString(": " + condition.Detail)
	}
	return conditionBuilder.String()
}
