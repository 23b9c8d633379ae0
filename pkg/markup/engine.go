package markup

import (
	"fmt"
	"strings"

	"github.com/ralatsdc/springbok-mgl/internal/logging"
	"github.com/ralatsdc/springbok-mgl/pkg/bill"
	"go.uber.org/zap"
)

// Engine applies bill section transformations to law text. A nil logger
// is replaced with a no-op logger.
type Engine struct {
	recognizer *Recognizer
	logger     *logging.Logger
}

// NewEngine creates an Engine with a freshly compiled pattern catalog.
func NewEngine(logger *logging.Logger) *Engine {
	return &Engine{
		recognizer: NewRecognizer(),
		logger:     logging.OrNop(logger),
	}
}

// Recognizer returns the engine's pattern catalog.
func (engine *Engine) Recognizer() *Recognizer {
	return engine.recognizer
}

// Annotate produces the marked-up rendering of one law section. The bill
// sections must be supplied in backreference order; each transformation
// consumes the current, possibly already-annotated body, so cumulative
// edits compose. Returns nil when the law text cannot be split into a
// title and body. All other failures degrade per the documented fallback
// paths and are returned as conditions, never as errors.
func (engine *Engine) Annotate(lawKey, lawText string, billSections []bill.Section) (*MarkedUpText, []Condition) {
	title, body, ok := engine.recognizer.SplitLaw(lawText)
	if !ok {
		condition := Condition{Kind: ConditionTitleParseFailed, LawKey: lawKey}
		engine.logCondition(condition)
		return nil, []Condition{condition}
	}

	var conditions []Condition
	for _, billSection := range billSections {
		var sectionConditions []Condition
		body, sectionConditions = engine.applySection(lawKey, body, billSection)
		conditions = append(conditions, sectionConditions...)
	}

	return &MarkedUpText{LawKey: lawKey, Title: title, Body: body}, conditions
}

// applySection applies one bill section's transformation to the current
// body text. Classification runs in strict priority order: repeal, then
// strike+insert, then strike-only, then insert-only; the first matching
// class wins and sub-dispatches on the object of amendment in the order
// words, lines, subsections, sections.
func (engine *Engine) applySection(lawKey, body string, billSection bill.Section) (string, []Condition) {
	sectionText := billSection.Text

	isRepealing := engine.recognizer.repealed.MatchString(sectionText)
	isStriking := engine.recognizer.striking.MatchString(sectionText)
	isInserting := engine.recognizer.inserting.MatchString(sectionText)

	switch {
	case isRepealing:
		return engine.applyRepeal(body, billSection)
	case isStriking && isInserting:
		return engine.applyStrikeInsert(lawKey, body, billSection)
	case isStriking:
		return engine.applyStrike(lawKey, body, billSection)
	case isInserting:
		return engine.applyInsert(lawKey, body, billSection)
	default:
		return body, engine.condition(Condition{
			Kind:              ConditionUnrecognized,
			LawKey:            lawKey,
			BillSectionNumber: billSection.Number,
			Detail:            "no amendment idiom matched",
		})
	}
}

// applyRepeal wraps the entire current body in strike-through and appends
// a REPEALED marker carrying any trailing repeal-specification clause.
// Repeal is terminal: no further sub-case is evaluated.
func (engine *Engine) applyRepeal(body string, billSection bill.Section) (string, []Condition) {
	repealMatch := engine.recognizer.repealed.FindStringSubmatch(billSection.Text)
	repealSpecification := ""
	if repealMatch != nil {
		repealSpecification = repealMatch[1]
	}
	return fmt.Sprintf("[.line-through .red]#%s#^%s^\n\nREPEALED %s",
		body, billSection.Number, repealSpecification), nil
}

// applyStrikeInsert handles sections that both strike and insert.
func (engine *Engine) applyStrikeInsert(lawKey, body string, billSection bill.Section) (string, []Condition) {
	sectionText := billSection.Text

	switch {
	case engine.recognizer.words.MatchString(sectionText):
		replaceMatch := engine.recognizer.replaceWords.FindStringSubmatch(sectionText)
		if replaceMatch == nil {
			return body, engine.condition(Condition{
				Kind:              ConditionUnrecognized,
				LawKey:            lawKey,
				BillSectionNumber: billSection.Number,
				Detail:            "words idiom present but struck/inserted phrases not captured",
			})
		}
		struckWords := replaceMatch[1]
		insertedWords := replaceMatch[2]
		replacement := fmt.Sprintf("[.line-through .red]#%s# [.blue]#%s#^%s^",
			struckWords, insertedWords, billSection.Number)
		return engine.replaceSingleOccurrence(lawKey, body, struckWords, replacement, billSection)

	case engine.recognizer.lines.MatchString(sectionText):
		// Line-number references cannot be mapped to the fetched law text:
		// the law pages carry no line numbers.
		return engine.appendFootnote(lawKey, body, billSection, ConditionLinesUnresolvable)

	case engine.recognizer.subsections.MatchString(sectionText):
		return engine.applySubsectionReplacement(lawKey, body, billSection)

	case engine.recognizer.sections.MatchString(sectionText):
		sectionMatch := engine.recognizer.replaceSection.FindStringSubmatch(sectionText)
		if sectionMatch == nil {
			return body, engine.condition(Condition{
				Kind:              ConditionUnrecognized,
				LawKey:            lawKey,
				BillSectionNumber: billSection.Number,
				Detail:            "sections idiom present but inserted text not captured",
			})
		}
		// No sub-span is isolatable: strike the whole body and append the
		// replacement.
		insertText := strings.TrimSpace(sectionMatch[1])
		return fmt.Sprintf("[.line-through .red]#%s#\n\n[.blue]#%s#^%s^",
			body, insertText, billSection.Number), nil

	default:
		return body, engine.condition(Condition{
			Kind:              ConditionUnrecognized,
			LawKey:            lawKey,
			BillSectionNumber: billSection.Number,
			Detail:            "strike+insert with no words/lines/subsections/sections object",
		})
	}
}

// applySubsectionReplacement locates the referenced subsection span in
// the law body and replaces it with a struck rendering of the original
// followed by the inserted replacement, reformatting embedded newlines
// into asciidoc line continuations.
func (engine *Engine) applySubsectionReplacement(lawKey, body string, billSection bill.Section) (string, []Condition) {
	replaceMatch := engine.recognizer.replaceSubsection.FindStringSubmatch(billSection.Text)
	if replaceMatch == nil {
		return body, engine.condition(Condition{
			Kind:              ConditionUnrecognized,
			LawKey:            lawKey,
			BillSectionNumber: billSection.Number,
			Detail:            "subsection idiom present but identifier/insert not captured",
		})
	}
	subsectionIdentifier := strings.TrimSpace(replaceMatch[1])
	insertText := strings.TrimSpace(replaceMatch[2])

	subsectionPattern, compileErr := buildSubsectionPattern(subsectionIdentifier)
	if compileErr != nil {
		return body, engine.condition(Condition{
			Kind:              ConditionSubsectionUnmatched,
			LawKey:            lawKey,
			BillSectionNumber: billSection.Number,
			Detail:            compileErr.Error(),
		})
	}

	subsectionMatch := subsectionPattern.FindStringSubmatch(body)
	if subsectionMatch == nil {
		return body, engine.condition(Condition{
			Kind:              ConditionSubsectionUnmatched,
			LawKey:            lawKey,
			BillSectionNumber: billSection.Number,
			Detail:            fmt.Sprintf("subsection (%s) not found in law body", subsectionIdentifier),
		})
	}

	subsectionHeader := strings.TrimSpace(subsectionMatch[3])
	subsectionContent := strings.TrimSpace(subsectionMatch[4])
	subsection := subsectionHeader + " " + subsectionContent

	replacement := fmt.Sprintf("[.line-through .red]##%s##\n\n[.blue]##%s##^%s^",
		subsection, insertText, billSection.Number)
	replacement = strings.ReplaceAll(replacement, "\n", " +\n")

	return strings.Replace(body, subsection, replacement, 1), nil
}

// applyStrike handles strike-only sections.
func (engine *Engine) applyStrike(lawKey, body string, billSection bill.Section) (string, []Condition) {
	sectionText := billSection.Text

	switch {
	case engine.recognizer.words.MatchString(sectionText):
		strikeMatch := engine.recognizer.strikeWords.FindStringSubmatch(sectionText)
		if strikeMatch == nil {
			return body, engine.condition(Condition{
				Kind:              ConditionUnrecognized,
				LawKey:            lawKey,
				BillSectionNumber: billSection.Number,
				Detail:            "words idiom present but struck phrase not captured",
			})
		}
		struckWords := strikeMatch[1]
		replacement := fmt.Sprintf("[.line-through .red]#%s#^%s^", struckWords, billSection.Number)
		return engine.replaceSingleOccurrence(lawKey, body, struckWords, replacement, billSection)

	case engine.recognizer.lines.MatchString(sectionText):
		return engine.appendFootnote(lawKey, body, billSection, ConditionLinesUnresolvable)

	case engine.recognizer.sections.MatchString(sectionText):
		return body, engine.condition(Condition{
			Kind:              ConditionNotImplemented,
			LawKey:            lawKey,
			BillSectionNumber: billSection.Number,
			Detail:            "striking whole sections is not resolvable from the bill text",
		})

	default:
		return body, engine.condition(Condition{
			Kind:              ConditionUnrecognized,
			LawKey:            lawKey,
			BillSectionNumber: billSection.Number,
			Detail:            "strike with no words/lines/sections object",
		})
	}
}

// applyInsert handles insert-only sections. Word and line inserts have no
// resolvable anchor point in the law text and degrade to the footnote
// path; section inserts append each inserted section block after the body.
func (engine *Engine) applyInsert(lawKey, body string, billSection bill.Section) (string, []Condition) {
	sectionText := billSection.Text

	switch {
	case engine.recognizer.words.MatchString(sectionText),
		engine.recognizer.lines.MatchString(sectionText):
		return engine.appendFootnote(lawKey, body, billSection, ConditionFootnoteAppended)

	case engine.recognizer.sections.MatchString(sectionText):
		insertMatch := engine.recognizer.insertSections.FindStringSubmatch(sectionText)
		if insertMatch == nil {
			return body, engine.condition(Condition{
				Kind:              ConditionUnrecognized,
				LawKey:            lawKey,
				BillSectionNumber: billSection.Number,
				Detail:            "sections idiom present but inserted text not captured",
			})
		}
		for _, insertBlock := range engine.splitInsertedSections(insertMatch[1]) {
			body += fmt.Sprintf("\n\n[.blue]#%s#^%s^", insertBlock, billSection.Number)
		}
		return body, nil

	default:
		return body, engine.condition(Condition{
			Kind:              ConditionUnrecognized,
			LawKey:            lawKey,
			BillSectionNumber: billSection.Number,
			Detail:            "insert with no words/lines/sections object",
		})
	}
}

// splitInsertedSections splits captured insert text into one block per
// embedded "Section N." sub-header. Text with no sub-headers is a single
// block.
func (engine *Engine) splitInsertedSections(insertText string) []string {
	insertText = strings.TrimSpace(insertText)
	if insertText == "" {
		return nil
	}

	headerLocations := engine.recognizer.sectionSubheader.FindAllStringIndex(insertText, -1)
	if len(headerLocations) == 0 {
		return []string{insertText}
	}

	var blocks []string
	if headerLocations[0][0] > 0 {
		if preamble := strings.TrimSpace(insertText[:headerLocations[0][0]]); preamble != "" {
			blocks = append(blocks, preamble)
		}
	}
	for headerIndex, headerLocation := range headerLocations {
		blockEnd := len(insertText)
		if headerIndex+1 < len(headerLocations) {
			blockEnd = headerLocations[headerIndex+1][0]
		}
		blocks = append(blocks, strings.TrimSpace(insertText[headerLocation[0]:blockEnd]))
	}
	return blocks
}

// replaceSingleOccurrence substitutes the struck phrase only when it
// occurs exactly once in the body. Zero or multiple occurrences are
// ambiguous: replacing would corrupt unrelated identical text elsewhere
// in the law, so the edit degrades to the footnote path instead. A
// leading punctuation or space character in the struck phrase gets a
// buffer space outside the annotation span so the renderer still sees
// valid surrounding punctuation.
func (engine *Engine) replaceSingleOccurrence(lawKey, body, struckWords, replacement string, billSection bill.Section) (string, []Condition) {
	occurrences := strings.Count(body, struckWords)
	if occurrences != 1 {
		annotatedBody := body + "\n\n_" + billSection.Text + "_"
		return annotatedBody, engine.condition(Condition{
			Kind:              ConditionAmbiguousStrike,
			LawKey:            lawKey,
			BillSectionNumber: billSection.Number,
			Detail:            fmt.Sprintf("struck phrase %q occurs %d times in law body", struckWords, occurrences),
		})
	}

	if strings.HasPrefix(struckWords, ",") || strings.HasPrefix(struckWords, ".") ||
		strings.HasPrefix(struckWords, ":") || strings.HasPrefix(struckWords, " ") {
		replacement = " " + replacement
	}
	return strings.Replace(body, struckWords, replacement, 1), nil
}

// appendFootnote appends the raw bill-section text as an italicized
// footnote after the body. This is the documented degradation for edits
// whose anchor point cannot be resolved in the law text.
func (engine *Engine) appendFootnote(lawKey, body string, billSection bill.Section, kind ConditionKind) (string, []Condition) {
	annotatedBody := body + "\n\n_" + billSection.Text + "_"
	return annotatedBody, engine.condition(Condition{
		Kind:              kind,
		LawKey:            lawKey,
		BillSectionNumber: billSection.Number,
		Detail:            "appended bill text as footnote",
	})
}

// condition logs and wraps a single condition.
func (engine *Engine) condition(singleCondition Condition) []Condition {
	engine.logCondition(singleCondition)
	return []Condition{singleCondition}
}

func (engine *Engine) logCondition(singleCondition Condition) {
	engine.logger.Info("markup condition",
		zap.String("kind", string(singleCondition.Kind)),
		zap.String("law_key", singleCondition.LawKey),
		zap.String("bill_section", singleCondition.BillSectionNumber),
		zap.String("detail", singleCondition.Detail))
}
