package bill

import "testing"

func TestNewRecognizer(t *testing.T) {
	recognizer := NewRecognizer()

	if recognizer.sectionHeaderPattern == nil {
		t.Error("sectionHeaderPattern is nil")
	}
	if recognizer.amendedPattern == nil {
		t.Error("amendedPattern is nil")
	}
	if recognizer.strikingPattern == nil {
		t.Error("strikingPattern is nil")
	}
	if recognizer.insertingPattern == nil {
		t.Error("insertingPattern is nil")
	}
	if recognizer.repealedPattern == nil {
		t.Error("repealedPattern is nil")
	}
}

func TestMatchSectionHeader(t *testing.T) {
	recognizer := NewRecognizer()

	testCases := []struct {
		name      string
		text      string
		wantLabel string
		wantMatch bool
	}{
		{
			name:      "plain numeric header",
			text:      "SECTION 1.",
			wantLabel: "1",
			wantMatch: true,
		},
		{
			name:      "alphanumeric header",
			text:      "SECTION 12A.",
			wantLabel: "12A",
			wantMatch: true,
		},
		{
			name:      "leading whitespace",
			text:      "   SECTION 3.",
			wantLabel: "3",
			wantMatch: true,
		},
		{
			name:      "header with trailing text",
			text:      "SECTION 2. Section 2 of chapter 90 of the General Laws",
			wantLabel: "2",
			wantMatch: true,
		},
		{
			name:      "no space before number",
			text:      "SECTION4.",
			wantLabel: "4",
			wantMatch: true,
		},
		{
			name:      "empty label tolerated",
			text:      "SECTION .",
			wantLabel: "",
			wantMatch: true,
		},
		{
			name:      "lowercase law reference does not match",
			text:      "Section 2 of chapter 90 of the General Laws",
			wantMatch: false,
		},
		{
			name:      "missing period does not match",
			text:      "SECTION 5",
			wantMatch: false,
		},
		{
			name:      "mid-text header does not match",
			text:      "as provided in SECTION 5.",
			wantMatch: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			label, matched := recognizer.MatchSectionHeader(tc.text)
			if matched != tc.wantMatch {
				t.Fatalf("MatchSectionHeader(%q) matched = %v, want %v", tc.text, matched, tc.wantMatch)
			}
			if matched && label != tc.wantLabel {
				t.Errorf("MatchSectionHeader(%q) label = %q, want %q", tc.text, label, tc.wantLabel)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	recognizer := NewRecognizer()

	testCases := []struct {
		name     string
		text     string
		wantKind Kind
	}{
		{
			name:     "striking and inserting",
			text:     "is hereby amended by striking out the words “ten dollars” and inserting in place thereof the following words:- fifty dollars.",
			wantKind: KindAmendingByStrikingAndInserting,
		},
		{
			name:     "striking only",
			text:     "is hereby amended by striking out the second sentence.",
			wantKind: KindAmendingByStriking,
		},
		{
			name:     "inserting only",
			text:     "is hereby amended by inserting after section 8 the following section:-",
			wantKind: KindAmendingByInserting,
		},
		{
			name:     "amending with unresolved sub-type",
			text:     "is hereby amended so as to read as follows:-",
			wantKind: KindAmending,
		},
		{
			name:     "repealing",
			text:     "Section 9 of chapter 40 of the General Laws is hereby repealed.",
			wantKind: KindRepealing,
		},
		{
			name:     "amended dominates repealed",
			text:     "is hereby amended by striking out section 9, hereby repealed by chapter 30 of the acts of 1990.",
			wantKind: KindAmendingByStriking,
		},
		{
			name:     "effective date clause",
			text:     "This act shall take effect upon its passage.",
			wantKind: KindOther,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if kind := recognizer.Classify(tc.text); kind != tc.wantKind {
				t.Errorf("Classify(%q) = %q, want %q", tc.text, kind, tc.wantKind)
			}
		})
	}
}
