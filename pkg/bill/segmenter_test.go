package bill

import (
	"strings"
	"testing"
)

func TestSegment(t *testing.T) {
	segmenter := NewSegmenter(nil)

	testCases := []struct {
		name        string
		fragments   []string
		wantNumbers []string
		wantTexts   []string
	}{
		{
			name: "two sections",
			fragments: []string{
				"SECTION 1.",
				"Section 2 of chapter 90 of the General Laws is hereby amended.",
				"SECTION 2.",
				"Section 9 of chapter 40 of the General Laws is hereby repealed.",
			},
			wantNumbers: []string{"1", "2"},
			wantTexts: []string{
				"SECTION 1.\nSection 2 of chapter 90 of the General Laws is hereby amended.",
				"SECTION 2.\nSection 9 of chapter 40 of the General Laws is hereby repealed.",
			},
		},
		{
			name: "header and body in one fragment",
			fragments: []string{
				"SECTION 1. Section 2 of chapter 90 of the General Laws is hereby amended.",
				"SECTION 2. This act shall take effect upon its passage.",
			},
			wantNumbers: []string{"1", "2"},
			wantTexts: []string{
				"SECTION 1. Section 2 of chapter 90 of the General Laws is hereby amended.",
				"SECTION 2. This act shall take effect upon its passage.",
			},
		},
		{
			name: "no header yields single unnumbered section",
			fragments: []string{
				"Be it enacted by the Senate and House of Representatives",
				"in General Court assembled, and by the authority of the same as follows:",
			},
			wantNumbers: []string{""},
			wantTexts: []string{
				"Be it enacted by the Senate and House of Representatives\nin General Court assembled, and by the authority of the same as follows:",
			},
		},
		{
			name: "preamble before first header",
			fragments: []string{
				"An Act relative to motor vehicles.",
				"SECTION 1.",
				"Section 2 of chapter 90 of the General Laws is hereby amended.",
			},
			wantNumbers: []string{"", "1"},
			wantTexts: []string{
				"An Act relative to motor vehicles.",
				"SECTION 1.\nSection 2 of chapter 90 of the General Laws is hereby amended.",
			},
		},
		{
			name:        "empty input",
			fragments:   nil,
			wantNumbers: []string{},
			wantTexts:   []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sections := segmenter.Segment(tc.fragments)
			if len(sections) != len(tc.wantNumbers) {
				t.Fatalf("Segment produced %d sections, want %d", len(sections), len(tc.wantNumbers))
			}
			for sectionIndex, section := range sections {
				if section.Number != tc.wantNumbers[sectionIndex] {
					t.Errorf("section %d Number = %q, want %q", sectionIndex, section.Number, tc.wantNumbers[sectionIndex])
				}
				if section.Text != tc.wantTexts[sectionIndex] {
					t.Errorf("section %d Text = %q, want %q", sectionIndex, section.Text, tc.wantTexts[sectionIndex])
				}
			}
		})
	}
}

func TestSegmentExtractsLawReferences(t *testing.T) {
	segmenter := NewSegmenter(nil)

	sections := segmenter.Segment([]string{
		"SECTION 1.",
		"Section 2 of chapter 90 of the General Laws is hereby amended by striking out the second sentence.",
		"SECTION 2.",
		"Sections 10, 11 and 12 of chapter 266 of the General Laws are hereby repealed.",
		"SECTION 3.",
		"This act shall take effect upon its passage.",
	})
	if len(sections) != 3 {
		t.Fatalf("Segment produced %d sections, want 3", len(sections))
	}

	first := sections[0].LawReference
	if first.ChapterNumber != "90" {
		t.Errorf("section 1 ChapterNumber = %q, want %q", first.ChapterNumber, "90")
	}
	if len(first.SectionNumbers) != 1 || first.SectionNumbers[0] != "2" {
		t.Errorf("section 1 SectionNumbers = %v, want [2]", first.SectionNumbers)
	}

	second := sections[1].LawReference
	if second.ChapterNumber != "266" {
		t.Errorf("section 2 ChapterNumber = %q, want %q", second.ChapterNumber, "266")
	}
	if strings.Join(second.SectionNumbers, " ") != "10 11 12" {
		t.Errorf("section 2 SectionNumbers = %v, want [10 11 12]", second.SectionNumbers)
	}

	third := sections[2].LawReference
	if third.ChapterNumber != "" {
		t.Errorf("section 3 ChapterNumber = %q, want empty", third.ChapterNumber)
	}
	if len(third.SectionNumbers) != 0 {
		t.Errorf("section 3 SectionNumbers = %v, want empty", third.SectionNumbers)
	}
}

func TestCountSectionTypes(t *testing.T) {
	segmenter := NewSegmenter(nil)

	sections := segmenter.Segment([]string{
		"SECTION 1. Section 2 of chapter 90 of the General Laws is hereby amended by striking out the words “ten dollars” and inserting in place thereof the following words:- fifty dollars.",
		"SECTION 2. Section 3 of chapter 90 of the General Laws is hereby amended by striking out the second sentence.",
		"SECTION 3. Chapter 40 of the General Laws is hereby amended by inserting after section 8 the following section:- Section 8A. New text.",
		"SECTION 4. Section 9 of chapter 40 of the General Laws is hereby repealed.",
		"SECTION 5. This act shall take effect upon its passage.",
	})

	counts := segmenter.CountSectionTypes(sections)

	if counts.Total != 5 {
		t.Errorf("Total = %d, want 5", counts.Total)
	}
	if counts.Amending != 3 {
		t.Errorf("Amending = %d, want 3", counts.Amending)
	}
	if counts.AmendingByStrikingAndInserting != 1 {
		t.Errorf("AmendingByStrikingAndInserting = %d, want 1", counts.AmendingByStrikingAndInserting)
	}
	if counts.AmendingByStriking != 1 {
		t.Errorf("AmendingByStriking = %d, want 1", counts.AmendingByStriking)
	}
	if counts.AmendingByInserting != 1 {
		t.Errorf("AmendingByInserting = %d, want 1", counts.AmendingByInserting)
	}
	if counts.Repealing != 1 {
		t.Errorf("Repealing = %d, want 1", counts.Repealing)
	}
	if counts.Other != 1 {
		t.Errorf("Other = %d, want 1", counts.Other)
	}

	subTypeSum := counts.AmendingByStriking + counts.AmendingByInserting + counts.AmendingByStrikingAndInserting
	if counts.Amending != subTypeSum {
		t.Errorf("Amending = %d, want sum of sub-types %d", counts.Amending, subTypeSum)
	}
	if counts.Total != counts.Amending+counts.Repealing+counts.Other {
		t.Errorf("Total = %d does not equal Amending+Repealing+Other = %d",
			counts.Total, counts.Amending+counts.Repealing+counts.Other)
	}
}

func TestSectionCountsString(t *testing.T) {
	counts := SectionCounts{Total: 5, Amending: 3, AmendingByStriking: 1, AmendingByInserting: 1, AmendingByStrikingAndInserting: 1, Repealing: 1, Other: 1}
	summary := counts.String()

	for _, wantLine := range []string{
		"Total sections: 5",
		"Amending sections: 3",
		"Repealing sections: 1",
		"Other sections: 1",
	} {
		if !strings.Contains(summary, wantLine) {
			t.Errorf("String() missing %q in:\n%s", wantLine, summary)
		}
	}
}
