package crossref

import (
	"reflect"
	"testing"

	"github.com/ralatsdc/springbok-mgl/pkg/bill"
	"github.com/ralatsdc/springbok-mgl/pkg/reference"
)

func TestKey(t *testing.T) {
	if got := Key("90", "2"); got != "90-2" {
		t.Errorf("Key(90, 2) = %q, want %q", got, "90-2")
	}
	if got := Key("152", "60½"); got != "152-60½" {
		t.Errorf("Key(152, 60½) = %q, want %q", got, "152-60½")
	}
}

func TestBuild(t *testing.T) {
	sections := []bill.Section{
		{Number: "1", LawReference: reference.LawReference{ChapterNumber: "90", SectionNumbers: []string{"2"}}},
		{Number: "2", LawReference: reference.LawReference{ChapterNumber: "90", SectionNumbers: []string{"2", "7"}}},
		{Number: "3", LawReference: reference.LawReference{ChapterNumber: "32B", SectionNumbers: []string{"9"}}},
		{Number: "4", LawReference: reference.LawReference{}},
	}

	index := Build(sections)

	wantRequests := []FetchRequest{
		{ChapterNumber: "32B", SectionNumber: "9"},
		{ChapterNumber: "90", SectionNumber: "2"},
		{ChapterNumber: "90", SectionNumber: "7"},
	}
	if !reflect.DeepEqual(index.Requests(), wantRequests) {
		t.Errorf("Requests() = %v, want %v", index.Requests(), wantRequests)
	}

	testCases := []struct {
		lawKey       string
		wantSections []string
	}{
		{"90-2", []string{"1", "2"}},
		{"90-7", []string{"2"}},
		{"32B-9", []string{"3"}},
		{"1-1", nil},
	}
	for _, tc := range testCases {
		if got := index.BillSections(tc.lawKey); !reflect.DeepEqual(got, tc.wantSections) {
			t.Errorf("BillSections(%q) = %v, want %v", tc.lawKey, got, tc.wantSections)
		}
	}
}

func TestBuildDeduplicatesRepeatedReferences(t *testing.T) {
	sections := []bill.Section{
		{Number: "1", LawReference: reference.LawReference{ChapterNumber: "90", SectionNumbers: []string{"2", "2"}}},
		{Number: "5", LawReference: reference.LawReference{ChapterNumber: "90", SectionNumbers: []string{"2"}}},
	}

	index := Build(sections)

	if got := len(index.Requests()); got != 1 {
		t.Fatalf("Requests() has %d entries, want 1", got)
	}
	if got := index.BillSections("90-2"); !reflect.DeepEqual(got, []string{"1", "5"}) {
		t.Errorf("BillSections(90-2) = %v, want [1 5]", got)
	}
}

func TestBuildEmptyBill(t *testing.T) {
	index := Build(nil)
	if got := len(index.Requests()); got != 0 {
		t.Errorf("Requests() has %d entries, want 0", got)
	}
}
