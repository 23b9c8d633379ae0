// Package crossref aggregates the law locations a bill touches. It turns
// a segmented bill into a deduplicated set of (chapter, section) fetch
// requests and a backreference map from each law key to the bill sections
// that amend it, in stable document order.
package crossref

import (
	"sort"

	"github.com/ralatsdc/springbok-mgl/pkg/bill"
)

// FetchRequest identifies one law location to retrieve.
type FetchRequest struct {
	ChapterNumber string
	SectionNumber string
}

// Key returns the canonical "chapter-section" key for a law location.
func Key(chapterNumber, sectionNumber string) string {
	return chapterNumber + "-" + sectionNumber
}

// Index maps required law locations back to the bill sections that
// reference them. It is built once per bill and is read-only afterward.
type Index struct {
	requests []FetchRequest
	backrefs map[string][]string
}

// Build walks the bill and records, for every section with a parsed
// chapter, each referenced law section. Requests are deduplicated
// (sort + unique) so each distinct law location is fetched at most once;
// backrefs keep first-occurrence document order so markup application is
// deterministic across runs.
func Build(sections []bill.Section) *Index {
	index := &Index{backrefs: make(map[string][]string)}

	var requests []FetchRequest
	for _, billSection := range sections {
		chapterNumber := billSection.LawReference.ChapterNumber
		if chapterNumber == "" {
			continue
		}
		for _, sectionNumber := range billSection.LawReference.SectionNumbers {
			requests = append(requests, FetchRequest{
				ChapterNumber: chapterNumber,
				SectionNumber: sectionNumber,
			})

			lawKey := Key(chapterNumber, sectionNumber)
			if !containsString(index.backrefs[lawKey], billSection.Number) {
				index.backrefs[lawKey] = append(index.backrefs[lawKey], billSection.Number)
			}
		}
	}

	sort.Slice(requests, func(i, j int) bool {
		if requests[i].ChapterNumber != requests[j].ChapterNumber {
			return requests[i].ChapterNumber < requests[j].ChapterNumber
		}
		return requests[i].SectionNumber < requests[j].SectionNumber
	})
	for _, request := range requests {
		requestCount := len(index.requests)
		if requestCount > 0 && index.requests[requestCount-1] == request {
			continue
		}
		index.requests = append(index.requests, request)
	}

	return index
}

// Requests returns the deduplicated fetch requests in sorted order.
func (index *Index) Requests() []FetchRequest {
	return index.requests
}

// BillSections returns the bill section numbers that reference the given
// law key, in the order they appear in the bill.
func (index *Index) BillSections(lawKey string) []string {
	return index.backrefs[lawKey]
}

func containsString(values []string, value string) bool {
	for _, existing := range values {
		if existing == value {
			return true
		}
	}
	return false
}
