package malegislature

import (
	"net/url"
	"strings"
	"testing"
)

func TestFormatSectionNumber(t *testing.T) {
	testCases := []struct {
		name          string
		sectionNumber string
		want          string
	}{
		{name: "plain number", sectionNumber: "2", want: "2"},
		{name: "alphanumeric", sectionNumber: "9A", want: "9A"},
		{name: "half fraction", sectionNumber: "60½", want: "60 1~2"},
		{name: "three quarters", sectionNumber: "12¾", want: "12 3~4"},
		{name: "fraction with space", sectionNumber: "60 ½", want: "60 1~2"},
		{name: "one third", sectionNumber: "5⅓", want: "5 1~3"},
		{name: "empty", sectionNumber: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatSectionNumber(tc.sectionNumber); got != tc.want {
				t.Errorf("FormatSectionNumber(%q) = %q, want %q", tc.sectionNumber, got, tc.want)
			}
		})
	}
}

func TestLawURL(t *testing.T) {
	lawURL, err := url.Parse(LawURL("90", "60½"))
	if err != nil {
		t.Fatalf("LawURL produced an unparsable URL: %v", err)
	}

	if lawURL.Path != "/GeneralLaws/GoTo" {
		t.Errorf("path = %q, want %q", lawURL.Path, "/GeneralLaws/GoTo")
	}
	query := lawURL.Query()
	if got := query.Get("ChapterGoTo"); got != "90" {
		t.Errorf("ChapterGoTo = %q, want %q", got, "90")
	}
	if got := query.Get("SectionGoTo"); got != "60 1~2" {
		t.Errorf("SectionGoTo = %q, want %q", got, "60 1~2")
	}
}

func TestSearchURL(t *testing.T) {
	searchURL, err := url.Parse(SearchURL("motor vehicles", []Refinement{
		{Field: FieldGeneralCourt, Token: "court-token"},
		{Field: FieldDocumentType, Token: "type-token"},
	}))
	if err != nil {
		t.Fatalf("SearchURL produced an unparsable URL: %v", err)
	}

	if searchURL.Path != "/Bills/Search" {
		t.Errorf("path = %q, want %q", searchURL.Path, "/Bills/Search")
	}
	query := searchURL.Query()
	if got := query.Get("SearchTerms"); got != "motor vehicles" {
		t.Errorf("SearchTerms = %q, want %q", got, "motor vehicles")
	}
	if got := query.Get("Page"); got != "1" {
		t.Errorf("Page = %q, want %q", got, "1")
	}
	if got := query.Get(FieldGeneralCourt); got != "court-token" {
		t.Errorf("general court refinement = %q, want %q", got, "court-token")
	}
	if got := query.Get(FieldDocumentType); got != "type-token" {
		t.Errorf("document type refinement = %q, want %q", got, "type-token")
	}
}

func TestResolveHref(t *testing.T) {
	testCases := []struct {
		name string
		href string
		want string
	}{
		{name: "relative path", href: "/Bills/193/H1234", want: BaseURL + "/Bills/193/H1234"},
		{name: "absolute URL", href: "https://example.com/page", want: "https://example.com/page"},
		{name: "surrounding whitespace", href: "  /Bills/193/H1234 ", want: BaseURL + "/Bills/193/H1234"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolveHref(tc.href)
			if err != nil {
				t.Fatalf("resolveHref(%q) error: %v", tc.href, err)
			}
			if got != tc.want {
				t.Errorf("resolveHref(%q) = %q, want %q", tc.href, got, tc.want)
			}
		})
	}
}

func TestLawURLKeepsFractionOutOfPipelineForm(t *testing.T) {
	// The Unicode fraction must not leak into the URL; only the ASCII
	// token form is sent to the GoTo endpoint.
	if rawURL := LawURL("152", "60½"); strings.Contains(rawURL, "½") {
		t.Errorf("LawURL contains raw vulgar fraction: %q", rawURL)
	}
}
