package malegislature

import (
	"net/url"
	"strings"
)

// BaseURL is the malegislature.gov site root.
const BaseURL = "https://malegislature.gov"

// vulgarFractionTokens maps trailing Unicode vulgar fraction characters
// in fractional section identifiers to the ASCII tokens the General Laws
// GoTo endpoint expects. The pipeline's data model keeps the Unicode
// form; the substitution happens only here, at the fetch boundary.
var vulgarFractionTokens = map[rune]string{
	'¼': "1~4",
	'½': "1~2",
	'¾': "3~4",
	'⅐': "1~7",
	'⅑': "1~9",
	'⅒': "1~10",
	'⅓': "1~3",
	'⅔': "2~3",
	'⅕': "1~5",
	'⅖': "2~5",
	'⅗': "3~5",
	'⅘': "4~5",
	'⅙': "1~6",
	'⅚': "5~6",
	'⅛': "1~8",
	'⅜': "3~8",
	'⅝': "5~8",
	'⅞': "7~8",
}

// FormatSectionNumber converts a section number to its fetch-safe form:
// a trailing vulgar fraction becomes a space plus the ASCII fraction
// token ("60½" → "60 1~2"). Section numbers without a fraction are
// returned unchanged.
func FormatSectionNumber(sectionNumber string) string {
	runes := []rune(sectionNumber)
	if len(runes) == 0 {
		return sectionNumber
	}

	lastRune := runes[len(runes)-1]
	fractionToken, isFraction := vulgarFractionTokens[lastRune]
	if !isFraction {
		return sectionNumber
	}

	withoutFraction := strings.TrimRight(string(runes[:len(runes)-1]), " \t")
	return withoutFraction + " " + fractionToken
}

// LawURL constructs the General Laws GoTo URL for a chapter and section.
func LawURL(chapterNumber, sectionNumber string) string {
	lawURL, _ := url.Parse(BaseURL + "/GeneralLaws/GoTo")
	query := lawURL.Query()
	query.Set("ChapterGoTo", chapterNumber)
	query.Set("SectionGoTo", FormatSectionNumber(sectionNumber))
	lawURL.RawQuery = query.Encode()
	return lawURL.String()
}

// SearchURL constructs a bill search URL from a search term and refiner
// selections. Refiner fields are appended in the given order so the URL
// is deterministic.
func SearchURL(searchTerm string, refinements []Refinement) string {
	searchURL, _ := url.Parse(BaseURL + "/Bills/Search")
	queryValues := url.Values{}
	queryValues.Set("SearchTerms", searchTerm)
	queryValues.Set("Page", "1")
	for _, refinement := range refinements {
		queryValues.Add(refinement.Field, refinement.Token)
	}
	searchURL.RawQuery = queryValues.Encode()
	return searchURL.String()
}

// Refinement is one search refiner selection: the query field name (e.g.
// "Refinements[lawsgeneralcourt]") and the opaque refiner token scraped
// from the search page.
type Refinement struct {
	Field string
	Token string
}

// resolveHref joins a possibly-relative href against the site root.
func resolveHref(href string) (string, error) {
	base, err := url.Parse(BaseURL)
	if err != nil {
		return "", err
	}
	resolved, err := base.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", err
	}
	return resolved.String(), nil
}
