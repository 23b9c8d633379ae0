package malegislature

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ralatsdc/springbok-mgl/pkg/crossref"
	"go.uber.org/zap"
)

// LawSectionText is the fetched text of one law section, together with
// the bill sections that amend it.
type LawSectionText struct {
	LawKey             string
	Text               string
	BillSectionNumbers []string
}

// FetchLawSection fetches the text of a single law section, consulting
// the disk cache first. The text is the concatenation of the text nodes
// under the law text container, so layout markup inside the section is
// dropped while the wording survives verbatim.
func (client *Client) FetchLawSection(chapterNumber, sectionNumber string) (string, error) {
	lawURL := LawURL(chapterNumber, sectionNumber)

	if client.cache != nil {
		if lawText, found := client.cache.Get(lawURL); found {
			client.logger.Debug("law text cache hit", zap.String("url", lawURL))
			return lawText, nil
		}
	}

	document, err := client.getDocument(lawURL)
	if err != nil {
		return "", err
	}

	lawText, err := parseLawText(document)
	if err != nil {
		return "", fmt.Errorf("%w at %s", err, lawURL)
	}

	if client.cache != nil {
		if err := client.cache.Set(lawURL, lawText); err != nil {
			client.logger.Warn("failed to cache law text",
				zap.String("url", lawURL),
				zap.Error(err))
		}
	}

	return lawText, nil
}

// parseLawText extracts a law section's text from its page: the text
// nodes under the parent of the skip-to heading, concatenated without
// separators so the wording survives the page's layout markup.
func parseLawText(document *goquery.Document) (string, error) {
	heading := document.Find("h2#skipTo").First()
	if heading.Length() == 0 {
		return "", fmt.Errorf("no law text container found")
	}
	return strings.Join(collectTextNodes(heading.Parent()), ""), nil
}

type lawFetchResult struct {
	requestIndex int
	lawText      string
	err          error
}

// FetchLawSections fetches every law section the index requests,
// concurrently, and returns the texts in the index's request order with
// their amending bill sections attached. Sections that fail to fetch are
// logged and omitted so one bad reference does not sink the run.
func (client *Client) FetchLawSections(index *crossref.Index) []LawSectionText {
	requests := index.Requests()
	results := make(chan lawFetchResult, len(requests))

	for requestIndex, request := range requests {
		go func(requestIndex int, request crossref.FetchRequest) {
			lawText, err := client.FetchLawSection(request.ChapterNumber, request.SectionNumber)
			results <- lawFetchResult{requestIndex: requestIndex, lawText: lawText, err: err}
		}(requestIndex, request)
	}

	texts := make([]string, len(requests))
	fetched := make([]bool, len(requests))
	for range requests {
		result := <-results
		if result.err != nil {
			request := requests[result.requestIndex]
			client.logger.Warn("failed to fetch law section",
				zap.String("chapter", request.ChapterNumber),
				zap.String("section", request.SectionNumber),
				zap.Error(result.err))
			continue
		}
		texts[result.requestIndex] = result.lawText
		fetched[result.requestIndex] = true
	}

	var sectionTexts []LawSectionText
	for requestIndex, request := range requests {
		if !fetched[requestIndex] {
			continue
		}
		lawKey := crossref.Key(request.ChapterNumber, request.SectionNumber)
		sectionTexts = append(sectionTexts, LawSectionText{
			LawKey:             lawKey,
			Text:               texts[requestIndex],
			BillSectionNumbers: index.BillSections(lawKey),
		})
	}
	return sectionTexts
}
