package malegislature

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Refiner query field names, keyed by the refiner group labels the search
// page uses.
const (
	FieldGeneralCourt     = "Refinements[lawsgeneralcourt]"
	FieldBranch           = "Refinements[lawsbranchname]"
	FieldSponsorLegislator = "Refinements[lawsuserprimarysponsorname]"
	FieldSponsorCommittee  = "Refinements[lawscommitteeprimarysponsorname]"
	FieldSponsorOther      = "Refinements[lawsotherprimarysponsorname]"
	FieldDocumentType      = "Refinements[lawsfilingtype]"
)

// RefinerEntry is one selectable refiner: a derived key usable on the
// command line, the human-readable label, and the opaque token the search
// endpoint expects.
type RefinerEntry struct {
	Key   string
	Label string
	Token string
}

// RefinerGroup is one refiner fieldset from the search page, with its
// entries in document order.
type RefinerGroup struct {
	Label   string
	Entries []RefinerEntry
}

// Entry returns the entry with the given key.
func (group *RefinerGroup) Entry(key string) (RefinerEntry, bool) {
	for _, entry := range group.Entries {
		if entry.Key == key {
			return entry, true
		}
	}
	return RefinerEntry{}, false
}

// RefinerMap holds all refiner groups in document order.
type RefinerMap struct {
	Groups []RefinerGroup
}

// Group returns the group whose label contains the given fragment.
func (refinerMap *RefinerMap) Group(labelFragment string) (*RefinerGroup, bool) {
	for groupIndex := range refinerMap.Groups {
		if strings.Contains(refinerMap.Groups[groupIndex].Label, labelFragment) {
			return &refinerMap.Groups[groupIndex], true
		}
	}
	return nil, false
}

// SearchEntry is one row of the bill search results.
type SearchEntry struct {
	BillNumber string
	BillURL    string
	Sponsor    string
	Summary    string
}

// ScrapeRefiners fetches the default search page and parses the refiner
// groups (general court, branch, sponsors, document type) with their
// selection tokens. Order is preserved so listings are deterministic.
func (client *Client) ScrapeRefiners() (*RefinerMap, error) {
	document, err := client.getDocument(SearchURL("", nil))
	if err != nil {
		return nil, err
	}
	return parseRefiners(document)
}

// parseRefiners extracts the refiner groups from a search page document.
func parseRefiners(document *goquery.Document) (*RefinerMap, error) {
	refinerElement := document.Find("div#refiners").First()
	if refinerElement.Length() == 0 {
		return nil, fmt.Errorf("no refiner container found on search page")
	}

	refinerMap := &RefinerMap{}
	refinerElement.Find("fieldset").Each(func(_ int, groupElement *goquery.Selection) {
		// The title lives in h4.modal-title, or the fieldset legend when
		// the group has no modal.
		groupLabelElement := groupElement.Find("h4.modal-title").First()
		if groupLabelElement.Length() == 0 {
			groupLabelElement = groupElement.Find("legend").First()
		}
		groupLabel := firstTextNode(groupLabelElement)

		entriesElement := groupElement.Find("div.modal-body").First()
		if entriesElement.Length() == 0 {
			entriesElement = groupElement
		}

		group := RefinerGroup{Label: groupLabel}
		entriesElement.Find("label").Each(func(_ int, labelElement *goquery.Selection) {
			refinerLabel := secondTextNode(labelElement)
			refinerToken, _ := labelElement.Find("input").First().Attr("data-refinertoken")
			group.Entries = append(group.Entries, RefinerEntry{
				Key:   refinerKey(groupLabel, refinerLabel),
				Label: refinerLabel,
				Token: refinerToken,
			})
		})
		refinerMap.Groups = append(refinerMap.Groups, group)
	})

	return refinerMap, nil
}

// Search fetches a search URL and parses the result rows.
func (client *Client) Search(searchURL string) ([]SearchEntry, error) {
	document, err := client.getDocument(searchURL)
	if err != nil {
		return nil, err
	}

	tableBody := document.Find("tbody").First()
	if tableBody.Length() == 0 {
		return nil, fmt.Errorf("no search results table found")
	}

	var entries []SearchEntry
	tableBody.Find("tr").Each(func(_ int, rowElement *goquery.Selection) {
		billNumber, billURL := cellData(rowElement, 2)
		sponsor, _ := cellData(rowElement, 3)
		summary, _ := cellData(rowElement, 4)
		entries = append(entries, SearchEntry{
			BillNumber: billNumber,
			BillURL:    billURL,
			Sponsor:    sponsor,
			Summary:    summary,
		})
	})

	return entries, nil
}

// cellData extracts the text and resolved link URL from a table cell.
// Cells usually contain a hyperlink; plain cells yield the site root.
func cellData(rowElement *goquery.Selection, cellNumber int) (string, string) {
	cellLink := rowElement.Find(fmt.Sprintf("td:nth-child(%d) a", cellNumber)).First()
	if cellLink.Length() == 0 {
		cellElement := rowElement.Find(fmt.Sprintf("td:nth-child(%d)", cellNumber)).First()
		return firstTextNode(cellElement), BaseURL
	}

	cellText := firstTextNode(cellLink)
	href, _ := cellLink.Attr("href")
	resolved, err := resolveHref(href)
	if err != nil {
		resolved = BaseURL
	}
	return cellText, resolved
}

// refinerKey derives a command-line-friendly key from a refiner label.
// Court, branch, and legislator refiners key on the first word (a session
// ordinal or surname); other groups drop the trailing result count and
// join the remaining words.
func refinerKey(groupLabel, refinerLabel string) string {
	words := strings.Split(refinerLabel, " ")
	if len(words) == 0 {
		return ""
	}

	if strings.Contains(groupLabel, "Court") ||
		strings.Contains(groupLabel, "Branch") ||
		strings.Contains(groupLabel, "Legislator") {
		key := strings.TrimSuffix(words[0], ",")
		return strings.ReplaceAll(key, "'", "-")
	}

	key := strings.Join(words[:len(words)-1], "-")
	replacer := strings.NewReplacer("/", "-", "(", "", ")", "", "'", "", ",", "", ".", "")
	return replacer.Replace(key)
}

// collectTextNodes walks a selection's nodes and returns every non-empty
// descendant text node, in document order.
func collectTextNodes(selection *goquery.Selection) []string {
	var fragments []string
	var walk func(node *html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			if node.Data != "" {
				fragments = append(fragments, node.Data)
			}
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, node := range selection.Nodes {
		walk(node)
	}
	return fragments
}

// firstTextNode returns the first non-blank text node of a selection,
// trimmed.
func firstTextNode(selection *goquery.Selection) string {
	for _, textNode := range collectTextNodes(selection) {
		if trimmed := strings.TrimSpace(textNode); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// secondTextNode returns the second non-blank text node of a selection,
// trimmed and with doubled spaces collapsed. Refiner labels sit after the
// checkbox input, so the label text is the second text node.
func secondTextNode(selection *goquery.Selection) string {
	var seen int
	for _, textNode := range collectTextNodes(selection) {
		if trimmed := strings.TrimSpace(textNode); trimmed != "" {
			seen++
			if seen == 2 {
				return strings.ReplaceAll(trimmed, "  ", " ")
			}
		}
	}
	return firstTextNode(selection)
}
