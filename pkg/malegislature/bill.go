package malegislature

import (
	"fmt"
)

// BillTextFragments fetches a bill page, follows its text link, and
// returns the text nodes of the bill text container in document order.
// The fragments are the raw input to bill segmentation.
func (client *Client) BillTextFragments(billPageURL string) ([]string, error) {
	billDocument, err := client.getDocument(billPageURL)
	if err != nil {
		return nil, err
	}

	textLink := billDocument.Find("div.modalBtnGroup a").First()
	textHref, exists := textLink.Attr("href")
	if !exists {
		return nil, fmt.Errorf("no bill text link found at %s", billPageURL)
	}
	textURL, err := resolveHref(textHref)
	if err != nil {
		return nil, fmt.Errorf("resolving bill text link: %w", err)
	}

	textDocument, err := client.getDocument(textURL)
	if err != nil {
		return nil, err
	}

	textContainer := textDocument.Find("div.modal-body div").First()
	if textContainer.Length() == 0 {
		return nil, fmt.Errorf("no bill text container found at %s", textURL)
	}

	return collectTextNodes(textContainer), nil
}
