package malegislature

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestParseLawText(t *testing.T) {
	lawHTML := `<html><body><div>
		<h2 id="skipTo">Section 2: Fees</h2>
		<p>The fee shall be </p><p>ten dollars per year.</p>
	</div></body></html>`

	document, err := goquery.NewDocumentFromReader(strings.NewReader(lawHTML))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	lawText, err := parseLawText(document)
	if err != nil {
		t.Fatalf("parseLawText failed: %v", err)
	}

	if !strings.Contains(lawText, "Section 2: Fees") {
		t.Errorf("law text missing title: %q", lawText)
	}
	// Adjacent text nodes concatenate without separators.
	if !strings.Contains(lawText, "The fee shall be ten dollars per year.") {
		t.Errorf("law text not concatenated in order: %q", lawText)
	}
}

func TestParseLawTextMissingContainer(t *testing.T) {
	document, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body><p>gone</p></body></html>"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if _, err := parseLawText(document); err == nil {
		t.Fatal("parseLawText succeeded without a skip-to heading")
	}
}
