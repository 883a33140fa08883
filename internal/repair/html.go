package repair

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// looksLikeHTML tells a rendered page apart from plain text that a server
// merely labelled text/html.
func looksLikeHTML(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<pre")
}

// htmlToScript pulls the first <pre> block out of an HTML rendering of the
// answer. Pages without one fall back to their visible text.
func htmlToScript(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	if pre := doc.Find("pre").First(); pre.Length() > 0 {
		return pre.Text(), nil
	}
	return strings.TrimSpace(doc.Text()), nil
}
