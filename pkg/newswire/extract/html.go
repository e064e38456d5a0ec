package extract

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainToHTML converts provider plain text to a body fragment. Text is
// escaped first, newlines become paragraph breaks, and runs of
// whitespace collapse to single spaces.
func PlainToHTML(text string) string {
	if text == "" {
		return ""
	}
	s := html.EscapeString(text)
	s = strings.ReplaceAll(s, "\r\n", "</p><p>")
	s = strings.ReplaceAll(s, "\n", "</p><p>")
	s = strings.ReplaceAll(s, "\r", "</p><p>")
	s = strings.Join(strings.Fields(s), " ")
	return "<p>" + s + "</p>"
}

// RewrapParagraphs re-renders a body fragment as a flat sequence of
// paragraphs, dropping markup the wire wrapped around them. Used for
// feeds that deliver fixed-width line breaks inside paragraph tags.
func RewrapParagraphs(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text == "" {
			return
		}
		sb.WriteString("<p>")
		sb.WriteString(html.EscapeString(text))
		sb.WriteString("</p>")
	})
	if sb.Len() == 0 {
		// No paragraph tags at all; treat the input as plain text.
		return PlainToHTML(doc.Text()), nil
	}
	return sb.String(), nil
}

// PreformattedBody wraps raw wire text in a pre block, preserving the
// provider's own line breaks.
func PreformattedBody(text string) string {
	return "<pre>" + html.EscapeString(text) + "</pre>"
}

// FirstParagraph returns the visible text of a fragment's first
// paragraph, whitespace-collapsed. A fragment without paragraph tags
// yields its first line.
func FirstParagraph(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	text := doc.Find("p").First().Text()
	if text == "" {
		text, _, _ = strings.Cut(doc.Text(), "\n")
	}
	return strings.Join(strings.Fields(text), " ")
}

// WordCount counts the whitespace-separated words of a fragment's
// visible text. Paragraphs count separately so that adjacent tags do
// not glue their boundary words together.
func WordCount(fragment string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return len(strings.Fields(fragment))
	}
	n := 0
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		n += len(strings.Fields(sel.Text()))
	})
	if n == 0 {
		return len(strings.Fields(doc.Text()))
	}
	return n
}
