package fetch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Preview is the distilled view of a university's official page: enough for
// the frontend to render a link card without loading the page itself.
type Preview struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Headings    []string `json:"headings,omitempty"`
}

// maxHeadings caps how many section headings a preview carries.
const maxHeadings = 5

// ExtractPreview parses a page and pulls out its title, description, and top
// section headings. Open Graph tags win over plain HTML equivalents since
// institutional sites tend to curate them.
func ExtractPreview(urlStr, html string) (*Preview, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, script, style, noscript, .cookie-banner, .popup").Remove()

	preview := &Preview{
		URL:         urlStr,
		Title:       pageTitle(doc),
		Description: pageDescription(doc),
	}

	doc.Find("h1, h2").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := cleanWhitespace(sel.Text())
		if text != "" {
			preview.Headings = append(preview.Headings, text)
		}
		return len(preview.Headings) < maxHeadings
	})

	return preview, nil
}

func pageTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && og != "" {
		return cleanWhitespace(og)
	}
	return cleanWhitespace(doc.Find("title").First().Text())
}

func pageDescription(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok && og != "" {
		return cleanWhitespace(og)
	}
	if meta, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && meta != "" {
		return cleanWhitespace(meta)
	}
	// Fall back to the first non-empty paragraph.
	var fallback string
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if text := cleanWhitespace(sel.Text()); text != "" {
			fallback = text
			return false
		}
		return true
	})
	return fallback
}

// cleanWhitespace collapses runs of whitespace into single spaces.
func cleanWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
