package bestiary

import (
	"context"
	"strings"

	"bestiary-backend/lib/htmlutil"
	"bestiary-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// ParseStats reads the first table of a monster page. Only rows with exactly
// two cells count, the first cell is the label and the second its value.
func ParseStats(doc *goquery.Document) Stats {
	stats := Stats{}

	table := doc.Find("table").First()
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() != 2 {
			return
		}

		key := textutil.NormalizeFieldName(htmlutil.GetStrippedText(cells.Eq(0)))
		value := htmlutil.GetStrippedText(cells.Eq(1))
		if value == "" {
			value = Unknown
		}
		stats[key] = value
	})

	return stats
}

// ParseDescription returns the text of the last paragraph in the page's content
// container. found is false (and the placeholder is returned) when there is no
// container or it holds no paragraphs.
func ParseDescription(doc *goquery.Document) (description string, found bool) {
	content := doc.Find("div.e-content.entry-content").First()
	if content.Length() == 0 {
		return DescriptionUnavailable, false
	}
	paragraphs := content.Find("p")
	if paragraphs.Length() == 0 {
		return DescriptionUnavailable, false
	}
	return htmlutil.GetStrippedText(paragraphs.Last()), true
}

// ParseListing collects the monster links of the index page. Only links to a
// child directory are kept.
func ParseListing(ctx context.Context, doc *goquery.Document) []Entry {
	entries := []Entry{}

	postlist := doc.Find("div.postlist").First()
	for _, anchor := range htmlutil.GetAnchors(ctx, postlist.Find("a")) {
		href := anchor.Href
		if href == "" || !strings.HasSuffix(href, "/") || strings.HasPrefix(href, "../") {
			continue
		}
		entries = append(entries, Entry{
			Name: anchor.Name,
			Path: strings.Trim(href, "/"),
		})
	}

	return entries
}
