package htmlutil

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("bestiary.lib.htmlutil")

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	walkText(node, func(text string) {
		buffer.WriteString(text)
	})
	return buffer.String()
}

// GetStrippedText trims every text fragment under the selection, drops the
// empty ones and joins the rest without a separator, so "<td> Armor <b>Class</b> </td>"
// becomes "ArmorClass" and "<td> 7 </td>" becomes "7".
func GetStrippedText(sel *goquery.Selection) string {
	var buffer bytes.Buffer
	for _, n := range sel.Nodes {
		walkText(n, func(text string) {
			buffer.WriteString(strings.TrimSpace(text))
		})
	}
	return buffer.String()
}

func walkText(node *html.Node, visit func(text string)) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		visit(node.Data)
		return
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walkText(child, visit)
	}
}

type Anchor struct {
	Name string
	// Href is the raw attribute value, empty when the anchor has none.
	Href string
}

var innerWhitespace = regexp.MustCompile(`\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText collapses runs of whitespace and removes non-printable runes.
func CleanText(s string) string {
	s = innerWhitespace.ReplaceAllString(s, " ")
	s = removeNonPrintable(s)
	return strings.Trim(s, " \t\n")
}

func GetAnchors(ctx context.Context, sel *goquery.Selection) []Anchor {
	_, span := tracer.Start(ctx, "GetAnchors")
	defer span.End()

	anchors := []Anchor{}
	for _, n := range sel.Nodes {
		href := ""
		for _, a := range n.Attr {
			if a.Key == "href" {
				href = a.Val
				break
			}
		}

		name := CleanText(GetText(n))
		anchors = append(anchors, Anchor{
			Name: name,
			Href: href,
		})
		span.AddEvent("anchor", trace.WithAttributes(
			attribute.String("name", name),
			attribute.String("href", href),
		))
	}

	return anchors
}
