package htmlutil

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func parse(t testing.TB, body string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestGetText(t *testing.T) {
	doc := parse(t, `<p>Hello <b>big</b> world<!-- hidden --></p>`)
	require.Equal(t, "Hello big world", GetText(doc.Find("p").Nodes[0]))
}

func TestGetStrippedText(t *testing.T) {
	table := []struct {
		body     string
		expected string
	}{
		{body: `<div> 7 </div>`, expected: "7"},
		{body: `<div>Armor Class:</div>`, expected: "Armor Class:"},
		{body: "<div>\n  Armor <b> Class </b>\n</div>", expected: "ArmorClass"},
		{body: `<div>   </div>`, expected: ""},
		{body: `<div></div>`, expected: ""},
	}

	for _, row := range table {
		doc := parse(t, row.body)
		require.Equal(t, row.expected, GetStrippedText(doc.Find("div")))
	}
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "Giant Rat", CleanText("\n  Giant \t  Rat \n"))
	require.Equal(t, "", CleanText("   "))
}

func TestGetAnchors(t *testing.T) {
	doc := parse(t, `
		<ul>
			<li><a href="goblin/">  Goblin </a></li>
			<li><a href="../">Parent</a></li>
			<li><a>No link</a></li>
		</ul>`)

	anchors := GetAnchors(context.Background(), doc.Find("a"))
	diff := cmp.Diff([]Anchor{
		{Name: "Goblin", Href: "goblin/"},
		{Name: "Parent", Href: "../"},
		{Name: "No link", Href: ""},
	}, anchors)
	if diff != "" {
		t.Fatal(diff)
	}
}
