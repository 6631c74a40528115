package paper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unmaskedindia/press/internal/sponsor"
)

const testTemplate = `<!DOCTYPE html>
<html lang="en">
<head><title>Unmasked India</title></head>
<body>
<div class="sponsors-top">{{ gold_sponsors_html }}</div>
<p class="dateline">{{ today_date }}</p>
<main>{{ articles_html }}</main>
<div class="sponsors-bottom">{{ silver_sponsors_html }}</div>
</body>
</html>`

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestBuildDocumentRoundTrip(t *testing.T) {
	fragment := "<h3>T</h3><p>S</p>"
	out, err := BuildDocument(testTemplate, []string{fragment}, sponsor.Absent, sponsor.Absent, "", "Monday, 01 January 2024")
	require.NoError(t, err)

	assert.Contains(t, out, "Monday, 01 January 2024")
	assert.Contains(t, out, fragment)
	assert.NotContains(t, out, "{{")
	assert.NotContains(t, out, "}}")
}

func TestBuildDocumentWrapsArticlesInOrder(t *testing.T) {
	out, err := BuildDocument(testTemplate, []string{"<p>first</p>", "<p>second</p>"},
		sponsor.Absent, sponsor.Absent, "", "Monday, 01 January 2024")
	require.NoError(t, err)

	first := strings.Index(out, "<article><p>first</p></article>")
	second := strings.Index(out, "<article><p>second</p></article>")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestBuildDocumentGoldSponsor(t *testing.T) {
	gold := sponsor.NewTier([]sponsor.Sponsor{{Name: "Acme", LogoURL: "https://x/a.png"}})
	out, err := BuildDocument(testTemplate, nil, gold, sponsor.Absent, "", "Monday, 01 January 2024")
	require.NoError(t, err)

	doc := parseDoc(t, out)
	imgs := doc.Find(".sponsors-top img")
	require.Equal(t, 1, imgs.Length())

	src, _ := imgs.Attr("src")
	alt, _ := imgs.Attr("alt")
	assert.Equal(t, "https://x/a.png", src)
	assert.Equal(t, "Acme", alt)

	// Gold section stays visible, silver is hidden.
	_, hidden := doc.Find(".sponsors-top").Attr("style")
	assert.False(t, hidden)
	style, _ := doc.Find(".sponsors-bottom").Attr("style")
	assert.Equal(t, "display:none", style)
}

func TestBuildDocumentHidesAbsentTiers(t *testing.T) {
	out, err := BuildDocument(testTemplate, nil, sponsor.Absent, sponsor.Absent, "", "Monday, 01 January 2024")
	require.NoError(t, err)

	doc := parseDoc(t, out)
	assert.Equal(t, 0, doc.Find("img").Length())

	for _, selector := range []string{".sponsors-top", ".sponsors-bottom"} {
		style, ok := doc.Find(selector).Attr("style")
		require.True(t, ok, "expected %s to carry a style attribute", selector)
		assert.Equal(t, "display:none", style)
	}
}

func TestBuildDocumentZeroArticles(t *testing.T) {
	out, err := BuildDocument(testTemplate, nil, sponsor.Absent, sponsor.Absent, "", "Monday, 01 January 2024")
	require.NoError(t, err)

	doc := parseDoc(t, out)
	assert.Equal(t, 0, doc.Find("article").Length())
	assert.Equal(t, "Monday, 01 January 2024", doc.Find(".dateline").Text())
}

func TestBuildDocumentBodyClass(t *testing.T) {
	out, err := BuildDocument(testTemplate, nil, sponsor.Absent, sponsor.Absent, "lang-hi", "Monday, 01 January 2024")
	require.NoError(t, err)
	assert.True(t, parseDoc(t, out).Find("body").HasClass("lang-hi"))

	out, err = BuildDocument(testTemplate, nil, sponsor.Absent, sponsor.Absent, "", "Monday, 01 January 2024")
	require.NoError(t, err)
	assert.False(t, parseDoc(t, out).Find("body").HasClass("lang-hi"))
}

func TestBuildDocumentMissingPlaceholder(t *testing.T) {
	broken := strings.Replace(testTemplate, "{{ today_date }}", "", 1)
	_, err := BuildDocument(broken, nil, sponsor.Absent, sponsor.Absent, "", "Monday, 01 January 2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "today_date")
}

func TestSponsorMarkup(t *testing.T) {
	tier := sponsor.NewTier([]sponsor.Sponsor{
		{Name: "Acme", LogoURL: "https://x/a.png"},
		{Name: "Globex", LogoURL: "https://x/g.png"},
	})
	markup := SponsorMarkup(tier)
	assert.Equal(t, `<img src="https://x/a.png" alt="Acme"><img src="https://x/g.png" alt="Globex">`, markup)

	assert.Empty(t, SponsorMarkup(sponsor.Absent))
}

func TestSponsorMarkupEscapesAttributes(t *testing.T) {
	tier := sponsor.NewTier([]sponsor.Sponsor{{Name: `A "&" B`, LogoURL: "https://x/a.png?a=1&b=2"}})
	markup := SponsorMarkup(tier)
	assert.Contains(t, markup, `alt="A &#34;&amp;&#34; B"`)
	assert.NotContains(t, markup, `alt="A "`)
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "Monday, 01 January 2024", FormatDate(d))
}

func TestAssembler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.html")
	require.NoError(t, os.WriteFile(path, []byte(testTemplate), 0644))

	a, err := NewAssembler(path, "Asia/Kolkata")
	require.NoError(t, err)
	a.now = func() time.Time {
		return time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	}

	out, err := a.Assemble([]string{"<p>x</p>"}, sponsor.Absent, sponsor.Absent, "")
	require.NoError(t, err)
	assert.Contains(t, out, "Monday, 01 January 2024")
}

func TestAssemblerMissingTemplate(t *testing.T) {
	a, err := NewAssembler(filepath.Join(t.TempDir(), "nope.html"), "Asia/Kolkata")
	require.NoError(t, err)

	_, err = a.Assemble(nil, sponsor.Absent, sponsor.Absent, "")
	assert.Error(t, err)
}

func TestNewAssemblerBadTimezone(t *testing.T) {
	_, err := NewAssembler("template.html", "Not/AZone")
	assert.Error(t, err)
}
