// Package paper assembles the final newspaper document from the static
// template, sponsor tiers and analyzed article fragments.
package paper

import (
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/unmaskedindia/press/internal/sponsor"
)

// Placeholders substituted verbatim into the template.
const (
	goldPlaceholder     = "{{ gold_sponsors_html }}"
	silverPlaceholder   = "{{ silver_sponsors_html }}"
	datePlaceholder     = "{{ today_date }}"
	articlesPlaceholder = "{{ articles_html }}"
)

// Class names of the sponsor containers that get hidden when a tier is absent.
const (
	goldSectionSelector   = ".sponsors-top"
	silverSectionSelector = ".sponsors-bottom"
)

type Assembler struct {
	templatePath string
	location     *time.Location
	now          func() time.Time
}

func NewAssembler(templatePath, timezone string) (*Assembler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return &Assembler{
		templatePath: templatePath,
		location:     loc,
		now:          time.Now,
	}, nil
}

// Assemble reads the template and produces the complete document for one
// edition. bodyClass is empty for the default language.
func (a *Assembler) Assemble(fragments []string, gold, silver sponsor.Tier, bodyClass string) (string, error) {
	tmpl, err := os.ReadFile(a.templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}
	date := FormatDate(a.now().In(a.location))
	return BuildDocument(string(tmpl), fragments, gold, silver, bodyClass, date)
}

// FormatDate renders the front-page dateline, e.g. "Monday, 01 January 2024".
func FormatDate(t time.Time) string {
	return t.Format("Monday, 02 January 2006")
}

// SponsorMarkup renders one <img> per sponsor in list order, no separator.
// An absent tier yields an empty string.
func SponsorMarkup(t sponsor.Tier) string {
	var b strings.Builder
	for _, s := range t.Sponsors() {
		b.WriteString(`<img src="` + html.EscapeString(s.LogoURL) + `" alt="` + html.EscapeString(s.Name) + `">`)
	}
	return b.String()
}

// BuildDocument substitutes the four placeholders, hides the sections of
// absent sponsor tiers and tags the body for non-default editions. Every
// placeholder must appear in the template; a missing one is an error so
// broken templates fail loudly instead of leaking tokens into the output.
func BuildDocument(tmpl string, fragments []string, gold, silver sponsor.Tier, bodyClass, date string) (string, error) {
	var articles strings.Builder
	for _, f := range fragments {
		articles.WriteString("<article>" + f + "</article>")
	}

	// Articles go last so model output can never collide with a placeholder.
	out := tmpl
	for _, sub := range []struct{ token, value string }{
		{goldPlaceholder, SponsorMarkup(gold)},
		{silverPlaceholder, SponsorMarkup(silver)},
		{datePlaceholder, date},
		{articlesPlaceholder, articles.String()},
	} {
		var err error
		out, err = substitute(out, sub.token, sub.value)
		if err != nil {
			return "", err
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	if err != nil {
		return "", fmt.Errorf("failed to parse assembled page: %w", err)
	}

	if !gold.Present() {
		doc.Find(goldSectionSelector).SetAttr("style", "display:none")
	}
	if !silver.Present() {
		doc.Find(silverSectionSelector).SetAttr("style", "display:none")
	}
	if bodyClass != "" {
		doc.Find("body").AddClass(bodyClass)
	}

	rendered, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize page: %w", err)
	}
	return rendered, nil
}

func substitute(s, token, value string) (string, error) {
	if !strings.Contains(s, token) {
		return "", fmt.Errorf("template is missing placeholder %q", token)
	}
	return strings.ReplaceAll(s, token, value), nil
}
