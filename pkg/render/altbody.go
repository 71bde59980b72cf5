package render

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	tagRegexp        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegexp = regexp.MustCompile(`\s+`)
	lineBulletRegexp = regexp.MustCompile(`(?m)^\s*[*-]\s*`)
	glyphReplacer    = strings.NewReplacer("✓", " ", "→", " ")
)

// plainText strips HTML tags and bullet markers from rendered description
// markup and collapses all whitespace runs to single spaces.
func plainText(markup string) string {
	text := lineBulletRegexp.ReplaceAllString(markup, " ")
	// Keep adjacent blocks from running together once tags are gone.
	text = strings.ReplaceAll(text, "<", " <")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err == nil {
		text = doc.Text()
	} else {
		text = tagRegexp.ReplaceAllString(text, " ")
	}

	text = glyphReplacer.Replace(text)
	return strings.TrimSpace(whitespaceRegexp.ReplaceAllString(text, " "))
}

// buildAltBody assembles the plain-text fallback: subject, blank line,
// plain description, blank line, localized "more about product" label and
// the call-to-action URL.
func buildAltBody(subject, descriptionMarkup, moreLabel, ctaURL string) string {
	return subject + "\n\n" + plainText(descriptionMarkup) + "\n\n" + moreLabel + "\n" + ctaURL
}
