// Package render is the template-rendering and theming engine. Given a
// template (HTML+CSS with {{token}} placeholders and fixed design color
// literals), the operator's input bundle and a market code, it produces the
// final HTML fragment, the recolored stylesheet and a plain-text fallback.
//
// Rendering is a single-pass pure transformation: no I/O, no shared state,
// safe to invoke concurrently. It never fails; missing or malformed
// optional inputs degrade to empty output or original design values.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/promoforge/promoforge/pkg/textblocks"
)

// Template is the renderable source form: positional {{token}} placeholders
// in the HTML, design color literals in both HTML and CSS.
type Template struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	RequiredImageCount int    `json:"required_image_count"`
	HTMLSource         string `json:"html_source"`
	CSSSource          string `json:"css_source"`
}

// MarketInput carries the operator's per-market commercial data. No record
// exists until the operator selects that market.
type MarketInput struct {
	Price      *float64 `json:"price,omitempty"`
	ProductURL string   `json:"product_url,omitempty"`
}

// CopyDescription is the structured body copy: an intro paragraph and an
// ordered bullet list.
type CopyDescription struct {
	Intro   string   `json:"intro"`
	Bullets []string `json:"bullets,omitempty"`
}

// GeneratedCopy is per-market marketing copy, produced by the external
// text-generation collaborator or hand-edited. Absence for a market falls
// back to the shared operator-entered fields.
type GeneratedCopy struct {
	SenderName    string          `json:"sender_name,omitempty"`
	SubjectTitle  string          `json:"subject_title,omitempty"`
	PreheaderText string          `json:"preheader_text,omitempty"`
	Headline      string          `json:"headline,omitempty"`
	Description   CopyDescription `json:"description"`
}

// descriptionText flattens the structured description back into the
// bullet-line text form the block parser consumes.
func (c GeneratedCopy) descriptionText() string {
	var lines []string
	if c.Description.Intro != "" {
		lines = append(lines, c.Description.Intro)
	}
	for _, bullet := range c.Description.Bullets {
		lines = append(lines, "* "+bullet)
	}
	return strings.Join(lines, "\n")
}

// Inputs aggregates everything the operator controls for one campaign.
type Inputs struct {
	BrandKey     string                   `json:"brand_key"`
	ThemeColor   string                   `json:"theme_color"`
	SpecialPrice bool                     `json:"special_price"`
	Description  string                   `json:"description"`
	Subject      string                   `json:"subject"`
	Preheader    string                   `json:"preheader"`
	Headline     string                   `json:"headline"`
	BulletGlyph  textblocks.Glyph         `json:"bullet_glyph"`
	Images       []string                 `json:"images"`
	Markets      map[string]MarketInput   `json:"markets"`
	Copy         map[string]GeneratedCopy `json:"copy,omitempty"`
	Testimonials map[string]Testimonial   `json:"testimonials,omitempty"`
}

// Request identifies one render: a template, the input bundle, a market and
// the preview flag. Preview mode fills empty image slots with a placeholder
// image; export mode leaves them empty.
type Request struct {
	Template   *Template
	Inputs     *Inputs
	MarketCode string
	Preview    bool
}

// Result is the render output. HTML is a token-substituted, recolored
// fragment, not a full document; callers wrap it for export.
type Result struct {
	HTML    string `json:"html"`
	CSS     string `json:"css"`
	AltBody string `json:"alt_body"`
}

// PricePlaceholder is replaced in subject and preheader text with the
// formatted market price.
const PricePlaceholder = "%price%"

// A token is any {{...}} run, matched non-greedily up to the next closing
// braces. Tokens without a table entry pass through verbatim, so unrelated
// double-brace syntax in a template survives rendering.
var tokenRegexp = regexp.MustCompile(`\{\{(.+?)\}\}`)

// Render produces the themed, localized output for one market. If the
// template, inputs or market code is absent it returns the zero Result
// rather than failing; callers check for emptiness.
func Render(req Request) Result {
	if req.Template == nil || req.Inputs == nil || req.MarketCode == "" {
		return Result{}
	}
	tpl, in := req.Template, req.Inputs

	brand := BrandFor(in.BrandKey)
	market := MarketFor(req.MarketCode)
	strs := StringsFor(req.MarketCode)
	marketInput := in.Markets[req.MarketCode]

	var formattedPrice string
	if marketInput.Price != nil {
		formattedPrice = FormatPrice(*marketInput.Price, market.Locale, market.CurrencyCode)
	}

	pal := ComputePalette(in.ThemeColor)
	priceDisplay := buildPriceDisplay(formattedPrice, in.SpecialPrice, strs, pal)

	descMarkup := textblocks.ToMarkup(resolveDescription(in, req.MarketCode), in.BulletGlyph, pal.Primary)

	marketCopy := in.Copy[req.MarketCode]
	subject := fallback(marketCopy.SubjectTitle, in.Subject)
	preheader := fallback(marketCopy.PreheaderText, in.Preheader)
	headline := fallback(marketCopy.Headline, in.Headline)
	subject = strings.ReplaceAll(subject, PricePlaceholder, formattedPrice)
	preheader = strings.ReplaceAll(preheader, PricePlaceholder, formattedPrice)

	tokens := map[string]string{
		"brand_name":  brand.Name,
		"brand_logo":  brand.LogoURL,
		"description": descMarkup,
		"preheader":   preheader,
		"subject":     subject,
		"headline":    headline,
		"price":       priceDisplay,
		"product_url": marketInput.ProductURL,
	}
	for i := 1; i <= tpl.RequiredImageCount; i++ {
		var url string
		if i-1 < len(in.Images) {
			url = in.Images[i-1]
		}
		if url == "" && req.Preview {
			url = PlaceholderImageURL
		}
		tokens[fmt.Sprintf("image_%d", i)] = url
	}
	for key, value := range strs {
		tokens["t."+key] = value
	}

	html := substituteTokens(Recolor(tpl.HTMLSource, pal), tokens)
	html = injectTestimonial(html, in.Testimonials[req.MarketCode], strs, pal)

	return Result{
		HTML:    html,
		CSS:     Recolor(tpl.CSSSource, pal),
		AltBody: buildAltBody(subject, descMarkup, strs[KeyMoreAboutProduct], marketInput.ProductURL),
	}
}

// resolveDescription picks the body copy source. The source market prefers
// the raw operator text; every other market prefers its generated copy and
// falls back to the raw text.
func resolveDescription(in *Inputs, marketCode string) string {
	generated := in.Copy[marketCode].descriptionText()
	if marketCode == SourceMarket {
		if in.Description != "" {
			return in.Description
		}
		return generated
	}
	if generated != "" {
		return generated
	}
	return in.Description
}

func fallback(value, shared string) string {
	if value != "" {
		return value
	}
	return shared
}

func substituteTokens(source string, tokens map[string]string) string {
	return tokenRegexp.ReplaceAllStringFunc(source, func(match string) string {
		if value, ok := tokens[match[2:len(match)-2]]; ok {
			return value
		}
		return match
	})
}
