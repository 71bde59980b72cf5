package render

import (
	"regexp"
	"strings"

	"github.com/promoforge/promoforge/pkg/colors"
)

// The nine fixed design literals templates use for themable accents.
// Recoloring is a textual find/replace of exactly these values; any other
// literal color in a template is never retouched.
const (
	DesignPrimary            = "#e9530e"
	DesignPrimaryDark        = "#d74d0d"
	DesignPrimaryDarker      = "#c3450c"
	DesignBadgeBackground    = "#fce5db"
	DesignBadgeBorder        = "#f6ba9f"
	DesignPanelBackground    = "#fdeee7"
	DesignPanelBorder        = "#fad4c3"
	DesignPanelAltBackground = "#fef5f1"
	DesignPanelAltBorder     = "#fbddcf"

	// The primary also appears as a bare decimal triplet inside rgba()
	// expressions; that form is matched exactly, not case-insensitively.
	DesignPrimaryTriplet = "233, 83, 14"
)

// Palette holds the nine tones derived from one operator-chosen theme
// color. Each field keeps its original design value when derivation fails
// for that tone.
type Palette struct {
	Primary            string `json:"primary"`
	PrimaryDark        string `json:"primary_dark"`
	PrimaryDarker      string `json:"primary_darker"`
	BadgeBackground    string `json:"badge_background"`
	BadgeBorder        string `json:"badge_border"`
	PanelBackground    string `json:"panel_background"`
	PanelBorder        string `json:"panel_border"`
	PanelAltBackground string `json:"panel_alt_background"`
	PanelAltBorder     string `json:"panel_alt_border"`
}

// ComputePalette derives the palette from themeColor. The darken tones use
// the perceptual blend toward black, the light tints the linear blend
// toward white; the pairing is fixed, it mirrors how the original design
// tones were produced.
func ComputePalette(themeColor string) Palette {
	derive := func(original string, ratio float64, linear bool) string {
		target := ""
		if ratio > 0 {
			target = "#ffffff"
		}
		derived, err := colors.Derive(ratio, themeColor, target, linear)
		if err != nil {
			return original
		}
		return derived
	}

	return Palette{
		Primary:            derive(DesignPrimary, 0, false),
		PrimaryDark:        derive(DesignPrimaryDark, -0.15, false),
		PrimaryDarker:      derive(DesignPrimaryDarker, -0.30, false),
		BadgeBackground:    derive(DesignBadgeBackground, 0.85, true),
		BadgeBorder:        derive(DesignBadgeBorder, 0.60, true),
		PanelBackground:    derive(DesignPanelBackground, 0.90, true),
		PanelBorder:        derive(DesignPanelBorder, 0.75, true),
		PanelAltBackground: derive(DesignPanelAltBackground, 0.94, true),
		PanelAltBorder:     derive(DesignPanelAltBorder, 0.80, true),
	}
}

// replacements pairs each design literal with its derived tone.
func (p Palette) replacements() [9][2]string {
	return [9][2]string{
		{DesignPrimary, p.Primary},
		{DesignPrimaryDark, p.PrimaryDark},
		{DesignPrimaryDarker, p.PrimaryDarker},
		{DesignBadgeBackground, p.BadgeBackground},
		{DesignBadgeBorder, p.BadgeBorder},
		{DesignPanelBackground, p.PanelBackground},
		{DesignPanelBorder, p.PanelBorder},
		{DesignPanelAltBackground, p.PanelAltBackground},
		{DesignPanelAltBorder, p.PanelAltBorder},
	}
}

// Case-insensitive matchers for the hex design literals, built once.
var designLiteralRegexps = func() map[string]*regexp.Regexp {
	matchers := make(map[string]*regexp.Regexp, 9)
	for _, literal := range []string{
		DesignPrimary, DesignPrimaryDark, DesignPrimaryDarker,
		DesignBadgeBackground, DesignBadgeBorder,
		DesignPanelBackground, DesignPanelBorder,
		DesignPanelAltBackground, DesignPanelAltBorder,
	} {
		matchers[literal] = regexp.MustCompile("(?i)" + regexp.QuoteMeta(literal))
	}
	return matchers
}()

// Recolor replaces every occurrence of each design literal in source with
// the corresponding derived tone. Hex forms match case-insensitively; the
// primary's decimal triplet form matches exactly. This is a textual pass
// over the whole template source, not a semantic CSS edit.
func Recolor(source string, p Palette) string {
	for _, pair := range p.replacements() {
		source = designLiteralRegexps[pair[0]].ReplaceAllLiteralString(source, pair[1])
	}
	if triplet, err := colors.Triplet(p.Primary); err == nil {
		source = strings.ReplaceAll(source, DesignPrimaryTriplet, triplet)
	}
	return source
}
