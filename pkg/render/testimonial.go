package render

import (
	"fmt"
	"strconv"
	"strings"
)

// Testimonial is the optional per-market trust block. It is rendered only
// when all three fields are present.
type Testimonial struct {
	Text             string  `json:"text"`
	Rating           float64 `json:"rating"`
	SatisfactionLine string  `json:"satisfaction_line"`
}

func (t Testimonial) complete() bool {
	return t.Text != "" && t.SatisfactionLine != "" && t.Rating > 0
}

// Marker comments templates carry as textual injection anchors.
const (
	MarkerTrustRow         = "<!-- Trust row -->"
	MarkerTrustRowOptional = "<!-- (Optional) Trust row -->"
	MarkerFooter           = "<!-- Footer -->"
)

// injectTestimonial inserts the testimonial block immediately before the
// earliest trust-row marker, falling back to the footer marker. When no
// marker exists, or the testimonial is incomplete, the HTML is returned
// unchanged.
func injectTestimonial(html string, t Testimonial, strs map[string]string, pal Palette) string {
	if !t.complete() {
		return html
	}

	at := -1
	for _, marker := range []string{MarkerTrustRow, MarkerTrustRowOptional} {
		if i := strings.Index(html, marker); i >= 0 && (at < 0 || i < at) {
			at = i
		}
	}
	if at < 0 {
		at = strings.Index(html, MarkerFooter)
	}
	if at < 0 {
		return html
	}
	return html[:at] + testimonialMarkup(t, strs, pal) + html[at:]
}

func testimonialMarkup(t Testimonial, strs map[string]string, pal Palette) string {
	rating := strings.ReplaceAll(strs[KeyAverageRating], "{rating}",
		strconv.FormatFloat(t.Rating, 'f', -1, 64))

	return fmt.Sprintf(
		`<!-- Testimonial --><table role="presentation" width="100%%" cellpadding="0" cellspacing="0" style="margin:24px 0;"><tr><td align="center" style="padding:16px;background-color:%s;border:1px solid %s;border-radius:6px;"><div style="font-size:20px;color:%s;letter-spacing:2px;">★★★★★</div><div style="font-size:13px;color:#6b6b6b;">%s</div><div style="font-size:14px;font-weight:bold;">%s</div><div style="font-size:14px;font-style:italic;">&ldquo;%s&rdquo;</div></td></tr></table>`,
		pal.PanelAltBackground, pal.PanelAltBorder, pal.Primary,
		rating, t.SatisfactionLine, t.Text)
}
