// Package textblocks converts loosely structured plain text (paragraphs plus
// "*" / "-" bullet lines) into inline-styled email markup.
package textblocks

import (
	"fmt"
	"regexp"
	"strings"
)

// Glyph selects how list items are rendered.
type Glyph string

const (
	GlyphDot       Glyph = "dot"       // browser default bulleted list
	GlyphCheckmark Glyph = "checkmark" // ✓ column with accent color
	GlyphArrow     Glyph = "arrow"     // → column with accent color
	GlyphNone      Glyph = "none"      // no visual marker, items flush left
)

type blockKind int

const (
	blockParagraph blockKind = iota
	blockList
)

type block struct {
	kind  blockKind
	lines []string
}

var bulletRegexp = regexp.MustCompile(`^\s*[*-]\s*`)

// ToMarkup renders text as a sequence of paragraph and list blocks.
// Consecutive lines of the same kind merge into one block; a kind change
// starts a new block. Blank lines never terminate a block, they are simply
// dropped. The function is total: empty input yields an empty string.
func ToMarkup(text string, glyph Glyph, accent string) string {
	blocks := parse(text)
	if len(blocks) == 0 {
		return ""
	}

	var b strings.Builder
	for _, blk := range blocks {
		switch blk.kind {
		case blockParagraph:
			renderParagraph(&b, blk.lines)
		case blockList:
			renderList(&b, blk.lines, glyph, accent)
		}
	}
	return b.String()
}

func parse(text string) []block {
	var blocks []block
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		kind := blockParagraph
		content := line
		if bulletRegexp.MatchString(line) {
			kind = blockList
			content = bulletRegexp.ReplaceAllString(line, "")
		}
		content = strings.TrimSpace(content)

		if len(blocks) > 0 && blocks[len(blocks)-1].kind == kind {
			last := &blocks[len(blocks)-1]
			last.lines = append(last.lines, content)
			continue
		}
		blocks = append(blocks, block{kind: kind, lines: []string{content}})
	}
	return blocks
}

func renderParagraph(b *strings.Builder, lines []string) {
	// Mid-paragraph line breaks become separate paragraphs on purpose.
	for _, line := range lines {
		b.WriteString("<p>")
		b.WriteString(line)
		b.WriteString("</p>")
	}
}

func renderList(b *strings.Builder, items []string, glyph Glyph, accent string) {
	switch glyph {
	case GlyphCheckmark, GlyphArrow:
		marker := "✓"
		if glyph == GlyphArrow {
			marker = "→"
		}
		b.WriteString(`<div style="margin:0 0 12px 0;">`)
		for _, item := range items {
			fmt.Fprintf(b,
				`<div style="display:table;margin:0 0 6px 0;"><span style="display:table-cell;width:22px;color:%s;font-weight:bold;">%s</span><span style="display:table-cell;">%s</span></div>`,
				accent, marker, item)
		}
		b.WriteString(`</div>`)
	case GlyphNone:
		b.WriteString(`<ul style="margin:0 0 12px 0;padding:0;list-style:none;">`)
		for _, item := range items {
			b.WriteString("<li>")
			b.WriteString(item)
			b.WriteString("</li>")
		}
		b.WriteString(`</ul>`)
	default: // GlyphDot
		b.WriteString(`<ul style="margin:0 0 12px 0;padding:0 0 0 24px;">`)
		for _, item := range items {
			b.WriteString("<li>")
			b.WriteString(item)
			b.WriteString("</li>")
		}
		b.WriteString(`</ul>`)
	}
}
