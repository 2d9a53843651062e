package pdfcap

import (
	"fmt"
	"os"
	"strings"
)

// MemDocument implements the Document interface with an in-memory span
// model. It backs tests and programmatic use where no real PDF engine is
// wanted; Save writes a plain-text dump of the page contents.
type MemDocument struct {
	pages  []*MemPage
	closed bool
}

// NewMemDocument creates a document from the given pages
func NewMemDocument(pages ...*MemPage) *MemDocument {
	return &MemDocument{pages: pages}
}

// PageCount returns the total number of pages
func (d *MemDocument) PageCount() int {
	return len(d.pages)
}

// Page returns a specific page by index (0-based)
func (d *MemDocument) Page(index int) (Page, error) {
	if d.closed {
		return nil, fmt.Errorf("document is closed")
	}
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// Save writes a text dump of all pages to path
func (d *MemDocument) Save(path string) error {
	if d.closed {
		return fmt.Errorf("document is closed")
	}
	var sb strings.Builder
	for i, page := range d.pages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(page.Text())
	}
	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// Close releases the document; further page access fails
func (d *MemDocument) Close() error {
	d.closed = true
	return nil
}

type memSpan struct {
	text string
	size float64
	box  BoundingBox
}

type pendingRedaction struct {
	box  BoundingBox
	fill string
}

// MemPage is a page in a MemDocument
type MemPage struct {
	spans   []memSpan
	pending []pendingRedaction
}

// NewMemPage creates an empty page
func NewMemPage() *MemPage {
	return &MemPage{}
}

// AddSpan places a text run on the page
func (p *MemPage) AddSpan(text string, fontSize float64, box BoundingBox) *MemPage {
	p.spans = append(p.spans, memSpan{text: text, size: fontSize, box: box})
	return p
}

// Text returns the page's current text, one span per line
func (p *MemPage) Text() string {
	parts := make([]string, 0, len(p.spans))
	for _, s := range p.spans {
		parts = append(parts, s.text)
	}
	return strings.Join(parts, "\n")
}

// Search returns the bounding box of every occurrence of the literal string
func (p *MemPage) Search(literal string) ([]BoundingBox, error) {
	if literal == "" {
		return nil, fmt.Errorf("empty search string")
	}
	var boxes []BoundingBox
	for _, s := range p.spans {
		runes := []rune(s.text)
		if len(runes) == 0 {
			continue
		}
		charW := s.box.Width() / float64(len(runes))
		needle := []rune(literal)
		for i := 0; i+len(needle) <= len(runes); {
			if string(runes[i:i+len(needle)]) == literal {
				boxes = append(boxes, BoundingBox{
					X0: s.box.X0 + float64(i)*charW,
					Y0: s.box.Y0,
					X1: s.box.X0 + float64(i+len(needle))*charW,
					Y1: s.box.Y1,
				})
				i += len(needle)
			} else {
				i++
			}
		}
	}
	return boxes, nil
}

// AddRedaction marks a region for removal on the next ApplyRedactions
func (p *MemPage) AddRedaction(box BoundingBox, fill string) error {
	p.pending = append(p.pending, pendingRedaction{box: box, fill: fill})
	return nil
}

// ApplyRedactions removes the characters covered by every pending
// redaction, splitting spans around the removed region
func (p *MemPage) ApplyRedactions() error {
	for _, red := range p.pending {
		var next []memSpan
		for _, s := range p.spans {
			next = append(next, redactSpan(s, red.box)...)
		}
		p.spans = next
	}
	p.pending = nil
	return nil
}

// redactSpan returns the surviving fragments of a span after removing the
// characters whose centers fall inside box
func redactSpan(s memSpan, box BoundingBox) []memSpan {
	if !s.box.Intersects(box) {
		return []memSpan{s}
	}
	runes := []rune(s.text)
	if len(runes) == 0 {
		return nil
	}
	charW := s.box.Width() / float64(len(runes))

	covered := func(i int) bool {
		center := s.box.X0 + (float64(i)+0.5)*charW
		return center >= box.X0 && center <= box.X1
	}

	var out []memSpan
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		out = append(out, memSpan{
			text: string(runes[start:end]),
			size: s.size,
			box: BoundingBox{
				X0: s.box.X0 + float64(start)*charW,
				Y0: s.box.Y0,
				X1: s.box.X0 + float64(end)*charW,
				Y1: s.box.Y1,
			},
		})
		start = -1
	}
	for i := range runes {
		if covered(i) {
			flush(i)
		} else if start < 0 {
			start = i
		}
	}
	flush(len(runes))
	return out
}

// TextSpans returns the page's current text inventory
func (p *MemPage) TextSpans() ([]Span, error) {
	spans := make([]Span, 0, len(p.spans))
	for _, s := range p.spans {
		spans = append(spans, Span{Text: s.text, Size: s.size})
	}
	return spans, nil
}

// InsertText draws text starting at the given baseline point. The width is
// approximated at half the font size per character.
func (p *MemPage) InsertText(at Point, text string, fontSize float64, color Color) error {
	if text == "" {
		return nil
	}
	w := 0.5 * fontSize * float64(len([]rune(text)))
	p.spans = append(p.spans, memSpan{
		text: text,
		size: fontSize,
		box: BoundingBox{
			X0: at.X,
			Y0: at.Y - fontSize,
			X1: at.X + w,
			Y1: at.Y,
		},
	})
	return nil
}
