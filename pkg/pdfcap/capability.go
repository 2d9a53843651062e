// Package pdfcap defines the PDF editing capability the replacement engine
// runs against: page enumeration, literal text search, redaction, span
// inventory, and text insertion. The PDF content model itself lives behind
// these interfaces; backends in this package provide it.
package pdfcap

// Document represents an open PDF document with mutable pages
type Document interface {
	// PageCount returns the total number of pages
	PageCount() int

	// Page returns a specific page by index (0-based)
	Page(index int) (Page, error)

	// Save writes the document, including any applied edits, to path
	Save(path string) error

	// Close releases resources associated with the document
	Close() error
}

// Page represents a single page in a PDF document
type Page interface {
	// Search returns the bounding box of every occurrence of the literal
	// string on the page. The match is case-sensitive and exact; no regex,
	// no ligature or hyphenation normalization.
	Search(literal string) ([]BoundingBox, error)

	// AddRedaction marks a region for destructive removal, replacing its
	// content with the given fill text (usually empty)
	AddRedaction(box BoundingBox, fill string) error

	// ApplyRedactions commits all pending redactions on the page
	ApplyRedactions() error

	// TextSpans returns the page's current text inventory, one entry per
	// contiguous run of text sharing a font size
	TextSpans() ([]Span, error)

	// InsertText draws text starting at the given point
	InsertText(at Point, text string, fontSize float64, color Color) error
}

// BoundingBox represents a rectangular area with coordinates
type BoundingBox struct {
	X0 float64 // Left
	Y0 float64 // Top
	X1 float64 // Right
	Y1 float64 // Bottom
}

// Width returns the width of the bounding box
func (b BoundingBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the height of the bounding box
func (b BoundingBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Intersects checks if two bounding boxes intersect
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return !(b.X1 < other.X0 || b.X0 > other.X1 || b.Y1 < other.Y0 || b.Y0 > other.Y1)
}

// BottomLeft returns the bottom-left corner of the box, the anchor point
// used when inserting replacement text
func (b BoundingBox) BottomLeft() Point {
	return Point{X: b.X0, Y: b.Y1}
}

// Point is a position on a page
type Point struct {
	X float64
	Y float64
}

// Span is a contiguous run of text sharing one font size within a line
type Span struct {
	Text string
	Size float64
}

// Color is an RGB color with components in [0, 1]
type Color struct {
	R float64
	G float64
	B float64
}

// Black is the color used for inserted replacement text
var Black = Color{R: 0, G: 0, B: 0}
