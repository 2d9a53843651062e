// Package pdfreplacer performs literal text find-and-replace across PDF
// documents, driven by a CSV mapping table, preserving page layout and
// approximate font size.
package pdfreplacer

import (
	"github.com/sirupsen/logrus"

	"github.com/Qcasares/pdf-text-replacer/pkg/mapping"
	"github.com/Qcasares/pdf-text-replacer/pkg/pdfcap"
	"github.com/Qcasares/pdf-text-replacer/pkg/replacer"
)

// Re-export types from the internal packages for public API
type (
	Mapping     = mapping.Mapping
	Entry       = mapping.Entry
	Document    = pdfcap.Document
	Page        = pdfcap.Page
	BoundingBox = pdfcap.BoundingBox
	Point       = pdfcap.Point
	Span        = pdfcap.Span
	Color       = pdfcap.Color
	Engine      = replacer.Engine
	Runner      = replacer.Runner
	Summary     = replacer.Summary
	ScanResult  = replacer.ScanResult
)

// Re-export error kinds
var (
	ErrMappingNotFound = mapping.ErrNotFound
	ErrMappingSchema   = mapping.ErrSchema
	ErrMappingEmpty    = mapping.ErrEmpty
	ErrPDFNotFound     = replacer.ErrNotFound
	ErrPDFIO           = replacer.ErrIO
	ErrPDFProcessing   = replacer.ErrProcessing
)

// LoadMapping loads the CSV mapping table at path
func LoadMapping(path string, log *logrus.Logger) (*Mapping, error) {
	return mapping.Load(path, log)
}

// OpenDocument opens a PDF for editing through the default backend
func OpenDocument(path string) (Document, error) {
	return pdfcap.OpenPyMuPDF(path)
}

// ReplaceFile applies the mapping to inputPath and writes the result to
// outputPath, returning the number of replacements made
func ReplaceFile(inputPath, outputPath string, m *Mapping, log *logrus.Logger) (int, error) {
	return replacer.NewEngine(log).ReplaceFile(inputPath, outputPath, m)
}

// Scan counts mapping matches in a file without modifying it
func Scan(path string, m *Mapping, log *logrus.Logger) (*ScanResult, error) {
	return replacer.Scan(path, m, log)
}
