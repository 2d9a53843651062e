// Package replacer applies a loaded mapping to PDF documents: the per-page
// replacement engine, the batch orchestrator, and a read-only scanner.
package replacer

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Qcasares/pdf-text-replacer/pkg/mapping"
	"github.com/Qcasares/pdf-text-replacer/pkg/pdfcap"
)

// defaultFontSize is used when no span on the page still contains the
// searched text
const defaultFontSize = 11

// Opener opens a document through some capability backend
type Opener func(path string) (pdfcap.Document, error)

// Engine applies a mapping to every page of a document
type Engine struct {
	log  *logrus.Logger
	open Opener
}

// NewEngine creates an engine backed by the PyMuPDF helper, with a pdfcpu
// preflight check before each open
func NewEngine(log *logrus.Logger) *Engine {
	engine := &Engine{log: ensureLogger(log)}
	engine.open = func(path string) (pdfcap.Document, error) {
		info, err := pdfcap.Preflight(path)
		if err != nil {
			return nil, err
		}
		engine.log.Debugf("Preflight OK: %d pages", info.PageCount)
		return pdfcap.OpenPyMuPDF(path)
	}
	return engine
}

// NewEngineWithOpener creates an engine using a custom document opener
func NewEngineWithOpener(log *logrus.Logger, open Opener) *Engine {
	return &Engine{log: ensureLogger(log), open: open}
}

// ReplaceFile opens inputPath, applies the mapping, and saves the result to
// outputPath. Returns the number of replacements made.
func (e *Engine) ReplaceFile(inputPath, outputPath string, m *mapping.Mapping) (int, error) {
	if _, err := os.Stat(inputPath); err != nil {
		if os.IsNotExist(err) {
			return 0, kindErr(ErrNotFound, "open", inputPath, err)
		}
		return 0, kindErr(ErrIO, "open", inputPath, err)
	}

	e.log.Infof("Processing PDF: %s", inputPath)

	doc, err := e.open(inputPath)
	if err != nil {
		return 0, kindErr(ErrIO, "open", inputPath, err)
	}

	count, err := e.Replace(doc, m)
	if err != nil {
		doc.Close()
		return 0, err
	}

	if err := doc.Save(outputPath); err != nil {
		doc.Close()
		return 0, kindErr(ErrIO, "save", outputPath, err)
	}
	if err := doc.Close(); err != nil {
		return 0, kindErr(ErrIO, "close", inputPath, err)
	}

	e.log.Infof("Successfully created output PDF: %s", outputPath)
	e.log.Infof("Total replacements made: %d", count)
	return count, nil
}

// Replace applies every mapping entry to every page of an open document, in
// mapping insertion order, and returns the number of boxes replaced. Any
// per-page failure aborts the whole document with a zero count.
//
// Each redaction is committed immediately, so later searches on the same
// page run over the already-modified page. If a "to" value happens to match
// a later "from" value it will itself be replaced; this self-interference
// is a documented hazard, kept for fidelity with the original behavior.
func (e *Engine) Replace(doc pdfcap.Document, m *mapping.Mapping) (int, error) {
	e.log.Infof("Number of pages: %d", doc.PageCount())

	count := 0
	for pageNum := 0; pageNum < doc.PageCount(); pageNum++ {
		page, err := doc.Page(pageNum)
		if err != nil {
			return 0, kindErr(ErrProcessing, "page", pageLabel(pageNum), err)
		}

		e.log.Debugf("Processing page %d", pageNum+1)

		for _, entry := range m.Entries() {
			boxes, err := page.Search(entry.From)
			if err != nil {
				return 0, kindErr(ErrProcessing, "search", pageLabel(pageNum), err)
			}
			if len(boxes) == 0 {
				continue
			}
			e.log.Debugf("Found %d instances of %q on page %d", len(boxes), entry.From, pageNum+1)

			for _, box := range boxes {
				if err := page.AddRedaction(box, ""); err != nil {
					return 0, kindErr(ErrProcessing, "redact", pageLabel(pageNum), err)
				}
				if err := page.ApplyRedactions(); err != nil {
					return 0, kindErr(ErrProcessing, "redact", pageLabel(pageNum), err)
				}

				// Best-effort: the span inventory is rescanned after the
				// commit, so an earlier redaction on this page may have
				// already removed the span that set the original size.
				fontSize, err := e.lookupFontSize(page, entry.From)
				if err != nil {
					return 0, kindErr(ErrProcessing, "spans", pageLabel(pageNum), err)
				}

				if err := page.InsertText(box.BottomLeft(), entry.To, fontSize, pdfcap.Black); err != nil {
					return 0, kindErr(ErrProcessing, "insert", pageLabel(pageNum), err)
				}
				count++
			}
		}
	}
	return count, nil
}

// lookupFontSize returns the size of the first span still containing the
// searched text, or the default size when none does
func (e *Engine) lookupFontSize(page pdfcap.Page, from string) (float64, error) {
	spans, err := page.TextSpans()
	if err != nil {
		return 0, err
	}
	for _, span := range spans {
		if strings.Contains(span.Text, from) {
			return span.Size, nil
		}
	}
	return defaultFontSize, nil
}

func pageLabel(pageNum int) string {
	return "page " + strconv.Itoa(pageNum+1)
}

// ensureLogger substitutes a silent logger when none is supplied
func ensureLogger(log *logrus.Logger) *logrus.Logger {
	if log != nil {
		return log
	}
	silent := logrus.New()
	silent.SetOutput(io.Discard)
	return silent
}
