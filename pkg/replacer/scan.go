package replacer

import (
	"fmt"
	"os"
	"strings"

	dpdf "github.com/dslipak/pdf"
	lpdf "github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"

	"github.com/Qcasares/pdf-text-replacer/pkg/mapping"
)

// ScanResult reports mapping hits found in one file without modifying it
type ScanResult struct {
	Path  string
	Pages int
	Hits  map[string]int
	Total int
}

// Scan counts occurrences of every "from" value in the file's text layer.
// It reads through ledongthuc/pdf first and falls back to dslipak/pdf, the
// same chain the extraction backends use. Nothing is written.
func Scan(path string, m *mapping.Mapping, log *logrus.Logger) (*ScanResult, error) {
	log = ensureLogger(log)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, kindErr(ErrNotFound, "scan", path, err)
		}
		return nil, kindErr(ErrIO, "scan", path, err)
	}

	texts, err := pageTextsLedongthuc(path)
	if err != nil {
		log.Debugf("ledongthuc text scan failed for %s: %v; trying dslipak", path, err)
		texts, err = pageTextsDslipak(path)
	}
	if err != nil {
		return nil, kindErr(ErrIO, "scan", path, err)
	}

	result := countHits(path, texts, m)

	log.Infof("Scanned %s: %d pages, %d matches", path, result.Pages, result.Total)
	return result, nil
}

// countHits tallies occurrences of every "from" value across the given
// page texts
func countHits(path string, texts []string, m *mapping.Mapping) *ScanResult {
	result := &ScanResult{Path: path, Pages: len(texts), Hits: make(map[string]int)}
	for _, text := range texts {
		for _, entry := range m.Entries() {
			n := strings.Count(text, entry.From)
			if n == 0 {
				continue
			}
			result.Hits[entry.From] += n
			result.Total += n
		}
	}
	return result
}

// pageTextsLedongthuc returns the plain text of every page via
// ledongthuc/pdf
func pageTextsLedongthuc(path string) ([]string, error) {
	f, r, err := lpdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with ledongthuc: %w", err)
	}
	defer f.Close()

	fonts := make(map[string]*lpdf.Font)
	var texts []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", i, err)
		}
		texts = append(texts, text)
	}
	return texts, nil
}

// pageTextsDslipak returns the plain text of every page via dslipak/pdf
func pageTextsDslipak(path string) ([]string, error) {
	r, err := dpdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}

	var texts []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", i, err)
		}
		texts = append(texts, text)
	}
	return texts, nil
}
