// Package mapping loads the CSV table that drives text replacement: two
// named columns, "from" and "to", one substitution per row.
package mapping

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNotFound indicates the CSV file does not exist
	ErrNotFound = errors.New("mapping file not found")
	// ErrSchema indicates a required column is missing from the header
	ErrSchema = errors.New("mapping file must have 'from' and 'to' columns")
	// ErrEmpty indicates the table contained no usable rows
	ErrEmpty = errors.New("no valid replacements found")
)

// Entry is one from/to substitution
type Entry struct {
	From string
	To   string
}

// Mapping is an ordered, deduplicated collection of substitutions. It is
// built once per run and immutable afterwards.
type Mapping struct {
	entries []Entry
	index   map[string]int
}

// New builds a mapping from the given entries, applying the same
// deduplication as Load: later duplicates overwrite the "to" value while
// keeping the entry's original position. Entries with an empty "from" are
// dropped.
func New(entries ...Entry) *Mapping {
	m := &Mapping{index: make(map[string]int)}
	for _, e := range entries {
		if e.From == "" {
			continue
		}
		if pos, ok := m.index[e.From]; ok {
			m.entries[pos].To = e.To
			continue
		}
		m.index[e.From] = len(m.entries)
		m.entries = append(m.entries, e)
	}
	return m
}

// Load reads the mapping table at path. Both values are whitespace-trimmed;
// rows with an empty "from" are skipped with a warning (row numbering
// starts at 2, row 1 being the header); on duplicate "from" values the
// later row's "to" wins while the entry keeps its original position.
func Load(path string, log *logrus.Logger) (*Mapping, error) {
	log = ensureLogger(log)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	m, err := parse(f, log)
	if err != nil {
		return nil, err
	}

	log.Infof("Loaded %d replacement mappings", m.Len())
	return m, nil
}

// parse reads the header and rows from r
func parse(r io.Reader, log *logrus.Logger) (*Mapping, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrSchema
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	fromCol, toCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "from":
			if fromCol < 0 {
				fromCol = i
			}
		case "to":
			if toCol < 0 {
				toCol = i
			}
		}
	}
	if fromCol < 0 || toCol < 0 {
		return nil, ErrSchema
	}

	m := &Mapping{index: make(map[string]int)}
	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", rowNum, err)
		}

		from := strings.TrimSpace(field(record, fromCol))
		to := strings.TrimSpace(field(record, toCol))

		if from == "" {
			log.Warnf("Empty 'from' value in row %d, skipping", rowNum)
			continue
		}

		if pos, ok := m.index[from]; ok {
			log.Warnf("Duplicate 'from' value %q in row %d", from, rowNum)
			m.entries[pos].To = to
			continue
		}

		m.index[from] = len(m.entries)
		m.entries = append(m.entries, Entry{From: from, To: to})
	}

	if len(m.entries) == 0 {
		return nil, ErrEmpty
	}
	return m, nil
}

// field returns record[i], or "" when the row is too short
func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return record[i]
}

// Len returns the number of entries
func (m *Mapping) Len() int {
	return len(m.entries)
}

// Entries returns the substitutions in insertion order
func (m *Mapping) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Preview returns up to n entries in insertion order, for display
func (m *Mapping) Preview(n int) []Entry {
	if n > len(m.entries) {
		n = len(m.entries)
	}
	out := make([]Entry, n)
	copy(out, m.entries[:n])
	return out
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
