package replacer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Qcasares/pdf-text-replacer/pkg/mapping"
)

func TestCountHits_MultipleOccurrencesOnOnePage(t *testing.T) {
	m := mapping.New(
		mapping.Entry{From: "Acme Corp", To: "Globex Inc"},
		mapping.Entry{From: "widget", To: "gadget"},
	)
	texts := []string{"Acme Corp sells a widget. Acme Corp ships the widget fast."}

	result := countHits("catalog.pdf", texts, m)

	assert.Equal(t, 1, result.Pages)
	assert.Equal(t, 2, result.Hits["Acme Corp"])
	assert.Equal(t, 2, result.Hits["widget"])
	assert.Equal(t, 4, result.Total)
}

func TestCountHits_AccumulatesAcrossPages(t *testing.T) {
	texts := []string{
		"Acme Corp on page one",
		"nothing relevant here",
		"Acme Corp again, closing with Acme Corp",
	}

	result := countHits("report.pdf", texts, acmeMapping())

	assert.Equal(t, 3, result.Pages)
	assert.Equal(t, 3, result.Hits["Acme Corp"])
	assert.Equal(t, 3, result.Total)
}

func TestCountHits_NoMatches(t *testing.T) {
	result := countHits("empty.pdf", []string{"unrelated text", ""}, acmeMapping())

	assert.Equal(t, 2, result.Pages)
	assert.Empty(t, result.Hits)
	assert.Equal(t, 0, result.Total)
}

func TestScan_MissingFile(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope.pdf"), acmeMapping(), nil)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestScan_UnreadableFile(t *testing.T) {
	// Not a PDF at all; both text backends must reject it
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0644))

	_, err := Scan(path, acmeMapping(), nil)
	assert.True(t, errors.Is(err, ErrIO))
}
