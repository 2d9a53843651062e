package replacer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Qcasares/pdf-text-replacer/pkg/pdfcap"
)

func TestDeriveOutputPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"report.pdf", "report_replaced.pdf"},
		{filepath.Join("docs", "report.pdf"), filepath.Join("docs", "report_replaced.pdf")},
		{"archive.PDF", "archive_replaced.PDF"},
		{"noext", "noext_replaced"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveOutputPath(tt.input), "input %q", tt.input)
	}
}

func TestDeriveOutputIn(t *testing.T) {
	// Original extension casing is ignored; outputs are always .pdf
	assert.Equal(t, filepath.Join("out", "report_replaced.pdf"), DeriveOutputIn("out", "report.PDF"))
	assert.Equal(t, filepath.Join("out", "report_replaced.pdf"), DeriveOutputIn("out", filepath.Join("in", "report.pdf")))
}

// memRunner builds a runner whose engine opens a fresh single-match
// document for every input
func memRunner(t *testing.T, logPath string) (*Runner, *bytes.Buffer) {
	t.Helper()
	engine := NewEngineWithOpener(nil, func(string) (pdfcap.Document, error) {
		return pdfcap.NewMemDocument(singleAcmePage()), nil
	})
	runner := NewRunner(acmeMapping(), engine, nil, logPath)
	var out bytes.Buffer
	runner.Out = &out
	return runner, &out
}

func TestRunSingle_DerivedOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(input, []byte("%PDF-1.4"), 0644))

	runner, out := memRunner(t, "")
	assert.True(t, runner.RunSingle(input, ""))

	derived := filepath.Join(dir, "report_replaced.pdf")
	_, err := os.Stat(derived)
	assert.NoError(t, err, "derived output should sit next to the input")
	assert.Contains(t, out.String(), "✓ Success! Made 1 replacements")
}

func TestRunSingle_ExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(input, []byte("%PDF-1.4"), 0644))
	explicit := filepath.Join(dir, "custom.pdf")

	runner, _ := memRunner(t, "")
	assert.True(t, runner.RunSingle(input, explicit))

	_, err := os.Stat(explicit)
	assert.NoError(t, err)
}

func TestRunMany_BatchResilience(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.pdf")
	missing := filepath.Join(dir, "b.pdf")
	third := filepath.Join(dir, "c.pdf")
	require.NoError(t, os.WriteFile(first, []byte("%PDF-1.4"), 0644))
	require.NoError(t, os.WriteFile(third, []byte("%PDF-1.4"), 0644))

	runner, out := memRunner(t, "logs/run.log")
	summary := runner.RunMany([]string{first, missing, third}, "", "")

	want := Summary{Total: 3, Succeeded: 2, Replacements: 2}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	// The failure of the 2nd file did not stop the 3rd
	_, err := os.Stat(filepath.Join(dir, "c_replaced.pdf"))
	assert.NoError(t, err)

	assert.Contains(t, out.String(), "Files processed successfully: 2/3")
	assert.Contains(t, out.String(), "Total replacements made: 2")
	assert.Contains(t, out.String(), "logs/run.log")
}

func TestRunMany_CreatesOutputDir(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "report.pdf")
	require.NoError(t, os.WriteFile(input, []byte("%PDF-1.4"), 0644))
	outDir := filepath.Join(dir, "converted")

	runner, _ := memRunner(t, "")
	summary := runner.RunMany([]string{input}, outDir, "")

	assert.Equal(t, 1, summary.Succeeded)
	_, err := os.Stat(filepath.Join(outDir, "report_replaced.pdf"))
	assert.NoError(t, err)

	// Create-if-absent is idempotent
	runner2, _ := memRunner(t, "")
	runner2.RunMany([]string{input}, outDir, "")
}

func TestRunMany_ExplicitOutputIgnoredWithWarning(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.pdf")
	second := filepath.Join(dir, "b.pdf")
	require.NoError(t, os.WriteFile(first, []byte("%PDF-1.4"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("%PDF-1.4"), 0644))
	explicit := filepath.Join(dir, "custom.pdf")

	runner, out := memRunner(t, "")
	summary := runner.RunMany([]string{first, second}, "", explicit)

	assert.Equal(t, 2, summary.Succeeded)
	assert.Contains(t, out.String(), "Warning: -o/--output is ignored when processing multiple files")

	// Derived per-file names are used; the explicit path is never written
	_, err := os.Stat(filepath.Join(dir, "a_replaced.pdf"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "b_replaced.pdf"))
	assert.NoError(t, err)
	_, err = os.Stat(explicit)
	assert.True(t, os.IsNotExist(err))
}

func TestRunMany_SingleFileNoWarning(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "a.pdf")
	require.NoError(t, os.WriteFile(input, []byte("%PDF-1.4"), 0644))

	runner, out := memRunner(t, "")
	runner.RunMany([]string{input}, "", filepath.Join(dir, "custom.pdf"))

	assert.NotContains(t, out.String(), "Warning: -o/--output is ignored")
}
