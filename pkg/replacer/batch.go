package replacer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Qcasares/pdf-text-replacer/pkg/mapping"
)

const bannerRule = "============================================================"

// Summary aggregates a batch run
type Summary struct {
	Total        int
	Succeeded    int
	Replacements int
}

// Runner sequences single-file and multi-file runs over one loaded mapping.
// Files are processed strictly in the order supplied; a single file's
// failure never aborts the batch.
type Runner struct {
	// Out receives the user-facing progress banners and summary block
	Out io.Writer

	mapping *mapping.Mapping
	engine  *Engine
	log     *logrus.Logger
	logPath string

	succeeded    int
	replacements int
}

// NewRunner creates a batch runner. logPath, when non-empty, is mentioned
// in the final summary block.
func NewRunner(m *mapping.Mapping, engine *Engine, log *logrus.Logger, logPath string) *Runner {
	return &Runner{
		Out:     os.Stdout,
		mapping: m,
		engine:  engine,
		log:     ensureLogger(log),
		logPath: logPath,
	}
}

// DeriveOutputPath returns the default output path for an input:
// <stem>_replaced<ext> next to the input
func DeriveOutputPath(input string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)
	return filepath.Join(filepath.Dir(input), stem+"_replaced"+ext)
}

// DeriveOutputIn returns the default output path inside an output
// directory: <stem>_replaced.pdf, whatever the input extension's casing
func DeriveOutputIn(dir, input string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)
	return filepath.Join(dir, stem+"_replaced.pdf")
}

// RunSingle processes one file. When explicitOutput is empty the output
// path is derived next to the input. Returns whether processing succeeded.
func (r *Runner) RunSingle(inputPath, explicitOutput string) bool {
	outputPath := explicitOutput
	if outputPath == "" {
		outputPath = DeriveOutputPath(inputPath)
	}

	fmt.Fprintf(r.Out, "\n%s\n", bannerRule)
	fmt.Fprintf(r.Out, "Processing: %s\n", inputPath)
	fmt.Fprintf(r.Out, "Output: %s\n", outputPath)
	fmt.Fprintf(r.Out, "%s\n", bannerRule)

	count, err := r.engine.ReplaceFile(inputPath, outputPath, r.mapping)
	if err != nil {
		r.log.Errorf("Error processing PDF: %v", err)
		r.log.Debugf("Failure detail for %s: %#v", inputPath, err)
		fmt.Fprintln(r.Out, "✗ Failed to process file")
		return false
	}

	r.succeeded++
	r.replacements += count
	fmt.Fprintf(r.Out, "✓ Success! Made %d replacements\n", count)
	return true
}

// RunMany processes files in the order supplied. When outputDir is
// non-empty it is created if absent and every output lands inside it;
// otherwise each output is derived next to its input. An explicit output
// path makes no sense for more than one file, so it is ignored with a
// warning and per-file default naming is used instead.
func (r *Runner) RunMany(inputs []string, outputDir, explicitOutput string) Summary {
	if explicitOutput != "" && len(inputs) > 1 {
		fmt.Fprintln(r.Out, "Warning: -o/--output is ignored when processing multiple files")
		r.log.Warn("-o/--output is ignored when processing multiple files")
	}

	fmt.Fprintf(r.Out, "\nProcessing %d PDF files...\n", len(inputs))

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			r.log.Errorf("Failed to create output directory %s: %v", outputDir, err)
		}
	}

	for idx, input := range inputs {
		fmt.Fprintf(r.Out, "\nFile %d/%d\n", idx+1, len(inputs))

		output := ""
		if outputDir != "" {
			output = DeriveOutputIn(outputDir, input)
		}
		r.RunSingle(input, output)
	}

	summary := Summary{
		Total:        len(inputs),
		Succeeded:    r.succeeded,
		Replacements: r.replacements,
	}

	fmt.Fprintf(r.Out, "\n%s\n", bannerRule)
	fmt.Fprintln(r.Out, "SUMMARY")
	fmt.Fprintf(r.Out, "%s\n", bannerRule)
	fmt.Fprintf(r.Out, "Files processed successfully: %d/%d\n", summary.Succeeded, summary.Total)
	fmt.Fprintf(r.Out, "Total replacements made: %d\n", summary.Replacements)
	if r.logPath != "" {
		fmt.Fprintf(r.Out, "Check log file for details: %s\n", r.logPath)
	} else {
		fmt.Fprintln(r.Out, "Check log file for details")
	}

	return summary
}
