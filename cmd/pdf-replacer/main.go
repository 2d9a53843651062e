// Command pdf-replacer performs literal text find-and-replace across PDF
// files, driven by a CSV mapping table with "from" and "to" columns.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Qcasares/pdf-text-replacer/pkg/logging"
	"github.com/Qcasares/pdf-text-replacer/pkg/mapping"
	"github.com/Qcasares/pdf-text-replacer/pkg/replacer"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		output    string
		outputDir string
		logLevel  string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "pdf-replacer <csv_file> <pdf_file>...",
		Short: "Replace text in PDF files based on CSV mappings",
		Long: `Replace text in PDF files based on CSV mappings.

The CSV file must have two columns named 'from' and 'to':
  from,to
  old text,new text
  Company A,Company B`,
		Example: `  pdf-replacer replacements.csv input.pdf
  pdf-replacer replacements.csv input.pdf -o output.pdf
  pdf-replacer replacements.csv *.pdf -d output_folder
  pdf-replacer replacements.csv file1.pdf file2.pdf file3.pdf`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1:], output, outputDir, logLevel, dryRun)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (for single file)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "d", "", "output directory (for multiple files)")
	cmd.Flags().StringVarP(&logLevel, "log-level", "l", "INFO", "logging level (DEBUG, INFO, WARNING, ERROR)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "count matches without modifying any file")

	return cmd
}

func run(csvFile string, pdfFiles []string, output, outputDir, logLevel string, dryRun bool) error {
	log, logPath, err := logging.New(logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}

	fmt.Printf("Loading replacements from: %s\n", csvFile)
	m, err := mapping.Load(csvFile, log)
	if err != nil {
		log.Errorf("Error loading CSV file: %v", err)
		fmt.Println("Failed to load CSV mappings. Exiting.")
		return err
	}

	fmt.Printf("\nLoaded %d replacement mappings:\n", m.Len())
	for _, entry := range m.Preview(5) {
		fmt.Printf("  '%s' → '%s'\n", entry.From, entry.To)
	}
	if m.Len() > 5 {
		fmt.Printf("  ... and %d more\n", m.Len()-5)
	}

	if dryRun {
		scanAll(pdfFiles, m, log)
		return nil
	}

	engine := replacer.NewEngine(log)
	runner := replacer.NewRunner(m, engine, log, logPath)

	if len(pdfFiles) == 1 && outputDir == "" {
		runner.RunSingle(pdfFiles[0], output)
		return nil
	}

	runner.RunMany(pdfFiles, outputDir, output)
	return nil
}

// scanAll runs the read-only scanner over every input and prints a match
// report. Per-file scan failures are reported and do not stop the run.
func scanAll(pdfFiles []string, m *mapping.Mapping, log *logrus.Logger) {
	fmt.Printf("\nDry run: scanning %d PDF file(s)...\n", len(pdfFiles))

	total := 0
	for _, pdfFile := range pdfFiles {
		result, err := replacer.Scan(pdfFile, m, log)
		if err != nil {
			log.Errorf("Error scanning PDF: %v", err)
			fmt.Printf("\n%s: scan failed\n", pdfFile)
			continue
		}

		fmt.Printf("\n%s: %d match(es) across %d page(s)\n", pdfFile, result.Total, result.Pages)
		for _, entry := range m.Entries() {
			if n := result.Hits[entry.From]; n > 0 {
				fmt.Printf("  %q: %d\n", entry.From, n)
			}
		}
		total += result.Total
	}

	fmt.Printf("\nTotal matches: %d\n", total)
}
