package pdfcap

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PreflightInfo describes an input PDF checked before processing
type PreflightInfo struct {
	Path      string
	PageCount int
}

// Preflight validates that path is a readable, structurally sound PDF and
// returns its page count. The engine runs it before handing a file to the
// editing backend so malformed inputs fail early with a clear cause.
func Preflight(path string) (*PreflightInfo, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	return &PreflightInfo{Path: path, PageCount: ctx.PageCount}, nil
}
