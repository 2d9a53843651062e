package pdfcap

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrHelperUnavailable indicates the Python/PyMuPDF helper could not be
// started. Install PyMuPDF (pip install pymupdf) or point
// PDF_REPLACER_PYTHON at a suitable interpreter.
var ErrHelperUnavailable = errors.New("pymupdf helper unavailable")

// pythonBinary returns the interpreter used for the helper process
func pythonBinary() string {
	if p := os.Getenv("PDF_REPLACER_PYTHON"); p != "" {
		return p
	}
	return "python3"
}

// PyMuPDFAvailable reports whether the helper interpreter and the PyMuPDF
// module are present
func PyMuPDFAvailable() bool {
	cmd := exec.Command(pythonBinary(), "-c", "import pymupdf")
	if cmd.Run() == nil {
		return true
	}
	cmd = exec.Command(pythonBinary(), "-c", "import fitz")
	return cmd.Run() == nil
}

// PyMuPDFDocument implements the Document interface by driving a PyMuPDF
// helper subprocess over a JSON-lines protocol, one request per primitive
type PyMuPDFDocument struct {
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stdout     *bufio.Reader
	scriptPath string
	pages      int
	closed     bool
}

type helperRequest struct {
	Op    string    `json:"op"`
	Path  string    `json:"path,omitempty"`
	Page  int       `json:"page"`
	Text  string    `json:"text,omitempty"`
	Box   []float64 `json:"box,omitempty"`
	Fill  *string   `json:"fill,omitempty"`
	At    []float64 `json:"at,omitempty"`
	Size  float64   `json:"size,omitempty"`
	Color []float64 `json:"color,omitempty"`
}

type helperSpan struct {
	Text string  `json:"text"`
	Size float64 `json:"size"`
}

type helperResponse struct {
	OK    bool         `json:"ok"`
	Error string       `json:"error"`
	Pages int          `json:"pages"`
	Boxes [][]float64  `json:"boxes"`
	Spans []helperSpan `json:"spans"`
}

// OpenPyMuPDF opens a PDF for editing through the PyMuPDF helper
func OpenPyMuPDF(path string) (*PyMuPDFDocument, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	script, err := os.CreateTemp("", "pdf_replacer_helper_*.py")
	if err != nil {
		return nil, fmt.Errorf("failed to write helper script: %w", err)
	}
	if _, err := script.WriteString(pymupdfHelperScript); err != nil {
		script.Close()
		os.Remove(script.Name())
		return nil, fmt.Errorf("failed to write helper script: %w", err)
	}
	script.Close()

	cmd := exec.Command(pythonBinary(), script.Name())
	stdin, err := cmd.StdinPipe()
	if err != nil {
		os.Remove(script.Name())
		return nil, fmt.Errorf("%w: %v", ErrHelperUnavailable, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		os.Remove(script.Name())
		return nil, fmt.Errorf("%w: %v", ErrHelperUnavailable, err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		os.Remove(script.Name())
		return nil, fmt.Errorf("%w: %v", ErrHelperUnavailable, err)
	}

	doc := &PyMuPDFDocument{
		cmd:        cmd,
		stdin:      stdin,
		stdout:     bufio.NewReader(stdout),
		scriptPath: script.Name(),
	}

	resp, err := doc.call(helperRequest{Op: "open", Path: abs})
	if err != nil {
		doc.shutdown()
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	doc.pages = resp.Pages
	return doc, nil
}

// call sends one request to the helper and reads its response
func (d *PyMuPDFDocument) call(req helperRequest) (*helperResponse, error) {
	if d.closed {
		return nil, fmt.Errorf("document is closed")
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	if _, err := d.stdin.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("helper write failed: %w", err)
	}
	line, err := d.stdout.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("helper read failed: %w", err)
	}
	var resp helperResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("helper returned malformed response: %w", err)
	}
	if !resp.OK {
		return nil, errors.New(resp.Error)
	}
	return &resp, nil
}

// shutdown tears the helper process down without the close handshake
func (d *PyMuPDFDocument) shutdown() {
	d.closed = true
	d.stdin.Close()
	d.cmd.Process.Kill()
	d.cmd.Wait()
	os.Remove(d.scriptPath)
}

// PageCount returns the total number of pages
func (d *PyMuPDFDocument) PageCount() int {
	return d.pages
}

// Page returns a specific page by index (0-based)
func (d *PyMuPDFDocument) Page(index int) (Page, error) {
	if index < 0 || index >= d.pages {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, d.pages)
	}
	return &pymupdfPage{doc: d, index: index}, nil
}

// Save writes the document, including applied redactions and insertions
func (d *PyMuPDFDocument) Save(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := d.call(helperRequest{Op: "save", Path: abs}); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Close shuts the helper process down
func (d *PyMuPDFDocument) Close() error {
	if d.closed {
		return nil
	}
	_, callErr := d.call(helperRequest{Op: "close"})
	d.closed = true
	d.stdin.Close()
	waitErr := d.cmd.Wait()
	os.Remove(d.scriptPath)
	if callErr != nil {
		return callErr
	}
	return waitErr
}

type pymupdfPage struct {
	doc   *PyMuPDFDocument
	index int
}

func (p *pymupdfPage) Search(literal string) ([]BoundingBox, error) {
	resp, err := p.doc.call(helperRequest{Op: "search", Page: p.index, Text: literal})
	if err != nil {
		return nil, err
	}
	boxes := make([]BoundingBox, 0, len(resp.Boxes))
	for _, b := range resp.Boxes {
		if len(b) != 4 {
			return nil, fmt.Errorf("helper returned malformed box: %v", b)
		}
		boxes = append(boxes, BoundingBox{X0: b[0], Y0: b[1], X1: b[2], Y1: b[3]})
	}
	return boxes, nil
}

func (p *pymupdfPage) AddRedaction(box BoundingBox, fill string) error {
	_, err := p.doc.call(helperRequest{
		Op:   "redact",
		Page: p.index,
		Box:  []float64{box.X0, box.Y0, box.X1, box.Y1},
		Fill: &fill,
	})
	return err
}

func (p *pymupdfPage) ApplyRedactions() error {
	_, err := p.doc.call(helperRequest{Op: "apply", Page: p.index})
	return err
}

func (p *pymupdfPage) TextSpans() ([]Span, error) {
	resp, err := p.doc.call(helperRequest{Op: "spans", Page: p.index})
	if err != nil {
		return nil, err
	}
	spans := make([]Span, 0, len(resp.Spans))
	for _, s := range resp.Spans {
		spans = append(spans, Span{Text: s.Text, Size: s.Size})
	}
	return spans, nil
}

func (p *pymupdfPage) InsertText(at Point, text string, fontSize float64, color Color) error {
	_, err := p.doc.call(helperRequest{
		Op:    "insert",
		Page:  p.index,
		Text:  text,
		At:    []float64{at.X, at.Y},
		Size:  fontSize,
		Color: []float64{color.R, color.G, color.B},
	})
	return err
}
