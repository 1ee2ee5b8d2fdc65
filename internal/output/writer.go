// ABOUTME: Writes TCX documents into the date-partitioned output tree.
// ABOUTME: Creates year/month directories on demand under the run's root.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rsharman/hk2tcx/internal/tcx"
)

// Writer places documents under a single output root.
type Writer struct {
	Root string
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{Root: dir}
}

// Write classifies the document, creates its partition directory, and writes
// the TCX file. Returns the path of the written file.
func (w *Writer) Write(doc *tcx.Document) (string, error) {
	cls := Classify(doc)

	dir := filepath.Join(w.Root, cls.RelativeDir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, cls.FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if err := doc.TCX.Encode(f); err != nil {
		return "", fmt.Errorf("write %s: %w", cls.FileName, err)
	}
	return path, nil
}
