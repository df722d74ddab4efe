package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotPDF is returned when a file has no PDF header
var ErrNotPDF = errors.New("missing %PDF- header")

// headerWindow is how far into the file the header may start. Some
// producers write junk before it and viewers accept that.
const headerWindow = 1024

var pdfMagic = []byte("%PDF-")

// Sniff reports ErrNotPDF unless the %PDF- marker appears within the first
// headerWindow bytes of r
func Sniff(r io.ReaderAt) error {
	buf := make([]byte, headerWindow)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read header: %w", err)
	}
	if !bytes.Contains(buf[:n], pdfMagic) {
		return ErrNotPDF
	}
	return nil
}

// SniffFile runs Sniff over the named file
func SniffFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return Sniff(f)
}
