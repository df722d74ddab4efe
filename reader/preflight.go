package reader

import (
	"fmt"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	preflightOnce sync.Once
	preflightConf *pdfmodel.Configuration
)

// preflightConfig returns a relaxed pdfcpu configuration that does not
// touch the user's config directory
func preflightConfig() *pdfmodel.Configuration {
	preflightOnce.Do(func() {
		pdfmodel.ConfigPath = "disable"
		preflightConf = pdfmodel.NewDefaultConfiguration()
		preflightConf.ValidationMode = pdfmodel.ValidationRelaxed
	})
	return preflightConf
}

// Preflight validates the file structure with pdfcpu and returns the page
// count. Encrypted, corrupt and non-PDF files return an error wrapping
// ErrUnreadable.
func Preflight(filename string) (pages int, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	defer func() {
		if rec := recover(); rec != nil {
			pages, err = 0, fmt.Errorf("%w: panic during preflight: %v", ErrUnreadable, rec)
		}
	}()

	pages, err = api.PageCount(f, preflightConfig())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if pages == 0 {
		return 0, ErrNoPages
	}
	return pages, nil
}
