// Package pdf renders an assembled HTML document to a paginated PDF file.
package pdf

import (
	"fmt"
	"os"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/unmaskedindia/press/internal/logger"
	"github.com/unmaskedindia/press/internal/metrics"
)

type Renderer struct {
	stylesheetPath string
}

func NewRenderer(stylesheetPath string) *Renderer {
	return &Renderer{stylesheetPath: stylesheetPath}
}

// Render applies the stylesheet to the document and writes the PDF to
// outputPath, overwriting any existing file.
func (r *Renderer) Render(html, outputPath string) error {
	// wkhtmltopdf treats a missing --user-style-sheet as a warning and
	// still exits 0, which would silently produce an unstyled PDF.
	if _, err := os.Stat(r.stylesheetPath); err != nil {
		return fmt.Errorf("stylesheet %s not readable: %w", r.stylesheetPath, err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return fmt.Errorf("failed to init PDF generator: %w", err)
	}
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.UserStyleSheet.Set(r.stylesheetPath)
	page.EnableLocalFileAccess.Set(true)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	if err := pdfg.WriteFile(outputPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	metrics.Global.IncrementPDFsWritten()
	logger.Info("wrote PDF", "path", outputPath, "bytes", len(pdfg.Bytes()))
	return nil
}
