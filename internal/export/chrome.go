package export

import (
	"context"
	"fmt"
	"os"

	"github.com/SscSPs/invoice_generator_app/internal/core/services"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 in inches.
const (
	a4Width  = 8.27
	a4Height = 11.7
)

// ChromePDFRenderer prints HTML pages with headless Chrome.
type ChromePDFRenderer struct {
	execPath string
}

// NewChromePDFRenderer returns a renderer using the Chrome binary at execPath,
// or the one found on PATH when execPath is empty.
func NewChromePDFRenderer(execPath string) *ChromePDFRenderer {
	return &ChromePDFRenderer{execPath: execPath}
}

var _ services.PDFRenderer = (*ChromePDFRenderer)(nil)

func (r *ChromePDFRenderer) allocator(ctx context.Context) (context.Context, context.CancelFunc) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}
	return chromedp.NewExecAllocator(ctx, opts...)
}

// RenderPDF loads html from a temp file and prints it on A4 paper.
func (r *ChromePDFRenderer) RenderPDF(ctx context.Context, html []byte) ([]byte, error) {
	tmp, err := os.CreateTemp("", "document_*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp html: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(html); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write temp html: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp html: %w", err)
	}

	allocCtx, cancelAlloc := r.allocator(ctx)
	defer cancelAlloc()
	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome print failed: %w", err)
	}
	return pdf, nil
}
