package export

import (
	"bytes"
	"fmt"

	"github.com/SscSPs/invoice_generator_app/internal/core/services"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

const defaultWatermarkStyle = "font:Helvetica, points:48, rot:45, opacity:0.2, fillcolor:#808080, scale:0.6"

// PdfcpuWatermarker stamps a diagonal text watermark on every page.
type PdfcpuWatermarker struct {
	style string
	conf  *model.Configuration
}

// NewPdfcpuWatermarker returns a watermarker with the default style.
func NewPdfcpuWatermarker() *PdfcpuWatermarker {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PdfcpuWatermarker{style: defaultWatermarkStyle, conf: conf}
}

var _ services.Watermarker = (*PdfcpuWatermarker)(nil)

func (w *PdfcpuWatermarker) Watermark(pdf []byte, text string) ([]byte, error) {
	if text == "" {
		return pdf, nil
	}
	wm, err := api.TextWatermark(text, w.style, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("invalid watermark: %w", err)
	}
	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(pdf), &out, nil, wm, w.conf); err != nil {
		return nil, fmt.Errorf("failed to add watermark: %w", err)
	}
	return out.Bytes(), nil
}
