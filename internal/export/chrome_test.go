package export

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenderPDF_MissingBrowser(t *testing.T) {
	r := NewChromePDFRenderer("/nonexistent/chrome-binary")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pdf, err := r.RenderPDF(ctx, []byte("<html><body>x</body></html>"))
	assert.Error(t, err)
	assert.Nil(t, pdf)
}
