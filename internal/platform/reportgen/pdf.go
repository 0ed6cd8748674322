package reportgen

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NewHTTPConverter returns a PDFConverter that posts the report HTML to a
// conversion service (Gotenberg-style endpoint) and returns the PDF bytes.
func NewHTTPConverter(serviceURL string) PDFConverter {
	client := &http.Client{Timeout: 30 * time.Second}
	return func(ctx context.Context, html string) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, serviceURL, bytes.NewBufferString(html))
		if err != nil {
			return nil, fmt.Errorf("build pdf request: %w", err)
		}
		req.Header.Set("Content-Type", "text/html; charset=utf-8")
		req.Header.Set("Accept", "application/pdf")

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("pdf service: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("pdf service returned %d: %s", resp.StatusCode, string(body))
		}
		return io.ReadAll(resp.Body)
	}
}
