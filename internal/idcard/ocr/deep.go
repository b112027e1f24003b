package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

// DeepReader calls the deep-learning OCR sidecar over HTTP. The sidecar
// hosts the detector/recognizer model; this process stays free of the
// model runtime.
type DeepReader struct {
	baseURL    string
	httpClient *http.Client
}

// NewDeepReader creates a deep OCR client for the given sidecar base URL.
func NewDeepReader(baseURL string, timeout time.Duration) *DeepReader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &DeepReader{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type deepReadResponse struct {
	Lines []string `json:"lines"`
}

// ReadLines sends the region image and threshold parameters to the
// sidecar and returns the recognized line fragments in reading order.
func (d *DeepReader) ReadLines(ctx context.Context, region Region, t Thresholds) ([]string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "region.bin")
	if err != nil {
		return nil, fmt.Errorf("deepocr: create form file: %w", err)
	}
	if _, err := part.Write(region.Image); err != nil {
		return nil, fmt.Errorf("deepocr: write image data: %w", err)
	}
	fields := map[string]float64{
		"text_threshold": t.Text,
		"width_ths":      t.Width,
		"low_text":       t.LowText,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, strconv.FormatFloat(value, 'f', -1, 64)); err != nil {
			return nil, fmt.Errorf("deepocr: write field %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("deepocr: close multipart writer: %w", err)
	}

	url := d.baseURL + "/api/v1/read"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("deepocr: create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deepocr: sidecar request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("deepocr: read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deepocr: sidecar returned %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed deepReadResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("deepocr: parse response: %w", err)
	}
	return parsed.Lines, nil
}
