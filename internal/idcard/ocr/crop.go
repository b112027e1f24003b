package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// CropClient asks the preprocessing sidecar for the card sub-regions:
// background removal, edge detection and bounding-box cropping run
// there, and the text block and identifier strip come back as separate
// images. The identifier strip is returned with the sidecar's sharper
// binarization applied.
type CropClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCropClient creates a region provider backed by the crop sidecar.
func NewCropClient(baseURL string, timeout time.Duration) *CropClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CropClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type cropResponse struct {
	TextRegion []byte `json:"text_region"`
	IDRegion   []byte `json:"id_region"`
}

// Regions sends the full capture and returns the cropped sub-regions.
func (c *CropClient) Regions(ctx context.Context, image []byte) (CardRegions, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "card.bin")
	if err != nil {
		return CardRegions{}, fmt.Errorf("crop: create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return CardRegions{}, fmt.Errorf("crop: write image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return CardRegions{}, fmt.Errorf("crop: close multipart writer: %w", err)
	}

	url := c.baseURL + "/api/v1/regions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return CardRegions{}, fmt.Errorf("crop: create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CardRegions{}, fmt.Errorf("crop: sidecar request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return CardRegions{}, fmt.Errorf("crop: read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return CardRegions{}, fmt.Errorf("crop: sidecar returned %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed cropResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return CardRegions{}, fmt.Errorf("crop: parse response: %w", err)
	}
	return CardRegions{
		Text: Region{Label: "text", Image: parsed.TextRegion},
		ID:   Region{Label: "id", Image: parsed.IDRegion},
	}, nil
}
