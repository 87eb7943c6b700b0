package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPRecognizer calls a remote OCR service over REST.
type HTTPRecognizer struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPRecognizer creates a Recognizer backed by the OCR service at baseURL.
func NewHTTPRecognizer(baseURL string) *HTTPRecognizer {
	return &HTTPRecognizer{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// Recognize sends the image to POST /v1/recognize and returns the text.
func (r *HTTPRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	url := fmt.Sprintf("%s/v1/recognize", r.baseURL)

	body, err := json.Marshal(map[string]string{
		"image": base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal recognize request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to build recognize request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call OCR API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OCR API error %d: %s", resp.StatusCode, string(raw))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode OCR response: %w", err)
	}
	return result.Text, nil
}
