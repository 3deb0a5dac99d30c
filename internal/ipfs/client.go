// Package ipfs uploads artifacts to an IPFS pinning service (Pinata) and
// returns their content identifiers. The pipeline treats this as an opaque
// distribution collaborator.
package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultAPIBaseURL is the Pinata pinning API endpoint.
const DefaultAPIBaseURL = "https://api.pinata.cloud"

// Client pins files and JSON documents through the Pinata HTTP API.
type Client struct {
	// BaseURL can be overridden for testing against a local server.
	BaseURL string

	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

// NewClient creates a pinning client with the given Pinata credentials.
func NewClient(apiKey, apiSecret string) *Client {
	return &Client{
		BaseURL:    DefaultAPIBaseURL,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

type pinResponse struct {
	IpfsHash string `json:"IpfsHash"`
}

// PinFile uploads a local file and returns its content identifier.
func (c *Client) PinFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("ipfs.PinFile: open %q: %w", path, err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("ipfs.PinFile: create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("ipfs.PinFile: copy file into form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("ipfs.PinFile: finalize form: %w", err)
	}

	cid, err := c.post(ctx, "/pinning/pinFileToIPFS", mw.FormDataContentType(), &body)
	if err != nil {
		return "", fmt.Errorf("ipfs.PinFile: %w", err)
	}
	return cid, nil
}

// PinJSON uploads a JSON-serializable value and returns its content
// identifier.
func (c *Client) PinJSON(ctx context.Context, v any) (string, error) {
	payload, err := json.Marshal(map[string]any{"pinataContent": v})
	if err != nil {
		return "", fmt.Errorf("ipfs.PinJSON: marshal content: %w", err)
	}

	cid, err := c.post(ctx, "/pinning/pinJSONToIPFS", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("ipfs.PinJSON: %w", err)
	}
	return cid, nil
}

func (c *Client) post(ctx context.Context, endpoint, contentType string, body io.Reader) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+endpoint, body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("pinata_api_key", c.apiKey)
	req.Header.Set("pinata_secret_api_key", c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("POST %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("POST %s: status %d: %s", endpoint, resp.StatusCode, msg)
	}

	var parsed pinResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("POST %s: decode response: %w", endpoint, err)
	}
	if parsed.IpfsHash == "" {
		return "", fmt.Errorf("POST %s: response carried no IpfsHash", endpoint)
	}
	return parsed.IpfsHash, nil
}
