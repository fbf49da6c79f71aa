package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const figmaAPIBase = "https://api.figma.com/v1"

// Client represents a Figma API client with configured HTTP settings.
// Every request is attempted exactly once; callers decide how a failed fetch
// maps onto their own error surface.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
}

// NewClient creates a new Figma API client with the provided personal access token.
// The client is configured with connection pooling and disabled HTTP/2
// (stream errors show up with large node trees over HTTP/2).
func NewClient(accessToken string) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		ForceAttemptHTTP2:   false,
	}

	return &Client{
		accessToken: accessToken,
		baseURL:     figmaAPIBase,
		httpClient: &http.Client{
			Timeout:   60 * time.Second,
			Transport: transport,
		},
	}
}

// SetBaseURL overrides the API endpoint. Used by tests and proxies.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

// GetNode retrieves the document subtree for a single node from the Figma nodes API.
// It returns an error when the request fails, the API responds with a non-200
// status, or the requested node is absent from the response.
func (c *Client) GetNode(ctx context.Context, fileKey, nodeID string) (*Node, error) {
	reqURL := fmt.Sprintf("%s/files/%s/nodes?ids=%s", c.baseURL, fileKey, url.QueryEscape(nodeID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Figma-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var nodesResp NodesResponse
	if err := json.Unmarshal(body, &nodesResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	nodeData, ok := nodesResp.Nodes[nodeID]
	if !ok {
		return nil, fmt.Errorf("node %q not present in response", nodeID)
	}

	return &nodeData.Document, nil
}

// GetImages requests rendered images for the given node IDs from the Figma
// image render API and returns the node ID to download URL mapping.
func (c *Client) GetImages(ctx context.Context, fileKey string, nodeIDs []string, format string, scale float64) (*ImagesResponse, error) {
	params := url.Values{}
	params.Set("ids", strings.Join(nodeIDs, ","))
	params.Set("format", format)
	params.Set("scale", fmt.Sprintf("%g", scale))

	reqURL := fmt.Sprintf("%s/images/%s?%s", c.baseURL, fileKey, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Figma-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var imagesResp ImagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&imagesResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if imagesResp.Err != "" {
		return nil, fmt.Errorf("image render API returned error: %s", imagesResp.Err)
	}

	return &imagesResp, nil
}

// Download performs a plain GET against an image download URL returned by
// GetImages and streams the body to w.
func (c *Client) Download(ctx context.Context, downloadURL string, w io.Writer) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP GET failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d downloading image", resp.StatusCode)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("failed to write image data: %w", err)
	}

	return nil
}
