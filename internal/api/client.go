package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// ErrMissingFile is returned by Upload when no file was provided. No request
// is sent in that case.
var ErrMissingFile = errors.New("no dxf file provided")

// StatusError is a non-2xx response from the plant service. Op is the call
// that failed: "upload", "coordinates" or "report".
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("plant %s: unexpected status %d", e.Op, e.Code)
}

// Client talks to the plant processing service.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// Metadata holds the aggregate totals computed by the backend for a plant.
// Vertices and Layers are emitted by the DXF parser when available.
type Metadata struct {
	Area      *float64 `json:"area"`
	Perimeter *float64 `json:"perimeter"`
	Vertices  *int     `json:"vertices"`
	Layers    []string `json:"layers"`
}

// Geometry is the coordinates response: the raw feature collection plus the
// aggregate metadata.
type Geometry struct {
	GeoJSON  json.RawMessage `json:"geojson"`
	Metadata Metadata        `json:"metadata"`
}

// Upload submits a DXF drawing as multipart form data and returns the id the
// backend assigned to the plant.
func (c *Client) Upload(ctx context.Context, name, filename string, file io.Reader) (string, error) {
	if file == nil {
		return "", ErrMissingFile
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("arquivo_dxf", filename)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("read dxf file: %w", err)
	}
	if err := mw.WriteField("nome", name); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/plant/", &buf)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Op: "upload", Code: resp.StatusCode}
	}

	// The id is opaque: the backend may serialize it as a number or a string.
	var out struct {
		ID any `json:"id"`
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if out.ID == nil {
		return "", errors.New("upload response missing id")
	}
	return fmt.Sprint(out.ID), nil
}

// Coordinates fetches the computed geometry and aggregate metadata for a plant.
func (c *Client) Coordinates(ctx context.Context, id string) (*Geometry, error) {
	url := fmt.Sprintf("%s/api/plant/%s/coordinates/", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build coordinates request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coordinates request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Op: "coordinates", Code: resp.StatusCode}
	}

	var geo Geometry
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		return nil, fmt.Errorf("decode coordinates response: %w", err)
	}
	return &geo, nil
}

// Report fetches the generated report URL for a plant. Callers treat this as
// best-effort and may discard the error.
func (c *Client) Report(ctx context.Context, id string) (string, error) {
	url := fmt.Sprintf("%s/api/plant/%s/report/", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build report request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("report request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Op: "report", Code: resp.StatusCode}
	}

	var out struct {
		PDF string `json:"pdf"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode report response: %w", err)
	}
	return out.PDF, nil
}
