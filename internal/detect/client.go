// Package detect talks to the floor-plan detection service and converts its
// bounding-box response into an editable plan state. The service contract is
// a scale factor plus parallel coordinate lists for rooms, doors, and
// windows, all in the pixel space of the image at native resolution.
package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrUnavailable marks detection failures that are worth retrying: network
// errors and non-2xx service responses. Callers should surface a retry
// option rather than dropping the request silently.
var ErrUnavailable = errors.New("detection service unavailable")

// Coord is one detected bounding box: two opposite corners plus the class
// color assigned by the detector.
type Coord struct {
	StartPoint [2]float64 `json:"startPoint"`
	EndPoint   [2]float64 `json:"endPoint"`
	Color      string     `json:"color"`
}

// Response is the detection payload. Coordinates are native-resolution
// pixels; ScaleFactor is real-world inches per native pixel.
type Response struct {
	ScaleFactor   float64 `json:"scaleFactor"`
	RoomCoords    []Coord `json:"roomCoords"`
	DoorCoords    []Coord `json:"doorCoords"`
	WindowsCoords []Coord `json:"windowsCoords"`
}

// envelope mirrors the service's response wrapper.
type envelope struct {
	Response Response `json:"response"`
}

// detectRequest is the request body for a detection run.
type detectRequest struct {
	Image       string  `json:"image"`
	ScaleFactor float64 `json:"scaleFactor,omitempty"`
}

// Client calls the detection service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client with a sane request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Detect runs detection for the named image. A non-zero scaleFactor is
// forwarded so a manually calibrated scale survives a re-run. The returned
// error wraps ErrUnavailable when a retry may succeed.
func (c *Client) Detect(ctx context.Context, image string, scaleFactor float64) (*Response, error) {
	body, err := json.Marshal(detectRequest{Image: image, ScaleFactor: scaleFactor})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/detect", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detect: %v: %w", err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detect: status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("detect: decode response: %w", err)
	}
	return &env.Response, nil
}
