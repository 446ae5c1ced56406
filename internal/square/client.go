// Package square is a thin client for the Square connect API surface the
// booking widget needs: catalog listing, team member search, availability
// search, and hosted payment link creation.
package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/silverfoxgrooming/booking-widget/pkg/logging"
)

var tracer = otel.Tracer("silverfox.internal.square")

const (
	productionBaseURL = "https://connect.squareup.com"
	sandboxBaseURL    = "https://connect.squareupsandbox.com"
)

// Client talks to the Square API on behalf of the booking endpoints.
type Client struct {
	accessToken string
	locationID  string
	baseURL     string
	httpClient  *http.Client
	logger      *logging.Logger
}

func NewClient(accessToken, locationID string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		accessToken: accessToken,
		locationID:  locationID,
		baseURL:     productionBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
}

// WithSandbox points the client at the Square sandbox host.
func (c *Client) WithSandbox(sandbox bool) *Client {
	if sandbox {
		c.baseURL = sandboxBaseURL
	}
	return c
}

// WithBaseURL overrides the Square API host (tests, sandbox proxies).
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL == "" {
		return c
	}
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// WithTimeout overrides the HTTP timeout for provider calls.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.httpClient.Timeout = timeout
	}
	return c
}

// HasLocation reports whether a location id was configured. Availability and
// checkout calls require one.
func (c *Client) HasLocation() bool {
	return c.locationID != ""
}

// do sends one authenticated request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path, spanName string, payload, out any) error {
	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()
	span.SetAttributes(attribute.String("square.path", path))

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("square: encode payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("square: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("square: http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: string(detail)}
		span.RecordError(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("square: decode response: %w", err)
	}
	return nil
}
