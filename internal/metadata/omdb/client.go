package omdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"moviediary/internal/metadata"
)

const notAvailable = "N/A"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// Response models the subset of the OMDb title payload used by the catalog.
type Response struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	IMDbRating string `json:"imdbRating"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// Client fetches movie details from OMDb.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ metadata.Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// New creates an OMDb client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("omdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("omdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Lookup returns the raw OMDb payload for title.
func (c *Client) Lookup(ctx context.Context, title string) (*Response, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return nil, fmt.Errorf("parse omdb url: %w", err)
	}
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("%w: execute request (latency=%v): %w", metadata.ErrUnavailable, latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: omdb returned %d (latency=%v)", metadata.ErrUnavailable, resp.StatusCode, latency)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read omdb response: %w", metadata.ErrUnavailable, err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) || bytes.Equal(body, []byte("{}")) {
		return nil, fmt.Errorf("%w: %q", metadata.ErrNotFound, title)
	}

	var payload Response
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode omdb response: %w", metadata.ErrUnavailable, err)
	}
	if strings.EqualFold(payload.Response, "False") || payload.Error != "" {
		reason := payload.Error
		if reason == "" {
			reason = "no match"
		}
		return nil, fmt.Errorf("%w: %q: %s", metadata.ErrNotFound, title, reason)
	}
	return &payload, nil
}

// Fetch implements metadata.Fetcher.
func (c *Client) Fetch(ctx context.Context, title string) (metadata.Details, error) {
	payload, err := c.Lookup(ctx, title)
	if err != nil {
		return metadata.Details{}, err
	}
	return payload.Details()
}

// Details converts the payload, rejecting responses without a year, a poster
// or a numeric rating.
func (r *Response) Details() (metadata.Details, error) {
	year := strings.TrimSpace(r.Year)
	if year == "" {
		return metadata.Details{}, fmt.Errorf("%w: missing year", metadata.ErrIncomplete)
	}
	poster := strings.TrimSpace(r.Poster)
	if poster == "" {
		return metadata.Details{}, fmt.Errorf("%w: missing poster", metadata.ErrIncomplete)
	}
	rating, err := parseRating(r.IMDbRating)
	if err != nil {
		return metadata.Details{}, fmt.Errorf("%w: %w", metadata.ErrIncomplete, err)
	}
	return metadata.Details{
		Title:  strings.TrimSpace(r.Title),
		Year:   year,
		Rating: rating,
		Poster: poster,
	}, nil
}

func parseRating(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(text, notAvailable) {
		return 0, errors.New("missing rating")
	}
	rating, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("rating %q: %w", text, err)
	}
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return 0, fmt.Errorf("rating %q is not finite", text)
	}
	return rating, nil
}
