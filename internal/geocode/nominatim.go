package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"agrirevive-backend/internal/shared/metrics"
	"agrirevive-backend/internal/shared/util"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	searchLimit      = 5
	maxQueryRunes    = 200
	defaultUserAgent = "agrirevive-backend/1.0"
	sharedTimeout    = 10 * time.Second
)

// Client talks to a Nominatim-compatible geocoder.
type Client struct {
	baseURL      string
	userAgent    string
	countryCodes string
	httpClient   *http.Client
	group        singleflight.Group
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithCountryCodes restricts searches to a comma-separated list of ISO codes.
func WithCountryCodes(codes string) Option {
	return func(c *Client) {
		c.countryCodes = strings.TrimSpace(codes)
	}
}

// NewClient constructs a Client for baseURL.
func NewClient(baseURL, userAgent string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = defaultUserAgent
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Error       string `json:"error,omitempty"`
}

// Search returns up to five places matching query. A blank query returns no places
// without a network call. Concurrent identical searches share one request.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	query = util.SanitizeInput(query, maxQueryRunes)
	if query == "" {
		return []Place{}, nil
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(searchLimit))
	if c.countryCodes != "" {
		params.Set("countrycodes", c.countryCodes)
	}

	v, err := c.shared(ctx, "search:"+util.NormalizeQuery(query), func(ctx context.Context) (any, error) {
		var raw []nominatimPlace
		if err := c.get(ctx, "/search", params, &raw); err != nil {
			return nil, err
		}
		places := make([]Place, 0, len(raw))
		for _, r := range raw {
			p, ok := toPlace(r)
			if !ok {
				continue
			}
			places = append(places, p)
			if len(places) == searchLimit {
				break
			}
		}
		return places, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]Place(nil), v.([]Place)...), nil
}

// Reverse resolves coordinates to the nearest named place.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (Place, error) {
	if !ValidCoordinates(lat, lon) {
		return Place{}, ErrInvalidCoordinates
	}
	latStr := strconv.FormatFloat(lat, 'f', 6, 64)
	lonStr := strconv.FormatFloat(lon, 'f', 6, 64)

	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", latStr)
	params.Set("lon", lonStr)

	v, err := c.shared(ctx, "reverse:"+latStr+","+lonStr, func(ctx context.Context) (any, error) {
		var raw nominatimPlace
		if err := c.get(ctx, "/reverse", params, &raw); err != nil {
			return nil, err
		}
		if raw.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrNoResult, raw.Error)
		}
		p, ok := toPlace(raw)
		if !ok {
			return nil, ErrNoResult
		}
		return p, nil
	})
	if err != nil {
		return Place{}, err
	}
	return v.(Place), nil
}

// shared runs fn once per key for all concurrent callers. fn gets a context
// detached from any single caller, so one caller giving up does not fail the
// others; each caller still returns as soon as its own ctx is done.
func (c *Client) shared(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := c.group.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedTimeout)
		defer cancel()
		return fn(callCtx)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	metrics.IncGeocodeRequests()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("geocode http status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("geocode decode: %w", err)
	}
	return nil
}

func toPlace(r nominatimPlace) (Place, bool) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(r.Lat), 64)
	if err != nil {
		return Place{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(r.Lon), 64)
	if err != nil {
		return Place{}, false
	}
	if !ValidCoordinates(lat, lon) || strings.TrimSpace(r.DisplayName) == "" {
		return Place{}, false
	}
	return Place{
		Lat:         lat,
		Lon:         lon,
		DisplayName: r.DisplayName,
		ShortName:   shortName(r.DisplayName),
	}, true
}
