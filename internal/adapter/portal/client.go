package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/couchcryptid/lake-evaporation-service/internal/domain"
	"github.com/couchcryptid/lake-evaporation-service/internal/observability"
)

// timeLayout is what the portal expects for start/end query parameters.
const timeLayout = "2006-01-02T15:04:05"

// Credentials identify the service account. Either Username or Email must be
// set; the portal accepts both.
type Credentials struct {
	Username string
	Email    string
	Password string
}

// Client talks to the portal REST API. Sessions authenticate once through
// /auth/login and carry the returned x-csrf-token header on every later
// request. The token is refreshed whenever a response carries a new one.
type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics

	mu        sync.Mutex
	csrfToken string
}

// NewClient creates a portal API client. Call Login before any other method.
func NewClient(baseURL string, creds Credentials, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// Organization is one tenant on the portal.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TimeSeries is a portal time series as returned by the organization
// time-series list, with location fields embedded when includeLocationData
// is requested.
type TimeSeries struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Path       string          `json:"path"`
	ExchangeID string          `json:"exchangeId"`
	Metadata   json.RawMessage `json:"metadata"`

	LocationID        string  `json:"locationId"`
	LocationName      string  `json:"locationName"`
	LocationLatitude  float64 `json:"locationLatitude"`
	LocationLongitude float64 `json:"locationLongitude"`
	LocationElevation float64 `json:"locationElevation"`
}

// RasterSeries is one gridded model series of a raster datasource. Path
// encodes the model, e.g. "/icon_eu/CLCL".
type RasterSeries struct {
	TimeseriesID string `json:"timeseriesId"`
	Path         string `json:"path"`
	Name         string `json:"name"`
	UnitSymbol   string `json:"unitSymbol"`
	ParameterKey string `json:"parameterKey"`
}

// Login authenticates the session and stores the CSRF token for later
// requests.
func (c *Client) Login(ctx context.Context) error {
	body := map[string]string{"password": c.creds.Password}
	switch {
	case c.creds.Username != "":
		body["userName"] = c.creds.Username
	case c.creds.Email != "":
		body["email"] = c.creds.Email
	default:
		return fmt.Errorf("portal credentials need a username or email")
	}

	var user struct {
		UserName string `json:"userName"`
	}
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, body, &user); err != nil {
		return fmt.Errorf("portal login: %w", err)
	}

	c.mu.Lock()
	token := c.csrfToken
	c.mu.Unlock()
	if token == "" {
		c.logger.Warn("login response carried no x-csrf-token")
	}

	c.logger.Info("logged in to portal", "user", user.UserName)
	return nil
}

// Logout ends the session. The client is unusable afterwards until the next
// Login.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, "logout", http.MethodPost, "/auth/logout", nil, nil, nil)

	c.mu.Lock()
	c.csrfToken = ""
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("portal logout: %w", err)
	}
	return nil
}

// Organizations lists all organizations visible to the session.
func (c *Client) Organizations(ctx context.Context) ([]Organization, error) {
	var orgs []Organization
	if err := c.do(ctx, "organizations", http.MethodGet, "/organizations", nil, nil, &orgs); err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return orgs, nil
}

// TimeSeriesList lists all time series of an organization with location data
// embedded.
func (c *Client) TimeSeriesList(ctx context.Context, orgID string) ([]TimeSeries, error) {
	query := url.Values{
		"includeLocationData": {"true"},
		"includeCoverage":     {"true"},
	}

	var series []TimeSeries
	path := fmt.Sprintf("/organizations/%s/timeSeries", url.PathEscape(orgID))
	if err := c.do(ctx, "timeseries_list", http.MethodGet, path, query, nil, &series); err != nil {
		return nil, fmt.Errorf("list time series for org %s: %w", orgID, err)
	}
	return series, nil
}

// SeriesData fetches samples of one time series over [start, end).
func (c *Client) SeriesData(ctx context.Context, seriesID string, start, end time.Time) ([]domain.Sample, error) {
	query := url.Values{
		"start": {start.Format(timeLayout)},
		"end":   {end.Format(timeLayout)},
	}

	var resp struct {
		Data []domain.Sample `json:"data"`
	}
	path := fmt.Sprintf("/timeseries/%s/data", url.PathEscape(seriesID))
	if err := c.do(ctx, "series_data", http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch data for series %s: %w", seriesID, err)
	}
	return resp.Data, nil
}

// WriteValue writes one value with metadata to a time series.
func (c *Client) WriteValue(ctx context.Context, seriesID string, timestamp time.Time, value float64, metadata map[string]any) error {
	body := map[string]any{
		"timestamp": timestamp.Format(time.RFC3339),
		"value":     value,
		"metadata":  metadata,
	}
	if metadata == nil {
		body["metadata"] = map[string]any{}
	}

	path := fmt.Sprintf("/timeseries/%s/data", url.PathEscape(seriesID))
	if err := c.do(ctx, "write_value", http.MethodPost, path, nil, body, nil); err != nil {
		return fmt.Errorf("write value to series %s: %w", seriesID, err)
	}
	return nil
}

// RasterSeriesList lists the gridded model series of a raster datasource.
func (c *Client) RasterSeriesList(ctx context.Context, datasourceID int) ([]RasterSeries, error) {
	var series []RasterSeries
	path := fmt.Sprintf("/raster/datasources/%d/timeSeries", datasourceID)
	if err := c.do(ctx, "raster_list", http.MethodGet, path, nil, nil, &series); err != nil {
		return nil, fmt.Errorf("list raster series for datasource %d: %w", datasourceID, err)
	}
	return series, nil
}

// RasterPointData extracts a raster series at a single geographic point over
// [start, end). It also returns the unit symbol the series is delivered in.
func (c *Client) RasterPointData(ctx context.Context, datasourceID int, seriesID string, lat, lon float64, start, end time.Time) ([]domain.Sample, string, error) {
	points, err := json.Marshal([]map[string]float64{{"lat": lat, "lon": lon}})
	if err != nil {
		return nil, "", fmt.Errorf("encode points: %w", err)
	}

	query := url.Values{
		"extractMode":     {"strict"},
		"allModelMembers": {"true"},
		"from":            {start.Format(timeLayout)},
		"until":           {end.Format(timeLayout)},
		"points":          {string(points)},
	}

	// One series object per requested point.
	var resp []struct {
		UnitSymbol string `json:"unitSymbol"`
		Data       []struct {
			Time  time.Time `json:"time"`
			Value float64   `json:"data"`
		} `json:"data"`
	}
	path := fmt.Sprintf("/raster/datasources/%d/timeSeries/%s/points", datasourceID, url.PathEscape(seriesID))
	if err := c.do(ctx, "raster_points", http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, "", fmt.Errorf("fetch raster points for series %s: %w", seriesID, err)
	}

	if len(resp) == 0 {
		return nil, "", nil
	}

	samples := make([]domain.Sample, 0, len(resp[0].Data))
	for _, p := range resp[0].Data {
		samples = append(samples, domain.Sample{Timestamp: p.Time, Value: p.Value})
	}
	return samples, resp[0].UnitSymbol, nil
}

func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body, out any) error {
	c.mu.Lock()
	token := c.csrfToken
	c.mu.Unlock()

	if token == "" && !strings.HasPrefix(path, "/auth") {
		return fmt.Errorf("not authenticated, call Login first")
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-csrf-token", token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(operation, start, false)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if newToken := resp.Header.Get("x-csrf-token"); newToken != "" {
		c.mu.Lock()
		c.csrfToken = newToken
		c.mu.Unlock()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.observe(operation, start, false)
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, snippet)
	}
	c.observe(operation, start, true)

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) observe(operation string, start time.Time, ok bool) {
	if c.metrics == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "error"
	}
	c.metrics.PortalRequests.WithLabelValues(operation, outcome).Inc()
	c.metrics.PortalRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
