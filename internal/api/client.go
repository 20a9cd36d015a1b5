package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"reliefctl/pkg/logging"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

const clientSubsystem = "Client"

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// HTTPClient replaces the default client. Its Jar is used for the session
	// cookie; a jar is installed when it has none.
	HTTPClient *http.Client
}

// Client calls the relief backend over HTTP.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient constructs a relief backend client with a session cookie jar.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "reliefctl"
	}

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		userAgent:  userAgent,
		httpClient: httpClient,
	}, nil
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login authenticates and stores the session cookie for later calls.
func (c *Client) Login(ctx context.Context, name, password string) (UserType, error) {
	var res LoginResult
	if err := c.postJSON(ctx, "/login", loginRequest{Name: name, Password: password}, &res); err != nil {
		return "", err
	}
	if !res.Success {
		return "", ErrLoginRejected
	}
	return res.UserType, nil
}

// ListInventory returns the government inventory.
func (c *Client) ListInventory(ctx context.Context) ([]Supply, error) {
	var out []Supply
	if err := c.get(ctx, "/api/inventory", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddSupplies adds quantity of supply to the inventory.
func (c *Client) AddSupplies(ctx context.Context, supply string, quantity int) error {
	return c.postJSON(ctx, "/api/add-supplies", supplyRequest{Supply: supply, Quantity: quantity}, nil)
}

// ListReports returns all filed reports in backend order.
func (c *Client) ListReports(ctx context.Context) ([]Report, error) {
	var out []Report
	if err := c.get(ctx, "/api/reports", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteReport deletes the report identified by ref (see ReportRef).
func (c *Client) DeleteReport(ctx context.Context, ref string) error {
	return c.postJSON(ctx, "/api/delete-report/"+url.PathEscape(ref), nil, nil)
}

// ListStations returns the aid centres managed by government users.
func (c *Client) ListStations(ctx context.Context) ([]Station, error) {
	var out []Station
	if err := c.get(ctx, "/api/stations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddStation registers a new aid centre.
func (c *Client) AddStation(ctx context.Context, name string) error {
	return c.postJSON(ctx, "/api/add-station", stationRequest{Name: name}, nil)
}

// DeleteStation removes an aid centre by name.
func (c *Client) DeleteStation(ctx context.Context, name string) error {
	return c.postJSON(ctx, "/api/delete-station/"+url.PathEscape(name), nil, nil)
}

// FileReport submits a disaster report.
func (c *Client) FileReport(ctx context.Context, r ReportSubmission) error {
	return c.postJSON(ctx, "/api/file-report", r, nil)
}

// ListAvailableSupplies returns the supplies a public user may request.
func (c *Client) ListAvailableSupplies(ctx context.Context) ([]Supply, error) {
	var out []Supply
	if err := c.get(ctx, "/api/available-supplies", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RequestAid asks for quantity of supply and returns the server's confirmation text.
func (c *Client) RequestAid(ctx context.Context, supply string, quantity int) (string, error) {
	var ack Acknowledgement
	if err := c.postJSON(ctx, "/api/request-aid", supplyRequest{Supply: supply, Quantity: quantity}, &ack); err != nil {
		return "", err
	}
	return ack.Message, nil
}

// ListHelpStations returns the read-only station list shown to public users.
func (c *Client) ListHelpStations(ctx context.Context) ([]Station, error) {
	var out []Station
	if err := c.get(ctx, "/api/list-stations", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckMentalHealth reports whether the support chat is available and configured.
func (c *Client) CheckMentalHealth(ctx context.Context) (MentalHealthStatus, error) {
	var out MentalHealthStatus
	if err := c.get(ctx, "/api/mental-health/check", &out); err != nil {
		return MentalHealthStatus{}, err
	}
	return out, nil
}

// ConfigureMentalHealth hands the AI provider key to the backend.
func (c *Client) ConfigureMentalHealth(ctx context.Context, apiKey string) error {
	return c.postJSON(ctx, "/api/mental-health/configure", configureRequest{APIKey: apiKey}, nil)
}

// SendMentalHealthMessage sends one chat message and returns the reply text.
func (c *Client) SendMentalHealthMessage(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}
	var ack Acknowledgement
	if err := c.postJSON(ctx, "/api/mental-health/message", messageRequest{Message: message}, &ack); err != nil {
		return "", err
	}
	return ack.Message, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, path, out)
}

// postJSON posts payload as JSON; a nil payload sends an empty body.
func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request for %s: %w", path, err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Error(clientSubsystem, err, "%s %s failed (request %s)", req.Method, path, requestID)
		return fmt.Errorf("%s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	logging.Debug(clientSubsystem, "%s %s -> %d in %s (request %s)",
		req.Method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond), requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return &APIError{Status: resp.StatusCode, Message: errResp.Message, Path: path}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
