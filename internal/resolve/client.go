package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/ytget/mp3get/internal/logging"
)

// Converter service endpoints
const (
	DefaultOrigin      = "https://v1.y2mate.nu"
	DefaultInitBaseURL = "https://eta.etacloud.org/api/v1"
)

// HTTP client tuning
const (
	defaultTimeout   = 3 * time.Minute
	keepAliveTimeout = 90 * time.Second
)

// Config configures the converter-service client. Zero values fall back to
// the production endpoints.
type Config struct {
	Origin      string
	InitBaseURL string
	Timeout     time.Duration
}

func (c Config) withDefaults() Config {
	if c.Origin == "" {
		c.Origin = DefaultOrigin
	}
	if c.InitBaseURL == "" {
		c.InitBaseURL = DefaultInitBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// initResponse is the /init endpoint payload
type initResponse struct {
	ConvertURL string `json:"convertURL"`
	Error      string `json:"error"`
}

// convertResponse is the /convert endpoint payload
type convertResponse struct {
	Error       int    `json:"error"`
	ProgressURL string `json:"progressURL"`
	DownloadURL string `json:"downloadURL"`
	RedirectURL string `json:"redirectURL"`
	Redirect    int    `json:"redirect"`
	Title       string `json:"title"`
}

// Info is the resolved download descriptor for one video
type Info struct {
	Title       string
	DownloadURL string
}

// Client talks to the converter service
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a converter-service client
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100, // for connection reuse
				IdleConnTimeout:     keepAliveTimeout,
				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
			},
		},
	}
}

// get issues a GET with the Origin/Referer headers the service requires
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Origin", c.cfg.Origin)
	req.Header.Set("Referer", c.cfg.Origin+"/")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp, nil
}

// getJSON issues a GET and decodes the JSON body into out
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response format: %w", err)
	}
	return nil
}

// Init fetches the landing page, derives the auth token, and calls /init to
// obtain the signed convert URL.
func (c *Client) Init(ctx context.Context) (string, error) {
	log := logging.Component("resolve")

	resp, err := c.get(ctx, c.cfg.Origin)
	if err != nil {
		return "", fmt.Errorf("error fetching origin page: %w", err)
	}
	html, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("error reading origin page: %w", err)
	}

	payload, err := extractAuthPayload(string(html))
	if err != nil {
		return "", err
	}
	param, token, err := computeAuthorization(payload)
	if err != nil {
		return "", err
	}
	log.Debug().Str("param", param).Msg("Derived converter auth token")

	initURL := fmt.Sprintf("%s/init?%s=%s&t=%d", c.cfg.InitBaseURL, param, token, time.Now().Unix())
	var initResp initResponse
	if err := c.getJSON(ctx, initURL, &initResp); err != nil {
		return "", fmt.Errorf("init request failed: %w", err)
	}
	if initResp.Error != "0" {
		return "", fmt.Errorf("init returned error: %s", initResp.Error)
	}
	return initResp.ConvertURL, nil
}

// convert calls the convert endpoint for the video and follows a single
// redirect when the service asks for one.
func (c *Client) convert(ctx context.Context, convertURL, videoID string) (*convertResponse, error) {
	url := fmt.Sprintf("%s&v=%s&f=mp3&t=%d", convertURL, videoID, time.Now().Unix())
	var conv convertResponse
	if err := c.getJSON(ctx, url, &conv); err != nil {
		return nil, fmt.Errorf("convert request failed: %w", err)
	}
	if conv.Error != 0 {
		return nil, fmt.Errorf("convert returned error code: %d", conv.Error)
	}

	if conv.Redirect == 1 && conv.RedirectURL != "" {
		redirectURL := fmt.Sprintf("%s&t=%d", conv.RedirectURL, time.Now().Unix())
		var redirected convertResponse
		if err := c.getJSON(ctx, redirectURL, &redirected); err != nil {
			return nil, fmt.Errorf("redirect request failed: %w", err)
		}
		if redirected.Error != 0 {
			return nil, fmt.Errorf("convert returned error code: %d", redirected.Error)
		}
		return &redirected, nil
	}
	return &conv, nil
}

// DownloadInfo resolves a video ID to its title and download URL
func (c *Client) DownloadInfo(ctx context.Context, videoID string) (*Info, error) {
	convertURL, err := c.Init(ctx)
	if err != nil {
		return nil, err
	}
	conv, err := c.convert(ctx, convertURL, videoID)
	if err != nil {
		return nil, err
	}
	if conv.DownloadURL == "" {
		return nil, fmt.Errorf("download URL not found for video %s", videoID)
	}
	return &Info{Title: conv.Title, DownloadURL: conv.DownloadURL}, nil
}

// OpenStream starts the MP3 body download. The caller owns the response body.
func (c *Client) OpenStream(ctx context.Context, downloadURL string) (*http.Response, error) {
	return c.get(ctx, downloadURL)
}
