package ytmusic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL   = "https://music.youtube.com/youtubei/v1/"
	DefaultLanguage  = "en"
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"

	clientName = "WEB_REMIX"
	origin     = "https://music.youtube.com"
)

// Client is an anonymous YouTube Music (InnerTube) client. It holds no
// session state; construct one per invocation.
type Client struct {
	httpClient *http.Client
	baseURL    string
	language   string
	region     string
	userAgent  string
	timeout    time.Duration
	now        func() time.Time
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u == "" {
			return
		}
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		c.baseURL = u
	}
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

func WithLanguage(hl string) Option {
	return func(c *Client) {
		if hl != "" {
			c.language = hl
		}
	}
}

func WithRegion(gl string) Option { return func(c *Client) { c.region = gl } }

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout bounds the whole request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
		language:   DefaultLanguage,
		userAgent:  DefaultUserAgent,
		now:        time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type clientContext struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	HL            string `json:"hl"`
	GL            string `json:"gl,omitempty"`
}

type searchRequest struct {
	Context struct {
		Client clientContext  `json:"client"`
		User   map[string]any `json:"user"`
	} `json:"context"`
	Query  string `json:"query"`
	Params string `json:"params,omitempty"`
}

// clientVersion follows the web client's 1.YYYYMMDD.01.00 scheme.
func (c *Client) clientVersion() string {
	return "1." + c.now().UTC().Format("20060102") + ".01.00"
}

// Search issues exactly one search request and returns at most limit
// results. An empty list means the backend found nothing.
func (c *Client) Search(ctx context.Context, query string, filter Filter, limit int) ([]Song, error) {
	params, ok := searchParams[filter]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, string(filter))
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	var body searchRequest
	body.Context.Client = clientContext{
		ClientName:    clientName,
		ClientVersion: c.clientVersion(),
		HL:            c.language,
		GL:            c.region,
	}
	body.Context.User = map[string]any{}
	body.Query = query
	body.Params = params

	raw, err := c.post(ctx, "search", body)
	if err != nil {
		return nil, err
	}
	songs, err := parseSearchResponse(raw, filter)
	if err != nil {
		return nil, err
	}
	if len(songs) > limit {
		songs = songs[:limit]
	}
	return songs, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	url := c.baseURL + endpoint + "?alt=json&prettyPrint=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Origin", origin)
	req.Header.Set("X-Origin", origin)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrBackend, err)
	}
	return raw, nil
}
