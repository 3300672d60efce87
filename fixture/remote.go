package fixture

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// URL invokes a CGI script remotely, by sending real HTTP requests to the
// server that hosts it. Status, headers, and body are exposed unchanged;
// there is no Stderr in this mode.
type URL struct {
	target *url.URL
	client *http.Client
	cfg    config
}

var _ Invoker = (*URL)(nil)

// NewURL creates a remote fixture for the given target URL.
func NewURL(rawURL string, opts ...Option) (*URL, error) {
	target, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid target URL %q: %w", rawURL, err)
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return nil, fmt.Errorf("target URL %q is not an HTTP URL", rawURL)
	}
	cfg := newConfig(opts)
	client := cfg.client
	if client == nil {
		client = &http.Client{Timeout: cfg.timeout}
	}
	return &URL{target: target, client: client, cfg: cfg}, nil
}

// Target returns the URL this fixture sends requests to.
func (u *URL) Target() string {
	return u.target.String()
}

func (u *URL) Get(params url.Values) (*Response, error) {
	target := *u.target
	query := target.Query()
	for name, values := range params {
		for _, value := range values {
			query.Add(name, value)
		}
	}
	target.RawQuery = query.Encode()

	u.cfg.logger.Printf("GET %s", target.String())
	resp, err := u.client.Get(target.String())
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", target.String(), err)
	}
	return newHTTPResponse(resp)
}

func (u *URL) PostForm(params url.Values) (*Response, error) {
	u.cfg.logger.Printf("POST %s (form)", u.target)
	resp, err := u.client.PostForm(u.target.String(), params)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", u.target, err)
	}
	return newHTTPResponse(resp)
}

func (u *URL) Post(body []byte, mimeType string) (*Response, error) {
	if mimeType == "" {
		mimeType = "text/plain"
	}
	u.cfg.logger.Printf("POST %s (%s, %d bytes)", u.target, mimeType, len(body))
	resp, err := u.client.Post(u.target.String(), mimeType, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", u.target, err)
	}
	return newHTTPResponse(resp)
}

func newHTTPResponse(resp *http.Response) (*Response, error) {
	defer resp.Body.Close()
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return &Response{
		Status:  resp.StatusCode,
		Headers: resp.Header.Clone(),
		Content: content,
	}, nil
}
