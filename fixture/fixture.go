// Package fixture provides the request fixtures used for black-box testing of
// CGI scripts. A script can be invoked locally, by running it as a subprocess
// with a simulated CGI environment, or remotely, by sending a real HTTP
// request to a server that hosts it. Both invokers produce the same Response
// contract so tests can be written once and pointed at either mode.
package fixture

import (
	"net/http"
	"net/url"
	"time"

	"github.com/mdklatt/cgi-contract-tests/framework"
)

const defaultTimeout = time.Second * 10

// Invoker is the common interface of the local and remote fixtures.
//
// Each method performs one complete request and returns an immutable snapshot
// of the result. A POST carries either form parameters (PostForm) or raw body
// bytes with an explicit MIME type (Post), never both.
type Invoker interface {
	Get(params url.Values) (*Response, error)
	PostForm(params url.Values) (*Response, error)
	Post(body []byte, mimeType string) (*Response, error)
}

type config struct {
	timeout time.Duration
	env     map[string]string
	client  *http.Client
	logger  framework.Logger
}

func newConfig(opts []Option) config {
	cfg := config{
		timeout: defaultTimeout,
		logger:  framework.NullLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a fixture at construction time.
type Option func(*config)

// WithTimeout sets the deadline for a single invocation: subprocess runtime
// for the local fixture, the HTTP client timeout for the remote one.
func WithTimeout(d time.Duration) Option {
	return func(cfg *config) { cfg.timeout = d }
}

// WithEnv adds an environment variable to local script invocations. It has no
// effect on the remote fixture.
func WithEnv(name, value string) Option {
	return func(cfg *config) {
		if cfg.env == nil {
			cfg.env = make(map[string]string)
		}
		cfg.env[name] = value
	}
}

// WithHTTPClient replaces the default HTTP client used by the remote fixture.
// The client's own timeout, if any, takes precedence over WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) { cfg.client = client }
}

// WithLogger directs the fixture's debug output, normally to a test's
// capturing logger.
func WithLogger(logger framework.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
