// Package harness runs a target CGI script behind a local HTTP server, so the
// same script can be exercised through the remote fixture and compared with
// local invocations of it.
package harness

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/cgi"
	"path/filepath"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/mdklatt/cgi-contract-tests/framework"
)

const listenerTimeout = time.Second * 10

// ScriptServer serves one CGI script over HTTP. Request handling is delegated
// to net/http/cgi; the harness only provides the listener and the URL.
type ScriptServer struct {
	server   *http.Server
	listener net.Listener
	baseURL  string
	logger   framework.Logger
}

// NewScriptServer starts an HTTP server on the given port (0 picks a free
// one) that runs the script for every request to its base URL. It does not
// return until the listener is confirmed to be accepting requests.
func NewScriptServer(command string, port int, logger framework.Logger) (*ScriptServer, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("invalid script command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, errors.New("empty script command")
	}
	path, err := filepath.Abs(argv[0])
	if err != nil {
		return nil, err
	}

	scriptPath := "/cgi-bin/" + filepath.Base(path)
	handler := &cgi.Handler{
		Path:       path,
		Args:       argv[1:],
		Root:       scriptPath,
		Logger:     log.New(loggerWriter{logger}, "", 0),
		InheritEnv: []string{"PATH"},
	}
	mux := http.NewServeMux()
	mux.Handle(scriptPath, handler)
	mux.Handle(scriptPath+"/", handler)

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, err
	}
	s := &ScriptServer{
		listener: listener,
		baseURL:  fmt.Sprintf("http://%s%s", listener.Addr(), scriptPath),
		logger:   logger,
	}
	s.server = &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == "HEAD" {
				w.WriteHeader(200) // used to detect that the listener is live
				return
			}
			mux.ServeHTTP(w, r)
		}),
	}
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Printf("script server exited: %s", err)
		}
	}()

	if err := awaitListener(listener.Addr().String()); err != nil {
		_ = s.Close()
		return nil, err
	}
	logger.Printf("serving %s at %s", path, s.baseURL)
	return s, nil
}

// BaseURL returns the URL that invokes the script.
func (s *ScriptServer) BaseURL() string {
	return s.baseURL
}

// Close shuts the server down, interrupting any active script invocation.
func (s *ScriptServer) Close() error {
	return s.server.Close()
}

// awaitListener polls the server with HEAD requests until it responds, so
// tests never race against server startup.
func awaitListener(addr string) error {
	deadline := time.NewTimer(listenerTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(time.Millisecond * 10)
	defer ticker.Stop()
	for {
		select {
		case <-deadline.C:
			return fmt.Errorf("could not detect own listener at %s", addr)
		case <-ticker.C:
			resp, err := http.DefaultClient.Head("http://" + addr)
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode == 200 {
					return nil
				}
			}
		}
	}
}

type loggerWriter struct {
	logger framework.Logger
}

func (w loggerWriter) Write(p []byte) (int, error) {
	w.logger.Printf("%s", string(p))
	return len(p), nil
}
