package fixture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/kballard/go-shellquote"
)

// Script invokes a CGI script as a local subprocess. The request is delivered
// through CGI/1.1 environment variables and, for POST, the script's standard
// input; the response is parsed from its standard output. Standard error is
// captured separately and exposed through Response.Stderr.
type Script struct {
	argv []string
	path string
	cfg  config
}

var _ Invoker = (*Script)(nil)

// NewScript creates a local fixture for the given script. The command string
// is split into a program path and arguments with shell quoting rules, so a
// target like `"/path/with space/script" -v` works as it would in a shell.
func NewScript(command string, opts ...Option) (*Script, error) {
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
	return &Script{argv: argv, path: path, cfg: newConfig(opts)}, nil
}

// Path returns the absolute path of the script.
func (s *Script) Path() string {
	return s.path
}

func (s *Script) Get(params url.Values) (*Response, error) {
	return s.run("GET", params.Encode(), nil, "")
}

func (s *Script) PostForm(params url.Values) (*Response, error) {
	return s.run("POST", "", []byte(params.Encode()), "application/x-www-form-urlencoded")
}

func (s *Script) Post(body []byte, mimeType string) (*Response, error) {
	if mimeType == "" {
		mimeType = "text/plain"
	}
	return s.run("POST", "", body, mimeType)
}

func (s *Script) run(method, query string, body []byte, mimeType string) (*Response, error) {
	if err := checkExecutable(s.path); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.path, s.argv[1:]...)
	cmd.Env = s.environ(method, query, body, mimeType)
	if body != nil {
		cmd.Stdin = bytes.NewReader(body)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.cfg.logger.Printf("invoking %s (%s)", quoteCommand(s.argv), method)
	runErr := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("script %s did not finish within %s", s.path, s.cfg.timeout)
	}
	var exitErr *exec.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		return nil, fmt.Errorf("executing script %s: %w", s.path, runErr)
	}

	status, headers, content, parseErr := parseResponse(stdout.Bytes())
	if parseErr != nil {
		if runErr != nil {
			return nil, fmt.Errorf("script %s failed (%s) with unparsable output: %w",
				s.path, runErr, parseErr)
		}
		return nil, fmt.Errorf("parsing output of script %s: %w", s.path, parseErr)
	}
	return &Response{
		Status:  status,
		Headers: headers,
		Content: content,
		Stderr:  stderr.String(),
	}, nil
}

// environ builds the CGI/1.1 environment for one invocation. The script does
// not inherit the parent environment, except for PATH so that interpreters
// can be found; anything else must be injected with WithEnv.
func (s *Script) environ(method, query string, body []byte, mimeType string) []string {
	env := []string{
		"GATEWAY_INTERFACE=CGI/1.1",
		"SERVER_PROTOCOL=HTTP/1.1",
		"SERVER_SOFTWARE=cgi-contract-tests",
		"SERVER_NAME=localhost",
		"SERVER_PORT=80",
		"REMOTE_ADDR=127.0.0.1",
		"SCRIPT_NAME=/" + filepath.Base(s.path),
		"SCRIPT_FILENAME=" + s.path,
		"PATH_INFO=",
		"REQUEST_METHOD=" + method,
		"QUERY_STRING=" + query,
		"PATH=" + os.Getenv("PATH"),
	}
	if body != nil {
		env = append(env,
			"CONTENT_TYPE="+mimeType,
			"CONTENT_LENGTH="+strconv.Itoa(len(body)),
		)
	}
	for name, value := range s.cfg.env {
		env = append(env, name+"="+value)
	}
	return env
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("script %s is missing: %w", path, err)
	}
	if info.IsDir() || info.Mode().Perm()&0111 == 0 {
		return fmt.Errorf("script %s is not executable", path)
	}
	return nil
}

func quoteCommand(argv []string) string {
	quoted := make([]string, 0, len(argv))
	for _, a := range argv {
		quoted = append(quoted, shellescape.Quote(a))
	}
	return strings.Join(quoted, " ")
}
