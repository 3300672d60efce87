package fixture

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const defaultStatus = 200

// Response is the result of one fixture invocation: an immutable snapshot of
// whatever the script or server produced. Header access is case-insensitive.
// Content is the raw body with no decoding applied; callers are responsible
// for interpreting it per its declared content type.
type Response struct {
	// Status is the numeric response status: from a Status header or leading
	// HTTP status line in local mode (200 if neither is present), or the HTTP
	// status code in remote mode.
	Status int

	// Headers holds the response headers exactly as received. Lookups through
	// http.Header methods are case-insensitive; repeated headers keep all of
	// their values.
	Headers http.Header

	// Content is the raw response body.
	Content []byte

	// Stderr is the text the script wrote to its error stream. It is only set
	// by the local fixture; remote invocations leave it empty.
	Stderr string
}

// Header returns the first value of the named header, with case-insensitive
// matching, or "" if the header is absent.
func (r *Response) Header(name string) string {
	return r.Headers.Get(name)
}

func (r *Response) ContentType() string {
	return r.Headers.Get("Content-Type")
}

// Text returns the body as a string, for assertions on text responses.
func (r *Response) Text() string {
	return string(r.Content)
}

// parseResponse splits the output of a CGI script into status, headers, and
// body. The header block ends at the first blank line; both LF and CRLF line
// endings are accepted. Per the CGI convention the status comes from a
// "Status: NNN reason" header; a leading "HTTP/x.y NNN reason" line, which
// some scripts emit instead, is also accepted. Anything else that is not a
// "name: value" line makes the whole response malformed.
func parseResponse(message []byte) (int, http.Header, []byte, error) {
	if len(message) == 0 {
		return 0, nil, nil, fmt.Errorf("empty response")
	}
	status := defaultStatus
	headers := make(http.Header)
	reader := bufio.NewReader(bytes.NewReader(message))
	first := true
	for {
		raw, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return 0, nil, nil, err
		}
		line := strings.TrimRight(raw, "\r\n")
		if line == "" {
			break // end of header block (blank line, or EOF with no body)
		}
		if first && strings.HasPrefix(line, "HTTP/") {
			code, parseErr := parseStatusLine(line)
			if parseErr != nil {
				return 0, nil, nil, parseErr
			}
			status = code
			first = false
			continue
		}
		first = false
		name, value, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(name) == "" {
			return 0, nil, nil, fmt.Errorf("malformed header line %q", line)
		}
		headers.Add(strings.TrimSpace(name), strings.TrimSpace(value))
		if err == io.EOF {
			break
		}
	}
	if statusValue := headers.Get("Status"); statusValue != "" {
		code, err := parseStatusHeader(statusValue)
		if err != nil {
			return 0, nil, nil, err
		}
		status = code
		headers.Del("Status")
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return 0, nil, nil, err
	}
	return status, headers, body, nil
}

func parseStatusLine(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, fmt.Errorf("malformed status line %q", line)
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("malformed status line %q", line)
	}
	return code, nil
}

func parseStatusHeader(value string) (int, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, fmt.Errorf("malformed Status header %q", value)
	}
	code, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("malformed Status header %q", value)
	}
	return code, nil
}
