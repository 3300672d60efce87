package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponseDefaults(t *testing.T) {
	status, headers, body, err := parseResponse([]byte("Content-Type: text/plain\n\nHELLO"))
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Equal(t, "text/plain", headers.Get("Content-Type"))
	assert.Equal(t, "HELLO", string(body))
}

func TestParseResponseStatusHeader(t *testing.T) {
	status, headers, body, err := parseResponse([]byte(
		"Status: 404 Not Found\nContent-Type: text/plain\n\nno such thing"))
	require.NoError(t, err)
	assert.Equal(t, 404, status)
	assert.Empty(t, headers.Get("Status"), "Status header should be consumed")
	assert.Equal(t, "no such thing", string(body))
}

func TestParseResponseStatusLine(t *testing.T) {
	status, headers, body, err := parseResponse([]byte(
		"HTTP/1.1 201 Created\nContent-Type: application/json\n\n{}"))
	require.NoError(t, err)
	assert.Equal(t, 201, status)
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.Equal(t, "{}", string(body))
}

func TestParseResponseCRLF(t *testing.T) {
	status, headers, body, err := parseResponse([]byte(
		"Content-Type: text/plain\r\nX-Extra: yes\r\n\r\nline1\r\nline2"))
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Equal(t, "yes", headers.Get("X-Extra"))
	assert.Equal(t, "line1\r\nline2", string(body), "body line endings must not be rewritten")
}

func TestParseResponseRepeatedHeader(t *testing.T) {
	_, headers, _, err := parseResponse([]byte(
		"Content-Type: text/plain\nSet-Cookie: a=1\nSet-Cookie: b=2\n\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a=1", "b=2"}, headers.Values("Set-Cookie"))
}

func TestParseResponseHeaderCase(t *testing.T) {
	_, headers, _, err := parseResponse([]byte("content-TYPE: text/html\n\n<p>hi</p>"))
	require.NoError(t, err)
	assert.Equal(t, "text/html", headers.Get("Content-Type"))
}

func TestParseResponseNoBody(t *testing.T) {
	status, headers, body, err := parseResponse([]byte("Content-Type: text/plain\n"))
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Equal(t, "text/plain", headers.Get("Content-Type"))
	assert.Empty(t, body)
}

func TestParseResponseBinaryBody(t *testing.T) {
	raw := append([]byte("Content-Type: application/octet-stream\n\n"), 0x00, 0xff, 0x0a, 0x01)
	_, _, body, err := parseResponse(raw)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff, 0x0a, 0x01}, body)
}

func TestParseResponseMalformed(t *testing.T) {
	for name, message := range map[string]string{
		"empty output":     "",
		"no colon":         "this is not a header\n\nbody",
		"empty name":       ": value\n\nbody",
		"bad status line":  "HTTP/1.1 abc\n\nbody",
		"bad status value": "Status: abc\n\nbody",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, _, err := parseResponse([]byte(message))
			assert.Error(t, err)
		})
	}
}

func TestResponseAccessors(t *testing.T) {
	status, headers, body, err := parseResponse([]byte("Content-Type: text/plain\n\nHELLO"))
	require.NoError(t, err)
	resp := &Response{Status: status, Headers: headers, Content: body}
	assert.Equal(t, "text/plain", resp.Header("content-type"))
	assert.Equal(t, "text/plain", resp.ContentType())
	assert.Equal(t, "HELLO", resp.Text())
	assert.Empty(t, resp.Stderr)
}
