package cgitests

import (
	"net/url"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdklatt/cgi-contract-tests/fixture"
)

// DoParityTests verifies that invoking the script locally and over HTTP
// produces the same observable response for the same request. Stderr is
// excluded; it only exists in local mode. Only headers the script itself
// controls are compared, since the HTTP server adds its own (Date, transfer
// framing, and so on).
func DoParityTests(t *T) {
	compare := func(t *T, invoke func(fixture.Invoker) (*fixture.Response, error)) {
		local, err := invoke(t.RequireLocal())
		require.NoError(t, err)
		remote, err := invoke(t.RequireRemote())
		require.NoError(t, err)

		assert.Equal(t, local.Status, remote.Status, "status differs between local and remote")
		assert.Equal(t, local.ContentType(), remote.ContentType(),
			"Content-Type differs between local and remote")
		assert.Equal(t, local.Content, remote.Content, "content differs between local and remote")
	}

	t.Run("GET", func(t *T) {
		params := url.Values{}
		params.Set("param", "abc")
		compare(t, func(inv fixture.Invoker) (*fixture.Response, error) {
			return inv.Get(params)
		})
	})

	t.Run("POST form", func(t *T) {
		params := url.Values{}
		params.Set("param", "abc")
		compare(t, func(inv fixture.Invoker) (*fixture.Response, error) {
			return inv.PostForm(params)
		})
	})

	t.Run("POST raw", func(t *T) {
		compare(t, func(inv fixture.Invoker) (*fixture.Response, error) {
			return inv.Post([]byte("raw payload"), "application/octet-stream")
		})
	})
}
