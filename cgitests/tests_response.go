package cgitests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdklatt/cgi-contract-tests/fixture"
)

func DoResponseContractTests(t *T) {
	t.RunEachMode("headers are case-insensitive", func(t *T, inv fixture.Invoker) {
		resp, err := inv.Get(nil)
		require.NoError(t, err)
		t.RequireWellFormed(resp)
		assert.Equal(t, resp.Header("Content-Type"), resp.Header("content-type"))
		assert.Equal(t, resp.Header("Content-Type"), resp.Header("CONTENT-TYPE"))
	})

	t.RunEachMode("each invocation is a fresh snapshot", func(t *T, inv fixture.Invoker) {
		resp1, err := inv.Get(nil)
		require.NoError(t, err)
		resp2, err := inv.Get(nil)
		require.NoError(t, err)
		require.NotSame(t, resp1, resp2)

		// Mutating one snapshot must not bleed into the other.
		resp1.Headers.Set("X-Mutated", "yes")
		assert.Empty(t, resp2.Header("X-Mutated"))
		assert.Equal(t, resp1.Status, resp2.Status)
	})
}

func DoStderrTests(t *T) {
	t.Run("diagnostics are separate from content", func(t *T) {
		script := t.RequireLocal()
		resp, err := script.Get(nil)
		require.NoError(t, err)
		t.RequireWellFormed(resp)
		if resp.Stderr != "" {
			t.Debug("script wrote to stderr: %s", resp.Stderr)
		}
	})
}
