package cgitests

import (
	"net/url"

	"github.com/stretchr/testify/require"

	"github.com/mdklatt/cgi-contract-tests/fixture"
)

func DoGetTests(t *T) {
	t.RunEachMode("no parameters", func(t *T, inv fixture.Invoker) {
		resp, err := inv.Get(nil)
		require.NoError(t, err)
		t.RequireWellFormed(resp)
	})

	t.RunEachMode("query parameters", func(t *T, inv fixture.Invoker) {
		params := url.Values{}
		params.Set("param", "abc")
		params.Set("reserved", "a b&c=d")
		resp, err := inv.Get(params)
		require.NoError(t, err)
		t.RequireWellFormed(resp)
	})
}

func DoPostTests(t *T) {
	t.RunEachMode("form parameters", func(t *T, inv fixture.Invoker) {
		params := url.Values{}
		params.Set("param", "abc")
		resp, err := inv.PostForm(params)
		require.NoError(t, err)
		t.RequireWellFormed(resp)
	})

	t.RunEachMode("raw body", func(t *T, inv fixture.Invoker) {
		resp, err := inv.Post([]byte(`{"hello": "world"}`), "application/json")
		require.NoError(t, err)
		t.RequireWellFormed(resp)
	})

	t.RunEachMode("empty body", func(t *T, inv fixture.Invoker) {
		resp, err := inv.Post([]byte{}, "text/plain")
		require.NoError(t, err)
		t.RequireWellFormed(resp)
	})
}
