package cgitests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdklatt/cgi-contract-tests/casedef"
	"github.com/mdklatt/cgi-contract-tests/fixture"
)

// DoUserCaseTests runs every request case from the user's case file against
// each available target mode, checking whatever expectations the case
// declares.
func DoUserCaseTests(t *T) {
	if len(t.cases) == 0 {
		t.SkipWithReason("no case file was provided")
	}
	for _, c := range t.cases {
		c := c
		t.RunEachMode(c.Name, func(t *T, inv fixture.Invoker) {
			resp := runCase(t, inv, c)
			if c.ExpectStatus.IsDefined() {
				assert.Equal(t, c.ExpectStatus.IntValue(), resp.Status, "unexpected status")
			}
			for name, want := range c.ExpectHeaders {
				assert.Equal(t, want, resp.Header(name), "unexpected value for header %q", name)
			}
			if c.ExpectContent.IsDefined() {
				assert.Equal(t, c.ExpectContent.StringValue(), resp.Text(), "unexpected content")
			}
		})
	}
}

func runCase(t *T, inv fixture.Invoker, c casedef.Case) *fixture.Response {
	var resp *fixture.Response
	var err error
	switch {
	case c.Method == "GET":
		resp, err = inv.Get(c.FormParams())
	case c.Body != "":
		resp, err = inv.Post([]byte(c.Body), c.MIMEType)
	default:
		resp, err = inv.PostForm(c.FormParams())
	}
	require.NoError(t, err)
	require.NotNil(t, resp)
	return resp
}
