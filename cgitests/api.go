package cgitests

import (
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdklatt/cgi-contract-tests/casedef"
	"github.com/mdklatt/cgi-contract-tests/fixture"
	"github.com/mdklatt/cgi-contract-tests/framework"
)

// Target describes the CGI implementation under test. Either field may be
// empty; tests that need the missing mode are skipped.
type Target struct {
	// ScriptCommand is the command line for local invocations, e.g.
	// "/srv/cgi-bin/app.cgi -v".
	ScriptCommand string

	// BaseURL is the URL for remote invocations.
	BaseURL string

	// Timeout overrides the fixtures' default invocation timeout.
	Timeout time.Duration
}

func (target Target) HasLocal() bool  { return target.ScriptCommand != "" }
func (target Target) HasRemote() bool { return target.BaseURL != "" }

// T represents a test or subtest in the CGI contract suite.
//
// It implements the same basic functionality as Go's testing.T, but in an
// environment that is outside of the Go test runner. To make test assertions,
// use the assert and require packages, passing the *T as if it were a
// *testing.T. There are also helpers for constructing fixtures aimed at the
// target, which skip the test if the required mode is not configured.
type T struct {
	context *framework.Context
	target  Target
	cases   []casedef.Case
}

func newTestScope(context *framework.Context, target Target, cases []casedef.Case) *T {
	return &T{context: context, target: target, cases: cases}
}

// Errorf is called by assertions to log a test failure. It does not cause an
// immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.target, t.cases))
	})
}

func (t *T) SkipWithReason(reason string) {
	t.context.SkipWithReason(reason)
}

// Debug logs some debug output for the test. The output will be passed to the
// test logger at the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

func (t *T) DebugLogger() framework.Logger {
	return t.context.DebugLogger()
}

// RequireLocal returns a local fixture for the target script, skipping the
// test if no script was configured.
func (t *T) RequireLocal() *fixture.Script {
	if !t.target.HasLocal() {
		t.context.SkipWithReason("no local script target was configured")
	}
	script, err := fixture.NewScript(t.target.ScriptCommand, t.fixtureOpts()...)
	require.NoError(t, err)
	return script
}

// RequireRemote returns a remote fixture for the target URL, skipping the
// test if no URL was configured.
func (t *T) RequireRemote() *fixture.URL {
	if !t.target.HasRemote() {
		t.context.SkipWithReason("no remote URL target was configured")
	}
	remote, err := fixture.NewURL(t.target.BaseURL, t.fixtureOpts()...)
	require.NoError(t, err)
	return remote
}

func (t *T) fixtureOpts() []fixture.Option {
	opts := []fixture.Option{fixture.WithLogger(t.DebugLogger())}
	if t.target.Timeout > 0 {
		opts = append(opts, fixture.WithTimeout(t.target.Timeout))
	}
	return opts
}

// RunEachMode runs the same subtest once per available target mode, passing
// in the corresponding fixture.
func (t *T) RunEachMode(name string, action func(*T, fixture.Invoker)) {
	t.Run(name, func(t *T) {
		t.Run("local", func(t *T) {
			action(t, t.RequireLocal())
		})
		t.Run("remote", func(t *T) {
			action(t, t.RequireRemote())
		})
	})
}

// RequireWellFormed makes the baseline assertions that apply to any response
// from a working CGI script: a plausible status code and a declared content
// type.
func (t *T) RequireWellFormed(resp *fixture.Response) {
	require.NotNil(t, resp)
	assert.True(t, resp.Status >= 100 && resp.Status < 600,
		"implausible response status %d", resp.Status)
	assert.NotEmpty(t, resp.ContentType(), "response has no Content-Type header")
}
