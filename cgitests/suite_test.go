package cgitests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/mdklatt/cgi-contract-tests/casedef"
	"github.com/mdklatt/cgi-contract-tests/framework"
	"github.com/mdklatt/cgi-contract-tests/harness"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.cgi")
	require.NoError(t, os.WriteFile(path, []byte(body), 0755))
	return path
}

// A minimal conforming script: always text/plain, echoes its request body.
const conformingScript = `#!/bin/sh
echo "Content-Type: text/plain"
echo
cat
`

func TestSuitePassesForConformingScript(t *testing.T) {
	path := writeScript(t, conformingScript)
	server, err := harness.NewScriptServer(path, 0, nil)
	require.NoError(t, err)
	defer server.Close()

	target := Target{ScriptCommand: path, BaseURL: server.BaseURL()}
	results := RunTestSuite(target, nil, nil, nil)
	assert.True(t, results.OK(), "unexpected failures: %+v", results.Failures)
}

func TestSuiteLocalOnlySkipsRemote(t *testing.T) {
	target := Target{ScriptCommand: writeScript(t, conformingScript)}
	results := RunTestSuite(target, nil, nil, nil)
	assert.True(t, results.OK(), "unexpected failures: %+v", results.Failures)
}

func TestSuiteFailsForBrokenScript(t *testing.T) {
	target := Target{ScriptCommand: writeScript(t, "#!/bin/sh\necho 'not a CGI response'\n")}
	results := RunTestSuite(target, nil, nil, nil)
	assert.False(t, results.OK())
}

func TestSuiteUserCases(t *testing.T) {
	target := Target{ScriptCommand: writeScript(t, conformingScript)}
	cases := []casedef.Case{
		{
			Name:          "GET returns empty body",
			Method:        "GET",
			Params:        map[string]string{"param": "abc"},
			ExpectStatus:  ldvalue.NewOptionalInt(200),
			ExpectHeaders: map[string]string{"Content-Type": "text/plain"},
			ExpectContent: ldvalue.NewOptionalString(""),
		},
		{
			Name:          "POST form is echoed",
			Method:        "POST",
			Params:        map[string]string{"param": "abc"},
			ExpectContent: ldvalue.NewOptionalString("param=abc"),
		},
	}
	results := RunTestSuite(target, cases, nil, nil)
	assert.True(t, results.OK(), "unexpected failures: %+v", results.Failures)
}

func TestSuiteUserCaseFailure(t *testing.T) {
	target := Target{ScriptCommand: writeScript(t, conformingScript)}
	cases := []casedef.Case{
		{
			Name:         "wrong status",
			Method:       "GET",
			ExpectStatus: ldvalue.NewOptionalInt(404),
		},
	}
	results := RunTestSuite(target, cases, nil, nil)
	assert.False(t, results.OK())
}

func TestSuiteFilter(t *testing.T) {
	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set("^GET requests"))

	// The broken script would fail every test, but only GET tests run, and
	// this script handles GET fine.
	target := Target{ScriptCommand: writeScript(t, `#!/bin/sh
if [ "$REQUEST_METHOD" != "GET" ]; then
	exit 1
fi
echo "Content-Type: text/plain"
echo
`)}
	results := RunTestSuite(target, nil, filters.AsFilter, nil)
	assert.True(t, results.OK(), "unexpected failures: %+v", results.Failures)
}
