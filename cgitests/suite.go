// Package cgitests is the contract test suite that the runner executes
// against a target CGI script or URL. The tests exercise the target through
// the fixtures in the fixture package and assert only behavior that any
// conforming CGI script must exhibit, plus whatever expectations the user
// supplies in a case file.
package cgitests

import (
	"github.com/mdklatt/cgi-contract-tests/casedef"
	"github.com/mdklatt/cgi-contract-tests/framework"
)

// RunTestSuite runs all of the contract tests against the target and returns
// the results.
func RunTestSuite(
	target Target,
	cases []casedef.Case,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, target, cases)

		t.Run("GET requests", DoGetTests)
		t.Run("POST requests", DoPostTests)
		t.Run("response contract", DoResponseContractTests)
		t.Run("stderr capture", DoStderrTests)
		t.Run("local-remote parity", DoParityTests)
		t.Run("user cases", DoUserCaseTests)
	})
}
