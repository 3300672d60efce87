package framework

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID  TestID
	Errors  []error
	Skipped bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID identifies a test or subtest as the path of names leading to it.
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

var failureColor = color.New(color.FgRed, color.Bold)
var successColor = color.New(color.FgGreen, color.Bold)

// PrintResults writes a summary of a completed test run.
func PrintResults(dest io.Writer, results Results) {
	if results.OK() {
		successColor.Fprintf(dest, "All tests passed (%d total)\n", len(results.Tests))
		return
	}
	failureColor.Fprintf(dest, "FAILED: %d tests out of %d\n", len(results.Failures), len(results.Tests))
	for _, f := range results.Failures {
		fmt.Fprintf(dest, "  %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(dest, "    %s\n", line)
			}
		}
	}
}
