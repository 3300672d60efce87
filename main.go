package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kballard/go-shellquote"

	"github.com/mdklatt/cgi-contract-tests/casedef"
	"github.com/mdklatt/cgi-contract-tests/cgitests"
	"github.com/mdklatt/cgi-contract-tests/framework"
	"github.com/mdklatt/cgi-contract-tests/harness"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args) {
		return 1
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	target := cgitests.Target{
		ScriptCommand: params.script,
		BaseURL:       params.url,
		Timeout:       params.timeout,
	}

	if target.HasLocal() {
		argv, err := shellquote.Split(params.script)
		if err != nil || len(argv) == 0 {
			fmt.Fprintf(os.Stderr, "Invalid -script value %q\n", params.script)
			return 1
		}
		var cmd commandBuilder
		cmd.add(argv...)
		fmt.Printf("Local target: %s\n", cmd)
	}

	// With no explicit URL, serve the script ourselves so the remote fixture
	// and the parity tests have something to talk to.
	if !target.HasRemote() {
		server, err := harness.NewScriptServer(params.script, params.port, mainDebugLogger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Script server error: %s\n", err)
			return 1
		}
		defer server.Close()
		target.BaseURL = server.BaseURL()
	}
	fmt.Printf("Remote target: %s\n", target.BaseURL)

	var cases []casedef.Case
	if params.cases != "" {
		var err error
		cases, err = casedef.Load(params.cases)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Case file error: %s\n", err)
			return 1
		}
		fmt.Printf("Loaded %d request cases from %s\n", len(cases), params.cases)
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := framework.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := cgitests.RunTestSuite(target, cases, params.filters.AsFilter, &testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		return 1
	}
	return 0
}
