package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alessio/shellescape"

	"github.com/mdklatt/cgi-contract-tests/framework"
)

const defaultPort = 8111
const defaultTimeout = time.Second * 10

type commandParams struct {
	script   string
	url      string
	cases    string
	port     int
	timeout  time.Duration
	filters  framework.RegexFilters
	debug    bool
	debugAll bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.script, "script", "", "command line of the CGI script to test locally")
	fs.StringVar(&c.url, "url", "", "URL of the CGI script to test remotely")
	fs.StringVar(&c.cases, "cases", "", "JSON file of request cases to run against the target")
	fs.IntVar(&c.port, "port", defaultPort, "port for serving the script over HTTP (0 picks a free port)")
	fs.DurationVar(&c.timeout, "timeout", defaultTimeout, "time limit for a single invocation")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.script == "" && c.url == "" {
		fmt.Fprintln(os.Stderr, "at least one of -script or -url is required")
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
