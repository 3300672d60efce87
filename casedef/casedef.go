// Package casedef defines the JSON file format for user-supplied request
// cases. Each case describes one request to send to the target script and,
// optionally, expectations about the response.
package casedef

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// File is the top-level structure of a case file.
type File struct {
	Cases []Case `json:"cases"`
}

// Case is one request plus its expectations. A POST carries either form
// parameters or a raw body with a MIME type, never both; Validate enforces
// this. Expectations that are omitted are simply not checked.
type Case struct {
	Name     string            `json:"name,omitempty"`
	Method   string            `json:"method,omitempty"` // GET (default) or POST
	Params   map[string]string `json:"params,omitempty"`
	Body     string            `json:"body,omitempty"`
	MIMEType string            `json:"mimeType,omitempty"`

	ExpectStatus  ldvalue.OptionalInt    `json:"expectStatus,omitempty"`
	ExpectHeaders map[string]string      `json:"expectHeaders,omitempty"`
	ExpectContent ldvalue.OptionalString `json:"expectContent,omitempty"`
}

// Load reads and validates a case file.
func Load(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("malformed case file %s: %w", path, err)
	}
	for i := range file.Cases {
		c := &file.Cases[i]
		if c.Method == "" {
			c.Method = "GET"
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("%s case %d", c.Method, i+1)
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("case file %s: %q: %w", path, c.Name, err)
		}
	}
	return file.Cases, nil
}

// Validate checks the structural invariants of a case.
func (c Case) Validate() error {
	switch c.Method {
	case "GET":
		if c.Body != "" || c.MIMEType != "" {
			return fmt.Errorf("GET cannot carry a body")
		}
	case "POST":
		if len(c.Params) != 0 && c.Body != "" {
			return fmt.Errorf("form parameters and raw body are mutually exclusive")
		}
		if c.MIMEType != "" && c.Body == "" {
			return fmt.Errorf("mimeType requires a body")
		}
	default:
		return fmt.Errorf("unsupported method %q", c.Method)
	}
	return nil
}

// FormParams returns the case's parameters as form values.
func (c Case) FormParams() url.Values {
	params := make(url.Values, len(c.Params))
	for name, value := range c.Params {
		params.Set(name, value)
	}
	return params
}
