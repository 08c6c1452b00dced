// Package content holds the copy and mock datasets rendered by the landing page.
package content

import (
	"bytes"
	_ "embed"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Default returns a fresh copy of the embedded site content
func Default() (*model.Content, error) {
	c, err := Parse(defaultContent)
	if err != nil {
		return nil, goerr.Wrap(err, "embedded content is broken")
	}
	return c, nil
}

// Load reads site content from a YAML file. An empty path yields the
// embedded content.
func Load(path string) (*model.Content, error) {
	if path == "" {
		return Default()
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read content file", goerr.V("path", path))
	}

	c, err := Parse(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load content file", goerr.V("path", path))
	}
	return c, nil
}

// Parse decodes and validates a YAML content document. Unknown keys are
// rejected so that typos in an override file surface early.
func Parse(data []byte) (*model.Content, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var c model.Content
	if err := decoder.Decode(&c); err != nil {
		return nil, goerr.Wrap(err, "failed to parse content YAML")
	}
	if err := c.Validate(); err != nil {
		return nil, goerr.Wrap(err, "content validation failed")
	}
	return &c, nil
}
