// Package yaml loads crawl configuration files written in YAML.
package yaml

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/fwojciec/sitecrawl"
	"gopkg.in/yaml.v3"
)

// AppName names the configuration directory.
const AppName = "sitecrawl"

// DefaultConfigFile is the configuration file name inside the
// configuration directory.
const DefaultConfigFile = "config.yaml"

// File is the contents of a configuration file. Unset fields leave the
// corresponding command-line defaults in place.
type File struct {
	// Seeds are the URLs the crawl starts from.
	Seeds []string `yaml:"seeds"`

	// Patterns restricting which discovered links are followed.
	Scheme string `yaml:"scheme"`
	Domain string `yaml:"domain"`
	Path   string `yaml:"path"`

	// Links toggles link discovery.
	Links *bool `yaml:"links"`

	// Dir is the storage directory.
	Dir string `yaml:"dir"`

	// Timeout bounds a single fetch, e.g. "15s".
	Timeout time.Duration `yaml:"timeout"`

	// Sitemap seeds the crawl from a sitemap location.
	Sitemap string `yaml:"sitemap"`

	Extractors []Extractor `yaml:"extractors"`
}

// Extractor declares a named set of fields.
type Extractor struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

// Field declares one extracted value. Kind selects how the value is
// computed; Selector and Attr parameterize kinds that need them.
type Field struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Selector string `yaml:"selector,omitempty"`
	Attr     string `yaml:"attr,omitempty"`
}

// DefaultPath returns $XDG_CONFIG_HOME/sitecrawl/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, DefaultConfigFile)
}

// Load reads and validates the configuration file at path.
// Returns ENOTFOUND if the file does not exist.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, sitecrawl.Errorf(sitecrawl.ENOTFOUND, "configuration file %s not found", path)
		}
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "%s: %s", path, sitecrawl.ErrorMessage(err))
	}
	return f, nil
}

// Parse decodes and validates configuration data.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "invalid YAML: %v", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that every extractor and field is named and typed.
// Whether a kind is known is left to the code building the extractors.
func (f *File) Validate() error {
	if f.Timeout < 0 {
		return sitecrawl.Errorf(sitecrawl.EINVALID, "timeout must be non-negative")
	}
	for i, ex := range f.Extractors {
		if ex.Name == "" {
			return sitecrawl.Errorf(sitecrawl.EINVALID, "extractor %d has no name", i)
		}
		for j, fld := range ex.Fields {
			if fld.Name == "" {
				return sitecrawl.Errorf(sitecrawl.EINVALID, "extractor %q: field %d has no name", ex.Name, j)
			}
			if fld.Kind == "" {
				return sitecrawl.Errorf(sitecrawl.EINVALID, "extractor %q: field %q has no kind", ex.Name, fld.Name)
			}
		}
	}
	return nil
}
