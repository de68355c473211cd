// Package config provides configuration loading and management for the
// HTC protocol generator.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"time"

	streamsconfig "github.com/c360studio/semstreams/config"
	"gopkg.in/yaml.v3"

	"github.com/aquariumbio/aquarium-opil/export"
)

// Config represents the complete generator configuration
type Config struct {
	Document   DocumentConfig   `yaml:"document"`
	Output     OutputConfig     `yaml:"output"`
	Parameters ParametersConfig `yaml:"parameters"`
	Provenance ProvenanceConfig `yaml:"provenance"`
	NATS       NATSConfig       `yaml:"nats"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Watch      WatchConfig      `yaml:"watch"`
}

// DocumentConfig configures the generated document
type DocumentConfig struct {
	// Namespace is the homespace for all identities (default: http://aquarium.bio/)
	Namespace string `yaml:"namespace"`
}

// OutputConfig configures where and how the document is written
type OutputConfig struct {
	// Dir is the output directory (default: current directory)
	Dir string `yaml:"dir"`
	// Name is the file name without extension (default: jellyfish_htc)
	Name string `yaml:"name"`
	// Format is the serialization format: turtle, ntriples, jsonld or rdfxml
	Format string `yaml:"format"`
	// Dated appends _YYYYMMDD to the file name (default: false)
	Dated *bool `yaml:"dated,omitempty"`
}

// ParametersConfig configures the protocol parameter list
type ParametersConfig struct {
	// Enabled emits the default parameter set; false emits none (default: true)
	Enabled *bool `yaml:"enabled,omitempty"`
}

// ProvenanceConfig configures generation provenance
type ProvenanceConfig struct {
	// Enabled records a prov:Activity for each run. Output then differs per run.
	Enabled *bool `yaml:"enabled,omitempty"`
}

// NATSConfig configures optional graph publishing
type NATSConfig struct {
	// URL is the NATS server URL (empty = do not publish)
	URL string `yaml:"url"`
	// Timeout bounds connecting and publishing
	Timeout time.Duration `yaml:"timeout"`
	// Bucket is a JetStream KV bucket that receives the serialized
	// document (empty = do not store)
	Bucket string `yaml:"bucket"`
}

// MetricsConfig configures generation metrics
type MetricsConfig struct {
	// Textfile is a node-exporter textfile path (empty = disabled)
	Textfile string `yaml:"textfile"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	// Debounce delays regeneration after the last config change
	Debounce time.Duration `yaml:"debounce"`
}

var bucketName = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Document: DocumentConfig{
			Namespace: "http://aquarium.bio/",
		},
		Output: OutputConfig{
			Dir:    ".",
			Name:   "jellyfish_htc",
			Format: string(export.FormatTurtle),
		},
		Parameters: ParametersConfig{
			Enabled: Bool(true),
		},
		NATS: NATSConfig{
			Timeout: 10 * time.Second,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// ParametersEnabled reports whether the default parameter set is emitted.
func (c *Config) ParametersEnabled() bool {
	return c.Parameters.Enabled == nil || *c.Parameters.Enabled
}

// OutputDated reports whether the output file name carries the date.
func (c *Config) OutputDated() bool {
	return c.Output.Dated != nil && *c.Output.Dated
}

// ProvenanceEnabled reports whether a prov:Activity is recorded.
func (c *Config) ProvenanceEnabled() bool {
	return c.Provenance.Enabled != nil && *c.Provenance.Enabled
}

// Bool returns a pointer to b for the optional boolean settings.
func Bool(b bool) *bool {
	return &b
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	u, err := url.Parse(c.Document.Namespace)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("document.namespace must be an absolute URL, got %q", c.Document.Namespace)
	}
	if c.Output.Name == "" {
		return fmt.Errorf("output.name is required")
	}
	if _, err := export.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if c.NATS.URL != "" {
		u, err := url.Parse(c.NATS.URL)
		if err != nil || u.Host == "" {
			return fmt.Errorf("nats.url must be a server URL, got %q", c.NATS.URL)
		}
	}
	if c.NATS.Bucket != "" && !bucketName.MatchString(c.NATS.Bucket) {
		return fmt.Errorf("nats.bucket may only contain letters, digits, '-' and '_', got %q", c.NATS.Bucket)
	}
	if c.NATS.Timeout < 0 {
		return fmt.Errorf("nats.timeout must not be negative")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	layer, err := LoadLayer(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	config.Merge(layer)
	return config, nil
}

// LoadLayer loads only the settings present in a YAML file; everything else
// is left zero so the result can be merged over another layer. ${VAR} and
// ${VAR:-default} references are expanded before parsing.
func LoadLayer(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := streamsconfig.ExpandEnvWithDefaults(string(data))

	config := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values; optional booleans override whenever they are set)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Document
	if other.Document.Namespace != "" {
		c.Document.Namespace = other.Document.Namespace
	}

	// Output
	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}
	if other.Output.Name != "" {
		c.Output.Name = other.Output.Name
	}
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.Dated != nil {
		c.Output.Dated = Bool(*other.Output.Dated)
	}

	// Parameters
	if other.Parameters.Enabled != nil {
		c.Parameters.Enabled = Bool(*other.Parameters.Enabled)
	}

	// Provenance
	if other.Provenance.Enabled != nil {
		c.Provenance.Enabled = Bool(*other.Provenance.Enabled)
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Timeout != 0 {
		c.NATS.Timeout = other.NATS.Timeout
	}
	if other.NATS.Bucket != "" {
		c.NATS.Bucket = other.NATS.Bucket
	}

	// Metrics
	if other.Metrics.Textfile != "" {
		c.Metrics.Textfile = other.Metrics.Textfile
	}

	// Watch
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
}
