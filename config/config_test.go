package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Document.Namespace != "http://aquarium.bio/" {
		t.Errorf("expected namespace http://aquarium.bio/, got %s", cfg.Document.Namespace)
	}
	if cfg.Output.Name != "jellyfish_htc" {
		t.Errorf("expected output name jellyfish_htc, got %s", cfg.Output.Name)
	}
	if cfg.Output.Format != "turtle" {
		t.Errorf("expected format turtle, got %s", cfg.Output.Format)
	}
	if cfg.OutputDated() {
		t.Error("expected undated output by default")
	}
	if !cfg.ParametersEnabled() {
		t.Error("expected parameters enabled by default")
	}
	if cfg.ProvenanceEnabled() {
		t.Error("expected provenance disabled by default")
	}
	if cfg.NATS.URL != "" {
		t.Error("expected publishing disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "relative namespace",
			modify:  func(c *Config) { c.Document.Namespace = "aquarium.bio" },
			wantErr: true,
		},
		{
			name:    "missing output name",
			modify:  func(c *Config) { c.Output.Name = "" },
			wantErr: true,
		},
		{
			name:    "unknown format",
			modify:  func(c *Config) { c.Output.Format = "sbol2" },
			wantErr: true,
		},
		{
			name:    "format alias",
			modify:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: false,
		},
		{
			name:    "bad nats url",
			modify:  func(c *Config) { c.NATS.URL = "localhost" },
			wantErr: true,
		},
		{
			name:    "nats url",
			modify:  func(c *Config) { c.NATS.URL = "nats://localhost:4222" },
			wantErr: false,
		},
		{
			name:    "kv bucket",
			modify:  func(c *Config) { c.NATS.Bucket = "AQUARIUM_OPIL_DOCUMENTS" },
			wantErr: false,
		},
		{
			name:    "kv bucket with dot",
			modify:  func(c *Config) { c.NATS.Bucket = "opil.documents" },
			wantErr: true,
		},
		{
			name:    "negative debounce",
			modify:  func(c *Config) { c.Watch.Debounce = -time.Second },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
document:
  namespace: "https://lab.example.org/"
output:
  dir: "out"
  format: "jsonld"
  dated: true
parameters:
  enabled: false
provenance:
  enabled: true
nats:
  url: "nats://test:4222"
  timeout: 3s
  bucket: "HTC_DOCS"
metrics:
  textfile: "/var/lib/node_exporter/htc.prom"
watch:
  debounce: 2s
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Document.Namespace != "https://lab.example.org/" {
		t.Errorf("expected namespace https://lab.example.org/, got %s", cfg.Document.Namespace)
	}
	if cfg.Output.Dir != "out" || cfg.Output.Format != "jsonld" || !cfg.OutputDated() {
		t.Errorf("unexpected output config %+v", cfg.Output)
	}
	// Unset fields keep their defaults.
	if cfg.Output.Name != "jellyfish_htc" {
		t.Errorf("expected default output name, got %s", cfg.Output.Name)
	}
	if cfg.ParametersEnabled() {
		t.Error("expected parameters disabled")
	}
	if !cfg.ProvenanceEnabled() {
		t.Error("expected provenance enabled")
	}
	if cfg.NATS.URL != "nats://test:4222" || cfg.NATS.Timeout != 3*time.Second || cfg.NATS.Bucket != "HTC_DOCS" {
		t.Errorf("unexpected nats config %+v", cfg.NATS)
	}
	if cfg.Metrics.Textfile != "/var/lib/node_exporter/htc.prom" {
		t.Errorf("unexpected metrics textfile %s", cfg.Metrics.Textfile)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
}

func TestLoadFromFileExpandsEnv(t *testing.T) {
	t.Setenv("HTC_OUTPUT_DIR", "/data/protocols")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
output:
  dir: "${HTC_OUTPUT_DIR}"
nats:
  url: "${HTC_NATS_URL_UNSET:-nats://localhost:4222}"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Output.Dir != "/data/protocols" {
		t.Errorf("expected expanded dir, got %s", cfg.Output.Dir)
	}
	if cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("expected default NATS URL, got %s", cfg.NATS.URL)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("output: [not, a, map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	disabled := false
	override := &Config{
		Output: OutputConfig{
			Format: "ntriples",
			Dated:  Bool(true),
		},
		Parameters: ParametersConfig{
			Enabled: &disabled,
		},
		NATS: NATSConfig{
			Bucket: "HTC_DOCS",
		},
	}

	base.Merge(override)

	if base.NATS.Bucket != "HTC_DOCS" {
		t.Errorf("expected bucket HTC_DOCS, got %s", base.NATS.Bucket)
	}

	if base.Output.Format != "ntriples" {
		t.Errorf("expected format ntriples, got %s", base.Output.Format)
	}
	// Name should remain from base since override didn't set it
	if base.Output.Name != "jellyfish_htc" {
		t.Errorf("expected name to remain default, got %s", base.Output.Name)
	}
	if !base.OutputDated() {
		t.Error("expected dated output")
	}
	if base.ParametersEnabled() {
		t.Error("expected parameters disabled after merge")
	}

	// Merge copies the flag rather than aliasing it.
	disabled = true
	if base.ParametersEnabled() {
		t.Error("merge aliased the parameters flag")
	}

	base.Merge(nil)
	if base.Output.Format != "ntriples" {
		t.Error("nil merge changed config")
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "aquarium-opil.yaml")

	cfg := DefaultConfig()
	cfg.Output.Name = "saved"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Output.Name != "saved" {
		t.Errorf("expected name saved, got %s", loaded.Output.Name)
	}
	if !loaded.ParametersEnabled() {
		t.Error("expected parameters enabled after round trip")
	}
}
