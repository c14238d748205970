package config

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// File mirrors the layout of config.yaml.
type File struct {
	API     APISection     `yaml:"api" json:"api"`
	Storage StorageSection `yaml:"storage" json:"storage"`
	UI      UISection      `yaml:"ui" json:"ui"`
	Logging LoggingSection `yaml:"logging" json:"logging"`
	Stub    StubSection    `yaml:"stub" json:"stub"`
	History HistorySection `yaml:"history" json:"history"`
}

// APISection configures the analysis service.
type APISection struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
}

// StorageSection configures the history database.
type StorageSection struct {
	Path string `yaml:"path" json:"path"`
}

// HistorySection configures analysis history.
type HistorySection struct {
	Limit   int  `yaml:"limit" json:"limit"`
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// UISection configures the terminal interface.
type UISection struct {
	Theme string `yaml:"theme" json:"theme"`
}

// LoggingSection configures log output.
type LoggingSection struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// StubSection configures the development stub server.
type StubSection struct {
	Addr string `yaml:"addr" json:"addr"`
}

// File returns the settings in config file layout.
func (s Settings) File() File {
	return File{
		API:     APISection{BaseURL: s.APIBaseURL},
		Storage: StorageSection{Path: s.StoragePath},
		History: HistorySection{Enabled: s.HistoryEnabled, Limit: s.HistoryLimit},
		UI:      UISection{Theme: s.Theme},
		Logging: LoggingSection{Level: s.LogLevel, Format: s.LogFormat, File: s.LogFile},
		Stub:    StubSection{Addr: s.StubAddr},
	}
}

// Marshal encodes f as "yaml" or "json".
func (f File) Marshal(format string) ([]byte, error) {
	switch format {
	case "yaml", "":
		data, err := yaml.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		return data, nil
	case "json":
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use json or yaml)", format)
	}
}

// SampleConfig returns config.yaml content holding the default values with
// paths left unexpanded.
func SampleConfig() ([]byte, error) {
	v := viper.New()
	SetDefaults(v)

	f := File{
		API:     APISection{BaseURL: v.GetString(KeyAPIBaseURL)},
		Storage: StorageSection{Path: v.GetString(KeyStoragePath)},
		History: HistorySection{Enabled: v.GetBool(KeyHistoryEnabled), Limit: v.GetInt(KeyHistoryLimit)},
		UI:      UISection{Theme: v.GetString(KeyTheme)},
		Logging: LoggingSection{Level: v.GetString(KeyLogLevel), Format: v.GetString(KeyLogFormat)},
		Stub:    StubSection{Addr: v.GetString(KeyStubAddr)},
	}

	data, err := f.Marshal("yaml")
	if err != nil {
		return nil, err
	}
	return append([]byte("# FinSight configuration\n"), data...), nil
}
