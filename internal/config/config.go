package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable viper reads.
const EnvPrefix = "FINSIGHT"

// Viper keys.
const (
	KeyAPIBaseURL     = "api.base_url"
	KeyStoragePath    = "storage.path"
	KeyHistoryEnabled = "history.enabled"
	KeyHistoryLimit   = "history.limit"
	KeyTheme          = "ui.theme"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyLogFile        = "logging.file"
	KeyStubAddr       = "stub.addr"
)

// DefaultBaseURL is where the analysis service listens during local development.
const DefaultBaseURL = "http://localhost:5000"

// Settings is the resolved configuration, read once at startup.
type Settings struct {
	APIBaseURL     string
	StoragePath    string
	LogFile        string
	Theme          string
	LogLevel       string
	LogFormat      string
	StubAddr       string
	HistoryLimit   int
	HistoryEnabled bool
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIBaseURL, DefaultBaseURL)
	v.SetDefault(KeyStoragePath, filepath.Join("~", ".config", "finsight", "finsight.db"))
	v.SetDefault(KeyHistoryEnabled, true)
	v.SetDefault(KeyHistoryLimit, 5)
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyStubAddr, ":5000")
}

// BindEnv makes FINSIGHT_API_BASE_URL style variables visible to v.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Missing files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Load resolves settings from v and validates them.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		APIBaseURL:     strings.TrimSpace(v.GetString(KeyAPIBaseURL)),
		StoragePath:    ExpandPath(v.GetString(KeyStoragePath)),
		LogFile:        ExpandPath(v.GetString(KeyLogFile)),
		Theme:          v.GetString(KeyTheme),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
		StubAddr:       v.GetString(KeyStubAddr),
		HistoryEnabled: v.GetBool(KeyHistoryEnabled),
		HistoryLimit:   v.GetInt(KeyHistoryLimit),
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	if s.LogFile == "" && s.StoragePath != "" {
		s.LogFile = filepath.Join(filepath.Dir(s.StoragePath), "finsight.log")
	}

	return s, nil
}

// Validate checks the settings that would otherwise fail late.
func (s Settings) Validate() error {
	if s.APIBaseURL == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyAPIBaseURL)
	}

	u, err := url.Parse(s.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an http(s) URL, got %q", common.ErrInvalidConfig, KeyAPIBaseURL, s.APIBaseURL)
	}

	if s.HistoryEnabled && s.StoragePath == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyStoragePath)
	}

	if s.HistoryLimit < 0 {
		return fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyHistoryLimit)
	}

	if _, err := common.ParseLevel(s.LogLevel); err != nil {
		return err
	}

	switch s.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, s.LogFormat)
	}

	return nil
}
