package config

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleConfig_LoadsAsDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	data, err := SampleConfig()
	require.NoError(t, err)
	assert.Contains(t, string(data), "base_url: http://localhost:5000")

	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewReader(data)))

	fromFile, err := Load(v)
	require.NoError(t, err)

	defaults, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, defaults, fromFile)
}

func TestFile_Marshal(t *testing.T) {
	s := Settings{
		APIBaseURL:     "https://risk.example.com",
		StoragePath:    "/data/finsight.db",
		Theme:          "catppuccin-mocha",
		LogLevel:       "debug",
		LogFormat:      "json",
		StubAddr:       ":5000",
		HistoryEnabled: true,
		HistoryLimit:   3,
	}

	out, err := s.File().Marshal("json")
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "https://risk.example.com", decoded["api"]["base_url"])
	assert.Equal(t, "catppuccin-mocha", decoded["ui"]["theme"])
	assert.NotContains(t, decoded["logging"], "file")

	out, err = s.File().Marshal("yaml")
	require.NoError(t, err)
	assert.Contains(t, string(out), "path: /data/finsight.db")

	_, err = s.File().Marshal("toml")
	assert.Error(t, err)
}
