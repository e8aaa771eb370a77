// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig sets LTSVGREP_CFG_FILE to point to a test config file.
// Returns cleanup function that should be deferred.
func setupTestConfig(t *testing.T, testdataFile string) (cleanup func()) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	assert.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("LTSVGREP_CFG_FILE", absPath)

	// Reset the global Config to force reload
	Config = Type{}

	return func() {
		Config = Type{}
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "time,status", cfg.Data["whitelist"])
				assert.Equal(t, "host", cfg.Data["blacklist"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				colors, ok := cfg.Data["colors"].(map[string]interface{})
				assert.True(t, ok, "colors should be a map")
				assert.Equal(t, "#00c8f0", colors["key"])
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				// Empty YAML unmarshals to nil map, which is acceptable
				assert.NotEmpty(t, cfg.Source, "should have a source path")
				assert.Empty(t, cfg.Data)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			cfg, err := Load()
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
			assert.Equal(t, cfg, Config)
		})
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("LTSVGREP_CFG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Empty(t, Config.Source)
}

func TestLoad_CFG_FILE_IsDirectory(t *testing.T) {
	t.Setenv("LTSVGREP_CFG_FILE", t.TempDir())
	Config = Type{}

	_, err := Load()
	assert.ErrorContains(t, err, "directory")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("whitelist: [unclosed\n"), 0o600))
	t.Setenv("LTSVGREP_CFG_FILE", path)
	Config = Type{}

	_, err := Load()
	assert.ErrorContains(t, err, "failed to parse")
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{name: "top level", testFile: "simple.yaml", key: "whitelist", want: "time,status"},
		{name: "nested", testFile: "nested.yaml", key: "colors.key", want: "#00c8f0"},
		{name: "missing with default", testFile: "simple.yaml", key: "colors.key", defaultValue: []string{"#fff"}, want: "#fff"},
		{name: "missing without default", testFile: "simple.yaml", key: "colors.key", wantErr: true},
		{name: "not a string", testFile: "mixed-types.yaml", key: "version", wantErr: true},
		{name: "path through a scalar", testFile: "simple.yaml", key: "output.format", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			got, err := GetString(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetStringSlice(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue [][]string
		want         []string
		wantErr      bool
	}{
		{name: "set", testFile: "nested.yaml", key: "sets.errors", want: []string{"--blacklist host", "status=500"}},
		{name: "missing with default", testFile: "nested.yaml", key: "sets.none", defaultValue: [][]string{{"x"}}, want: []string{"x"}},
		{name: "missing without default", testFile: "nested.yaml", key: "sets.none", wantErr: true},
		{name: "non-string element", testFile: "mixed-types.yaml", key: "tags", wantErr: true},
		{name: "not a slice", testFile: "simple.yaml", key: "whitelist", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			got, err := GetStringSlice(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_NotFoundInStandardLocations(t *testing.T) {
	t.Setenv("LTSVGREP_CFG_FILE", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AppData", t.TempDir())
	Config = Type{}

	_, err := Load()
	assert.ErrorIs(t, err, ErrNotFound)
}
