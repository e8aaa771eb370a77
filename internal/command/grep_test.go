// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/tfctl/ltsvgrep/internal/version"
)

const accessLog = "time=1\tstatus=200\thost=a\tpath=/\n" +
	"time=2\tstatus=500\thost=b\tpath=/x\n" +
	"time=3\tstatus=200\thost=c\tpath=/y\n"

// noConfig points config lookup at an empty directory so no user config
// leaks into the flag set.
func noConfig(t *testing.T) {
	t.Helper()
	t.Setenv("LTSVGREP_CFG_FILE", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AppData", t.TempDir())
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "access.ltsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	noConfig(t)

	args = append([]string{"ltsvgrep"}, args...)
	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)

	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}

	err = app.Run(context.Background(), args)
	return out.String(), err
}

func TestGrep(t *testing.T) {
	path := writeInput(t, accessLog)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "match",
			args: []string{"--input", path, "status=200"},
			want: "time=1\tstatus=200\thost=a\tpath=/\t\n" +
				"time=3\tstatus=200\thost=c\tpath=/y\t\n",
		},
		{
			name: "whitelist",
			args: []string{"-i", path, "-w", "time,path", "status=200"},
			want: "time=1\tpath=/\t\ntime=3\tpath=/y\t\n",
		},
		{
			name: "blacklist",
			args: []string{"-i", path, "-b", "host", "status=500"},
			want: "time=2\tstatus=500\tpath=/x\t\n",
		},
		{
			name: "blacklist wins over whitelist",
			args: []string{"-i", path, "-w", "host,time", "-b", "host", "time=3"},
			want: "time=3\t\n",
		},
		{
			name: "no match",
			args: []string{"-i", path, "status=404"},
			want: "",
		},
		{
			name: "case sensitive",
			args: []string{"-i", path, "HOST=a"},
			want: "",
		},
		{
			name: "extra pattern pairs ignored",
			args: []string{"-i", path, "host=b\tstatus=200"},
			want: "time=2\tstatus=500\thost=b\tpath=/x\t\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runApp(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGrepJSON(t *testing.T) {
	path := writeInput(t, accessLog)

	got, err := runApp(t, "-i", path, "-o", "json", "-w", "time,status", "host=b")
	require.NoError(t, err)

	doc := gjson.Parse(got)
	assert.Equal(t, "2", doc.Get("time").String())
	assert.Equal(t, "500", doc.Get("status").String())
	assert.False(t, doc.Get("host").Exists())
}

func TestGrepStrictSkipsMalformed(t *testing.T) {
	path := writeInput(t, "a=1\tb=x=y\na=1\tb=2\n")

	got, err := runApp(t, "-i", path, "a=1")
	require.NoError(t, err)
	assert.Equal(t, "a=1\tb=xy\t\na=1\tb=2\t\n", got)

	got, err = runApp(t, "-i", path, "--strict", "a=1")
	require.NoError(t, err)
	assert.Equal(t, "a=1\tb=2\t\n", got)
}

func TestGrepUsageErrors(t *testing.T) {
	path := writeInput(t, accessLog)

	_, err := runApp(t, "-i", path)
	assert.ErrorIs(t, err, ErrUsage)

	_, err = runApp(t, "-i", path, "a=1", "b=2")
	assert.ErrorIs(t, err, ErrUsage)
}

func TestGrepBadOutputFormat(t *testing.T) {
	path := writeInput(t, accessLog)

	_, err := runApp(t, "-i", path, "-o", "xml", "a=1")
	assert.ErrorContains(t, err, "must be one of")
}

func TestGrepMissingInput(t *testing.T) {
	_, err := runApp(t, "-i", filepath.Join(t.TempDir(), "nope.ltsv"), "a=1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUsage)
	assert.ErrorContains(t, err, "does not exist")
}

func TestGrepConfigFileDefaults(t *testing.T) {
	path := writeInput(t, accessLog)

	cfg := filepath.Join(t.TempDir(), "ltsvgrep.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("output: json\nwhitelist: time\n"), 0o600))
	t.Setenv("LTSVGREP_CFG_FILE", cfg)

	args := []string{"ltsvgrep", "-i", path, "host=c"}
	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)
	assert.Equal(t, cfg, GetMeta(app).Config.Source)

	var out bytes.Buffer
	app.Writer = &out
	require.NoError(t, app.Run(context.Background(), args))
	assert.JSONEq(t, `{"time":"3"}`, out.String())

	// Flags still override the file.
	args = []string{"ltsvgrep", "-i", path, "-o", "ltsv", "-w", "host", "host=c"}
	app, err = InitApp(context.Background(), args)
	require.NoError(t, err)

	out.Reset()
	app.Writer = &out
	require.NoError(t, app.Run(context.Background(), args))
	assert.Equal(t, "host=c\t\n", out.String())
}

func TestOutputValidator(t *testing.T) {
	for _, f := range []string{"ltsv", "json", "yaml"} {
		assert.NoError(t, FlagValidators(f, OutputValidator), f)
	}
	assert.Error(t, FlagValidators("xml", OutputValidator))
	assert.Error(t, FlagValidators("", OutputValidator))
}

func TestNewFlagsSorted(t *testing.T) {
	noConfig(t)

	app, err := InitApp(context.Background(), []string{"ltsvgrep"})
	require.NoError(t, err)

	var names []string
	for _, f := range app.Flags {
		names = append(names, f.Names()[0])
	}
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "line-buffered")
	assert.Contains(t, names, "endpoint")
}

func TestGrepVersionFlag(t *testing.T) {
	got, err := runApp(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", got)
}

func TestFlagTakesValue(t *testing.T) {
	for _, name := range []string{"w", "whitelist", "b", "o", "i", "input", "profile", "region", "endpoint", "cache-hours"} {
		assert.True(t, FlagTakesValue(name), name)
	}
	for _, name := range []string{"c", "color", "strict", "l", "line-buffered", "v", "version", "nope"} {
		assert.False(t, FlagTakesValue(name), name)
	}
}
