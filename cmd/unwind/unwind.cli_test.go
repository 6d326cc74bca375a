package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== run() dispatch tests ====================

func TestRun_NoArgs_ShowsHelp(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exitCode := run(nil, strings.NewReader(""), stdout, stderr)

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout.String(), CLIName)
	assert.Contains(t, stdout.String(), CmdNameDemo)
}

func TestRun_HelpCommand(t *testing.T) {
	stdout := &bytes.Buffer{}

	exitCode := run([]string{CmdNameHelp}, strings.NewReader(""), stdout, &bytes.Buffer{})

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout.String(), CLIName)
}

func TestRun_UnknownCommand(t *testing.T) {
	stdout := &bytes.Buffer{}

	exitCode := run([]string{"unknown"}, strings.NewReader(""), stdout, &bytes.Buffer{})

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stdout.String(), ErrMsgUnknownCommand)
}

// ==================== help tests ====================

func TestHelp_Subcommands(t *testing.T) {
	tests := []struct {
		cmd  string
		want string
	}{
		{CmdNameDemo, HelpDemoUsage},
		{CmdNameVersion, HelpVersionUsage},
		{CmdNameHelp, HelpHelpUsage},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			exitCode := runHelp([]string{tt.cmd}, stdout)

			assert.Equal(t, ExitCodeSuccess, exitCode)
			assert.Equal(t, tt.want+FmtNewline, stdout.String())
		})
	}
}

// ==================== version tests ====================

func TestVersion_Text(t *testing.T) {
	stdout := &bytes.Buffer{}

	exitCode := run([]string{CmdNameVersion}, strings.NewReader(""), stdout, &bytes.Buffer{})

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout.String(), "go-unwind version")
	assert.Contains(t, stdout.String(), "Go: ")
}

func TestVersion_JSON(t *testing.T) {
	stdout := &bytes.Buffer{}

	exitCode := run([]string{CmdNameVersion, "-F", OutputFormatJSON}, strings.NewReader(""), stdout, &bytes.Buffer{})
	require.Equal(t, ExitCodeSuccess, exitCode)

	var out map[string]string
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Contains(t, out, "version")
	assert.Contains(t, out, "go_version")
}

func TestVersion_InvalidFormat(t *testing.T) {
	stderr := &bytes.Buffer{}

	exitCode := run([]string{CmdNameVersion, "--format", "xml"}, strings.NewReader(""), &bytes.Buffer{}, stderr)

	assert.Equal(t, ExitCodeUsageError, exitCode)
	assert.Contains(t, stderr.String(), ErrMsgInvalidFormat)
}

func TestLoadVersionInfo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "versions.yaml")
	content := `project:
  name: go-unwind
  version: 1.2.3
git:
  commit: abc123
  branch: main
build:
  time: "2024-01-02T03:04:05Z"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	info := loadVersionInfo([]string{filepath.Join(dir, "missing.yaml"), path})

	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc123", info.Commit)
	assert.Equal(t, "main", info.Branch)
	assert.Equal(t, "2024-01-02T03:04:05Z", info.BuildTime)
	assert.NotEmpty(t, info.GoVersion)
}

func TestLoadVersionInfo_NoFile(t *testing.T) {
	info := loadVersionInfo([]string{filepath.Join(t.TempDir(), "missing.yaml")})

	assert.Equal(t, VersionUnknown, info.Version)
	assert.Equal(t, VersionUnknown, info.Commit)
}
