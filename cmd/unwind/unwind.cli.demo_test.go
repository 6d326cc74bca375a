package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDemoArgs(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := run(append([]string{CmdNameDemo}, args...), strings.NewReader(""), stdout, stderr)
	return exitCode, stdout.String(), stderr.String()
}

func TestDemo_Default(t *testing.T) {
	exitCode, stdout, stderr := runDemoArgs(t)

	assert.Equal(t, 101, exitCode)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 13)
	for i := 0; i < 9; i++ {
		assert.Equal(t, "foo: call "+strconv.Itoa(i+1)+" returned", lines[i])
	}
	assert.Equal(t, "bar: call 10 raising message = bar panicked unexpectedly on call 10!", lines[9])
	assert.Equal(t, "foo: call 10 caught message = bar panicked unexpectedly on call 10!", lines[10])
	assert.Equal(t, "main: caught message = bar panicked unexpectedly on call 10!", lines[11])
	assert.Equal(t, "exit status 101", lines[12])

	assert.NotContains(t, stdout, DemoMsgMainDone)
	assert.Equal(t, "(root) panic detected: message = bar panicked unexpectedly on call 10!\n", stderr)
}

func TestDemo_NoRaise(t *testing.T) {
	exitCode, stdout, stderr := runDemoArgs(t, "-n", "3")

	assert.Equal(t, ExitCodeSuccess, exitCode)
	assert.Contains(t, stdout, "foo: call 3 returned")
	assert.Contains(t, stdout, DemoMsgMainDone)
	assert.NotContains(t, stdout, "caught")
	assert.Empty(t, stderr)
}

func TestDemo_StatusPayload(t *testing.T) {
	exitCode, stdout, stderr := runDemoArgs(t, "-at", "2", "-payload", PayloadKindStatus, "-status", "7")

	assert.Equal(t, 7, exitCode)
	assert.Contains(t, stdout, "foo: call 1 returned")
	assert.Contains(t, stdout, "foo: call 2 caught status = 7")
	assert.NotContains(t, stdout, "foo: call 3")
	assert.Equal(t, "(root) panic detected: status = 7\n", stderr)
}

func TestDemo_OpaquePayload(t *testing.T) {
	exitCode, stdout, stderr := runDemoArgs(t, "-at", "1", "-payload", PayloadKindOpaque)

	assert.Equal(t, 101, exitCode)
	assert.Contains(t, stdout, "main: caught payload = <unknown>")
	assert.Equal(t, "(root) panic detected: payload = <unknown>\n", stderr)
}

func TestDemo_HandlerRaiseAborts(t *testing.T) {
	exitCode, stdout, stderr := runDemoArgs(t, "-at", "1", "-handler-raise")

	assert.Equal(t, 134, exitCode)
	assert.Contains(t, stdout, "foo: call 1 caught")
	assert.NotContains(t, stdout, "main: caught")
	assert.NotContains(t, stdout, "exit status")
	assert.True(t, strings.HasSuffix(stdout, "foo: call 1 caught message = bar panicked unexpectedly on call 1!\n"))
	assert.Contains(t, stderr, "panicked while panicking, ABORT!")
	assert.NotContains(t, stderr, "(root) panic detected")
}

func TestDemo_JSONDiagnostics(t *testing.T) {
	exitCode, _, stderr := runDemoArgs(t, "-at", "1", "-F", OutputFormatJSON)
	require.Equal(t, 101, exitCode)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stderr), &got))
	assert.Equal(t, "root", got["origin"])
	assert.Equal(t, float64(2), got["handlers"])
}

func TestDemo_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unwind.yaml")
	require.NoError(t, os.WriteFile(path, []byte("exit_codes:\n  message: 42\n"), 0o644))

	exitCode, _, _ := runDemoArgs(t, "-c", path, "-at", "1")

	assert.Equal(t, 42, exitCode)
}

func TestDemo_ConfigFileMissing(t *testing.T) {
	exitCode, _, stderr := runDemoArgs(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, ExitCodeError, exitCode)
	assert.Contains(t, stderr, ErrMsgSetupFailed)
}

func TestDemo_Verbose(t *testing.T) {
	exitCode, _, stderr := runDemoArgs(t, "-at", "1", "-v")

	assert.Equal(t, 101, exitCode)
	assert.Contains(t, stderr, "DEBUG")
	assert.Contains(t, stderr, "(root) panic detected")
}

func TestDemo_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"negative iterations", []string{"-n", "-1"}, ErrMsgInvalidIterations},
		{"zero at", []string{"-at", "0"}, ErrMsgInvalidAt},
		{"bad payload", []string{"-payload", "float"}, ErrMsgInvalidPayload},
		{"bad format", []string{"-F", "xml"}, ErrMsgInvalidFormat},
		{"unknown flag", []string{"-nope"}, ErrMsgInvalidFlags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exitCode, _, stderr := runDemoArgs(t, tt.args...)

			assert.Equal(t, ExitCodeUsageError, exitCode)
			assert.Contains(t, stderr, tt.want)
		})
	}
}
