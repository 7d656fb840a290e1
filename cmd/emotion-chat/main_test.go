package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MQTT_BROKER_URL", "")
	t.Setenv("LOG_LEVEL", "error")
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSingleMessage(t *testing.T) {
	out, err := runRoot(t, "", "--no-remote", "--seed", "9", "-m", "I love this place")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[ecstatic] "), out)
}

func TestSeedMakesRepliesRepeatable(t *testing.T) {
	first, err := runRoot(t, "", "--no-remote", "--seed", "4", "-m", "I feel sad today")
	require.NoError(t, err)
	second, err := runRoot(t, "", "--no-remote", "--seed", "4", "-m", "I feel sad today")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestREPLSession(t *testing.T) {
	out, err := runRoot(t, "hello there\n\nI am scared\nexit\n", "--no-remote")
	require.NoError(t, err)
	assert.Contains(t, out, "type 'exit' to quit")
	assert.Contains(t, out, "[scared] ")
}

func TestStartupErrorFails(t *testing.T) {
	_, err := runRoot(t, "", "--no-remote", "--tables", filepath.Join(t.TempDir(), "missing.yaml"), "-m", "hi")
	assert.Error(t, err)
}

func TestWatchRequiresBroker(t *testing.T) {
	_, err := runRoot(t, "", "watch")
	assert.ErrorContains(t, err, "MQTT_BROKER_URL")
}
