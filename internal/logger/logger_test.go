package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_JSONLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		Initialize("info", "text")
	})

	Initialize("warn", "json")
	Info("dropped")
	Warn("kept", "stand_id", "s1")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "s1", entry["stand_id"])
}

func TestExternalServiceResult_ErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		Initialize("info", "text")
	})

	Initialize("info", "text")
	ExternalServiceCall("gateway", "ListStands")
	ExternalServiceResult("gateway", "ListStands", errors.New("boom"))

	out := buf.String()
	assert.NotContains(t, out, "→ External service call")
	assert.Contains(t, out, "External service call failed")
	assert.Contains(t, out, "error=boom")
}

func TestWithView(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		Initialize("info", "text")
	})

	Initialize("info", "text")
	WithView("dashboard").Info("mounted")
	assert.Contains(t, buf.String(), "view=dashboard")
}

func TestContextVariants(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		Initialize("info", "text")
	})

	Initialize("info", "json")
	ctx := context.Background()
	InfoContext(ctx, "Stand delete requested", "stand_id", "zone/7")
	ErrorContext(ctx, "Failed to list status checks", "error", "boom")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var info, failure map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &info))
	require.NoError(t, json.Unmarshal(lines[1], &failure))
	assert.Equal(t, "INFO", info["level"])
	assert.Equal(t, "zone/7", info["stand_id"])
	assert.Equal(t, "ERROR", failure["level"])
	assert.Equal(t, "boom", failure["error"])
}
