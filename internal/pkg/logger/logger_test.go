package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posstock/internal/pkg/logger"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("info", &buf)

	log.Debug("ignorado", nil)
	log.Info("produto criado", map[string]interface{}{"sku": "COKE-350"})
	log.Error("falha", errors.New("db down"))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)

	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "produto criado", entries[0]["msg"])
	fields, ok := entries[0]["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "COKE-350", fields["sku"])

	assert.Equal(t, "ERROR", entries[1]["level"])
	assert.Equal(t, "db down", entries[1]["error"])
}

func TestLogger_DebugLevelAndUnknownLevel(t *testing.T) {
	var debugBuf bytes.Buffer
	logger.NewWithWriter("DEBUG", &debugBuf).Debug("visível", nil)
	assert.Len(t, decodeLines(t, &debugBuf), 1)

	var defaultBuf bytes.Buffer
	log := logger.NewWithWriter("verbose", &defaultBuf)
	log.Debug("oculto", nil)
	log.Warn("aviso", map[string]interface{}{"delta": -3})
	entries := decodeLines(t, &defaultBuf)
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0]["level"])
}
