package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/focustasks/internal/logging"
)

func Test_ParseLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{" warn ", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.WarnLevel},
		{"verbose", log.WarnLevel},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.want, logging.ParseLevel(testCase.in), testCase.in)
	}
}

func Test_ValidLevel(t *testing.T) {
	t.Parallel()

	assert.True(t, logging.ValidLevel("debug"))
	assert.True(t, logging.ValidLevel(""))
	assert.False(t, logging.ValidLevel("loud"))
}

func Test_New_Filters_Below_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New(&buf, logging.Options{Level: "warn"})

	logger.Info("hidden")
	logger.Warn("shown", "key", "focustasks_0163")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "focustasks_0163")
}

func Test_New_JSON_Format_Emits_Parsable_Lines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New(&buf, logging.Options{Level: "debug", Format: "json"})

	logger.Debug("loaded tasks", "count", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "loaded tasks", line["msg"])
}
