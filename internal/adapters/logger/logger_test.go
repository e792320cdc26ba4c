package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/louissosthenes9/campus-stay-api/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPoster struct {
	tags    []string
	records []map[string]interface{}
	closed  bool
}

func (p *recordingPoster) Post(tag string, message interface{}) error {
	p.tags = append(p.tags, tag)
	p.records = append(p.records, message.(map[string]interface{}))
	return errors.New("fluent bit is down")
}

func (p *recordingPoster) Close() error {
	p.closed = true
	return nil
}

func TestSlogAdapter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, IsJSON: true, Level: slog.LevelDebug})

	logger.WithFields(port.Fields{"use_case": "GetListing"}).
		Error("Repository returned an error", errors.New("boom"), port.Fields{"listing_id": "42"})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ERROR", line["level"])
	assert.Equal(t, "Repository returned an error", line["msg"])
	assert.Equal(t, "GetListing", line["use_case"])
	assert.Equal(t, "42", line["listing_id"])
	assert.Equal(t, "boom", line["error"])
}

func TestSlogAdapter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn})

	logger.Info("hidden", nil)
	logger.Debug("hidden", nil)
	logger.Warn("shown", port.Fields{"b": 2, "a": 1})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Less(t, strings.Index(out, "a=1"), strings.Index(out, "b=2"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestFluentLoggerAdapter(t *testing.T) {
	poster := &recordingPoster{}
	logger, err := NewFluentLoggerAdapter(poster, slog.LevelInfo)
	require.NoError(t, err)

	scoped := logger.WithFields(port.Fields{"trace_id": "abc"})
	scoped.Debug("skipped", nil)
	scoped.Info("Use case started", port.Fields{"use_case": "SearchListings"})
	scoped.Error("failed", errors.New("db down"), nil)

	require.Equal(t, []string{"info", "error"}, poster.tags)
	assert.Equal(t, "abc", poster.records[0]["trace_id"])
	assert.Equal(t, "SearchListings", poster.records[0]["use_case"])
	assert.Equal(t, "Use case started", poster.records[0]["message"])
	assert.Equal(t, "db down", poster.records[1]["error"])
	assert.NotContains(t, poster.records[1], "use_case")

	require.NoError(t, logger.Close())
	assert.True(t, poster.closed)

	_, err = NewFluentLoggerAdapter(nil, nil)
	assert.Error(t, err)
}

func TestMultiLoggerAdapter(t *testing.T) {
	first, second := &recordingPoster{}, &recordingPoster{}
	a, _ := NewFluentLoggerAdapter(first, slog.LevelDebug)
	b, _ := NewFluentLoggerAdapter(second, slog.LevelWarn)

	multi, err := NewMultiLoggerAdapter(a, b)
	require.NoError(t, err)

	scoped := multi.WithFields(port.Fields{"request_id": "r1"})
	scoped.Info("info", nil)
	scoped.Warn("warn", nil)

	assert.Equal(t, []string{"info", "warn"}, first.tags)
	assert.Equal(t, []string{"warn"}, second.tags)
	assert.Equal(t, "r1", second.records[0]["request_id"])

	_, err = NewMultiLoggerAdapter()
	assert.Error(t, err)
}
