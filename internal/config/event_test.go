package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikolay-ai/hackevent/internal/config"
	"github.com/nikolay-ai/hackevent/internal/dateutil"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadEvent_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	ev, err := config.LoadEvent(filepath.Join(t.TempDir(), "event.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultEvent(), ev)
	assert.Equal(t, 7, ev.DaysAhead)
	assert.Equal(t, dateutil.LongFormat, ev.DateFormat)
}

func TestLoadEvent_OverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "event.yaml", "title: Spring Hack\ndays_ahead: 14\ndate_format: iso\n")
	ev, err := config.LoadEvent(path)
	require.NoError(t, err)
	assert.Equal(t, "Spring Hack", ev.Title)
	assert.Equal(t, 14, ev.DaysAhead)
	assert.Equal(t, "iso", ev.DateFormat)
	assert.Equal(t, config.DefaultEvent().Location, ev.Location)
}

func TestLoadEvent_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "titel: typo\n"},
		{"negative days", "days_ahead: -1\n"},
		{"bad date format", "date_format: '[unclosed'\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.LoadEvent(writeFile(t, "event.yaml", tc.body))
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
		})
	}
}

func TestLoadEvent_EmptyPath(t *testing.T) {
	t.Parallel()

	ev, err := config.LoadEvent("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultEvent(), ev)
}
