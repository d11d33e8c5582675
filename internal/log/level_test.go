package log

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, ok := ParseLevel("debug")
	require.True(t, ok)
	require.Equal(t, Debug, level)

	level, ok = ParseLevel("WARN")
	require.True(t, ok)
	require.Equal(t, Warn, level)

	level, ok = ParseLevel("verbose")
	require.False(t, ok)
	require.Equal(t, Error, level)
}

func TestLevel_Enables(t *testing.T) {
	require.True(t, Debug.Enables(Error))
	require.True(t, Info.Enables(Warn))
	require.True(t, Error.Enables(Error))
	require.False(t, Error.Enables(Warn))
	require.False(t, Info.Enables(Debug))
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Debug("dropped: %d", 1)
	logger.Error("dropped: %d", 2)
	require.Equal(t, Error, logger.Level())
}
