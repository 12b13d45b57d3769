package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MGTheTrain/shelf-export/internal/pkg/config"
	"github.com/MGTheTrain/shelf-export/internal/pkg/logger"
)

// SetupTestLogger returns a console logger tagged with the running test's name.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	log, err := logger.New(&config.LoggerSettings{
		LogLevel: config.LogLevelWarning,
		LogType:  config.LogTypeConsole,
		Service:  "test",
	})
	require.NoError(t, err)

	return log.With("test", t.Name())
}
