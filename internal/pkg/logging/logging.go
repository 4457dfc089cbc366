package logging

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New builds the process logger. Dev-like environments get debug level and
// caller reporting; everything else stays at info.
func New(appEnv string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "fileshare",
	})

	switch strings.ToLower(appEnv) {
	case "dev", "development", "local", "test":
		logger.SetLevel(log.DebugLevel)
		logger.SetReportCaller(true)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	return logger
}
