package cli

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/protobuild/protoslice/internal/config"
	"github.com/protobuild/protoslice/internal/engine"
)

// newEngine builds the engine with a logger honoring the --verbose flag.
func newEngine() *engine.Engine {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "protoslice",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return engine.New(logger)
}

// manifestPath resolves the manifest location from the --manifest flag, the
// environment, or the default.
func manifestPath() string {
	return config.ManifestPath(manifestFlag)
}
