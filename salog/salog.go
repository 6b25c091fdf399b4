// Package salog provides a single process-wide zap logger, initialized
// once at startup and fetched by name thereafter. Development vs.
// production mode is a one-variable switch (SALAD_DEVELOPMENT).
package salog

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

const envDevelopment = "SALAD_DEVELOPMENT"

var (
	globalLogger *zap.Logger
	initOnce     sync.Once
)

// DevMode reports whether Init ran in development mode.
var devMode bool

func DevMode() bool { return devMode }

// Init builds the process-wide logger. It must be called once from
// main(), not from an init() function; calling it twice panics. The
// returned func flushes buffered log entries and should be deferred.
func Init() func() error {
	if globalLogger != nil {
		panic("salog.Init called multiple times")
	}

	development := os.Getenv(envDevelopment) == "true"
	devMode = development

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		panic(err.Error())
	}

	initOnce.Do(func() {
		globalLogger = logger
	})
	return globalLogger.Sync
}

// IsInitialized reports whether Init has run.
func IsInitialized() bool { return globalLogger != nil }

// Get returns the global logger, or a no-op logger if Init hasn't run,
// useful in tests that don't care about log output.
func Get() *zap.Logger {
	if globalLogger == nil {
		return zap.NewNop()
	}
	return globalLogger
}

// Scoped returns a child logger tagged with name, the idiom every
// component in this repository uses to identify its log lines.
func Scoped(name string) *zap.Logger {
	return Get().Named(name)
}
