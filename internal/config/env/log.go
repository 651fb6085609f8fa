package env

import (
	"os"
	"strconv"
	"wheel_backend/internal/config"
)

const (
	logLevelEnvName = "LOG_LEVEL"
	logDirEnvName   = "LOG_DIR"
	logFileEnvName  = "LOG_FILE"
	logAppEnvName   = "LOG_APP"
)

type logConfig struct {
	level string
	dir   string
	file  bool
	app   string
}

// NewLogConfig все значения необязательные
func NewLogConfig() config.LogConfig {
	cfg := &logConfig{
		level: os.Getenv(logLevelEnvName),
		dir:   os.Getenv(logDirEnvName),
		app:   os.Getenv(logAppEnvName),
	}
	if cfg.level == "" {
		cfg.level = "info"
	}
	if cfg.app == "" {
		cfg.app = "wheel"
	}
	cfg.file, _ = strconv.ParseBool(os.Getenv(logFileEnvName))
	return cfg
}

func (cfg *logConfig) Level() string {
	return cfg.level
}

func (cfg *logConfig) Dir() string {
	return cfg.dir
}

func (cfg *logConfig) File() bool {
	return cfg.file
}

func (cfg *logConfig) App() string {
	return cfg.app
}
