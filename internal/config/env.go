package config

import (
	"os"
	"strconv"
)

// EnvPrefix is prepended to every environment variable read by ApplyEnv.
const EnvPrefix = "BISECT_"

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// ApplyEnv overrides fields from the environment unless the matching
// command line flag was set. Priority is flags, then environment, then
// config file and defaults.
//
// Supported variables:
//   - BISECT_TOLERANCE (flag tol)
//   - BISECT_MAX_ITERATIONS (flag max-iter)
//   - BISECT_PRECISION (flag prec)
//   - BISECT_LOG_LEVEL (flag log-level)
//   - BISECT_DATA_DIR (flag data-dir)
//   - BISECT_THEME (flag theme)
func ApplyEnv(cfg *Config, isSet func(flag string) bool) {
	if isSet == nil {
		isSet = func(string) bool { return false }
	}
	if !isSet("tol") {
		cfg.Tolerance = getEnvFloat("TOLERANCE", cfg.Tolerance)
	}
	if !isSet("max-iter") {
		cfg.MaxIterations = getEnvInt("MAX_ITERATIONS", cfg.MaxIterations)
	}
	if !isSet("prec") {
		if p := getEnvInt("PRECISION", int(cfg.Precision)); p >= 0 {
			cfg.Precision = uint(p)
		}
	}
	if !isSet("log-level") {
		cfg.LogLevel = getEnvString("LOG_LEVEL", cfg.LogLevel)
	}
	if !isSet("data-dir") {
		cfg.DataDir = getEnvString("DATA_DIR", cfg.DataDir)
	}
	if !isSet("theme") {
		cfg.Theme = getEnvString("THEME", cfg.Theme)
	}
}
