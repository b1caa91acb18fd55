package docpack

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config contains all configuration options for the docpack library
type Config struct {
	// CacheMaxSize is the maximum number of package sources to cache. 0 disables caching.
	CacheMaxSize int
	// CacheTTL is the time-to-live for cached package sources. 0 means no expiration.
	CacheTTL time.Duration
	// LogLevel controls the verbosity of logging (debug, info, warn, error)
	LogLevel string
	// StrictIntegrity enables a full graph integrity check after every
	// conversion; violations surface as errors instead of being assumed away.
	StrictIntegrity bool
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	// Initialize global config from environment on first use
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		CacheMaxSize:    100,
		CacheTTL:        0,
		LogLevel:        "info",
		StrictIntegrity: false,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// DOCPACK_CACHE_MAX_SIZE
	if val := os.Getenv("DOCPACK_CACHE_MAX_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			config.CacheMaxSize = size
		}
	}

	// DOCPACK_CACHE_TTL
	if val := os.Getenv("DOCPACK_CACHE_TTL"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			config.CacheTTL = duration
		}
	}

	// DOCPACK_LOG_LEVEL
	if val := os.Getenv("DOCPACK_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	// DOCPACK_STRICT_INTEGRITY
	if val := os.Getenv("DOCPACK_STRICT_INTEGRITY"); val != "" {
		config.StrictIntegrity = parseBool(val)
	}

	return config
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()
	if globalConfig == nil {
		return DefaultConfig()
	}
	// Return a copy so callers cannot mutate the global state
	config := *globalConfig
	return &config
}

// SetGlobalConfig replaces the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	defer globalConfigMutex.Unlock()
	if config == nil {
		globalConfig = DefaultConfig()
		return
	}
	c := *config
	globalConfig = &c
}

func parseBool(val string) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}
