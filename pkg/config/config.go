package config

import (
	"os"
	"strconv"
	"time"
)

// Config represents the global configuration for the benchmark pipeline
type Config struct {
	// Wikidata configuration
	Wikidata struct {
		APIURL        string
		EntityDataURL string
		UserAgent     string
		Timeout       time.Duration
		SearchLimit   int
		MaxCandidates int
	}

	// Cache configuration
	Cache struct {
		// Redis configuration
		Redis struct {
			URL      string
			Password string
			DB       int
		}
		TTL     time.Duration
		Enabled bool
	}

	// Data configuration
	Data struct {
		RawDir          string
		IntermediateDir string
		OutputDir       string
		ParaNamesPath   string
		LuaTablePath    string
	}

	// Languages configuration: Cantonese label codes in priority order
	Languages struct {
		Primary   string
		Secondary string
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	config := &Config{}

	// Wikidata configuration
	config.Wikidata.APIURL = getEnv("WIKIDATA_API_URL", "https://www.wikidata.org/w/api.php")
	config.Wikidata.EntityDataURL = getEnv("WIKIDATA_ENTITY_DATA_URL", "https://www.wikidata.org/wiki/Special:EntityData/")
	config.Wikidata.UserAgent = getEnv("WIKIDATA_USER_AGENT", "canto-bench/1.0 (benchmark data curation)")
	config.Wikidata.Timeout = time.Duration(getEnvInt("WIKIDATA_TIMEOUT", 30)) * time.Second
	config.Wikidata.SearchLimit = getEnvInt("WIKIDATA_SEARCH_LIMIT", 10)
	config.Wikidata.MaxCandidates = getEnvInt("WIKIDATA_MAX_CANDIDATES", 20)

	// Cache configuration
	config.Cache.Redis.URL = getEnv("REDIS_URL", "localhost:6379")
	config.Cache.Redis.Password = getEnv("REDIS_PASSWORD", "")
	config.Cache.Redis.DB = getEnvInt("REDIS_DB", 0)
	config.Cache.TTL = time.Duration(getEnvInt("CACHE_TTL_HOURS", 24*7)) * time.Hour
	config.Cache.Enabled = getEnvBool("CACHE_ENABLED", false)

	// Data configuration
	config.Data.RawDir = getEnv("DATA_RAW_DIR", "./data/raw")
	config.Data.IntermediateDir = getEnv("DATA_INTERMEDIATE_DIR", "./data/intermediate")
	config.Data.OutputDir = getEnv("DATA_OUTPUT_DIR", "./data/output")
	config.Data.ParaNamesPath = getEnv("PARANAMES_TSV_PATH", "./data/raw/paranames.tsv")
	config.Data.LuaTablePath = getEnv("LUA_TABLE_PATH", "./data/raw/cgroup_movie.lua")

	// Languages configuration
	config.Languages.Primary = getEnv("CANTONESE_PRIMARY_LANG", "yue")
	config.Languages.Secondary = getEnv("CANTONESE_SECONDARY_LANG", "zh-hk")

	return config
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// Global instance of the configuration
var globalConfig *Config

// Initialize the global configuration
func init() {
	globalConfig = LoadFromEnv()
}

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Reload reloads the configuration from environment variables
func Reload() *Config {
	globalConfig = LoadFromEnv()
	return globalConfig
}
