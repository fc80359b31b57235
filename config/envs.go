package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP                 string  // Host IP for the server
	RESTPort               int     // Port for the REST API
	GinMode                string  // Mode for the Gin framework (e.g., release, debug, test)
	DBHost                 string  // Hostname or IP address for the database
	DBPort                 int     // Port number for the database
	DBUser                 string  // Username for the database
	DBPassword             string  // Password for the database
	DBName                 string  // Name of the database
	RedisAddr              string  // Redis address for step locks; empty means in-process locks
	RedisPassword          string  // Redis password
	JWTSecret              string  // Secret key for JWT signing
	JWTIssuer              string  // Issuer claim for JWTs
	DriverTokenTTLMinutes  int     // Lifetime of a session driver token
	MazeMaxDimension       int     // Largest accepted width or height
	MazeDefaultDeadEndProb float64 // Dead-end removal probability when a request omits it
	MazeDefaultLoopProb    float64 // Loop-opening probability when a request omits it
	GridCacheSize          int     // Number of generated grids kept in the LRU cache
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:                 mustGetEnv("HOST_IP"),
		RESTPort:               mustGetEnvAsInt("REST_PORT"),
		GinMode:                getEnvWithDefault("GIN_MODE", "release"),
		DBHost:                 mustGetEnv("DB_HOST"),
		DBPort:                 mustGetEnvAsInt("DB_PORT"),
		DBUser:                 mustGetEnv("DB_USER"),
		DBPassword:             mustGetEnv("DB_PASS"),
		DBName:                 mustGetEnv("DB_NAME"),
		RedisAddr:              getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:          getEnvWithDefault("REDIS_PASSWORD", ""),
		JWTSecret:              mustGetEnv("JWT_SECRET"),
		JWTIssuer:              mustGetEnv("JWT_ISSUER"),
		DriverTokenTTLMinutes:  getEnvAsIntWithDefault("DRIVER_TOKEN_TTL_MINUTES", 60),
		MazeMaxDimension:       getEnvAsIntWithDefault("MAZE_MAX_DIMENSION", 256),
		MazeDefaultDeadEndProb: getEnvAsFloatWithDefault("MAZE_DEFAULT_DEAD_END_PROB", 0.4),
		MazeDefaultLoopProb:    getEnvAsFloatWithDefault("MAZE_DEFAULT_LOOP_PROB", 0.7),
		GridCacheSize:          getEnvAsIntWithDefault("GRID_CACHE_SIZE", 128),
	}
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault parses an integer variable, falling back to defaultValue when unset.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsFloatWithDefault parses a float variable, falling back to defaultValue when unset.
func getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a number: %v", key, err)
	}
	return value
}
