package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/netip"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// DefaultEnvFile is loaded when present. A missing file is not an error.
const DefaultEnvFile = ".env"

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	StoreBackend string // "memory" | "sqlite" | "redis"
	SQLitePath   string // database file for the sqlite backend
	KeyPrefix    string // optional namespace for the four panel keys
	Clipboard    string // "system" | "memory"

	BackupFile     string        // optional, empty = periodic backup disabled
	BackupInterval time.Duration // interval between two backups (default: 1h)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins  []string // optional, browser origins allowed to call the API ("*" = any)

	RateLimitBurst  int // requests allowed in a burst per client IP
	RateLimitPerMin int // tokens refilled per client IP per minute
}

// Load reads the configuration from the environment, after loading
// envFile into it. Variables already set in the environment win over
// the file. Invalid required settings panic.
func Load(envFile string) *Config {
	loadEnvFile(envFile)

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("DEVKIT_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("DEVKIT_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("DEVKIT_LOG_LEVEL", "info"),
		PrettyLog: mustBool("DEVKIT_PRETTY_LOG", true),

		// Storage
		StoreBackend: strings.ToLower(getenv("DEVKIT_STORE", StoreSQLite)),
		SQLitePath:   getenv("DEVKIT_SQLITE_PATH", defaultSQLitePath()),
		KeyPrefix:    getenv("DEVKIT_KEY_PREFIX", ""),
		Clipboard:    getenv("DEVKIT_CLIPBOARD", "system"),

		// Backup
		BackupFile:     getenv("DEVKIT_BACKUP_FILE", ""), // Optional, empty = backup disabled
		BackupInterval: mustDuration("DEVKIT_BACKUP_INTERVAL", time.Hour),

		// Redis settings
		RedisUser:             getenv("DEVKIT_REDIS_USERNAME", ""),
		RedisPasswordRequired: mustBool("DEVKIT_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("DEVKIT_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("DEVKIT_REDIS_DB", 0),
		RedisDT:               mustDuration("DEVKIT_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("DEVKIT_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("DEVKIT_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("DEVKIT_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("DEVKIT_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("DEVKIT_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("DEVKIT_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("DEVKIT_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("DEVKIT_REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("DEVKIT_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("DEVKIT_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("DEVKIT_TRUST_PROXY", false),
		CORSOrigins:  splitAndTrim(getenv("DEVKIT_CORS_ORIGINS", "")),

		RateLimitBurst:  getenvInt("DEVKIT_RATE_LIMIT_BURST", 60),
		RateLimitPerMin: getenvInt("DEVKIT_RATE_LIMIT_PER_MIN", 120),
	}

	switch cfg.StoreBackend {
	case StoreMemory, StoreSQLite:
	case StoreRedis:
		cfg.RedisAddr = requireEnv("DEVKIT_REDIS_ADDR")
		// Validate Redis password configuration
		if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
			panic("❌ FATAL: DEVKIT_REDIS_PASSWORD is required when DEVKIT_REDIS_PASSWORD_REQUIRED=true")
		}
	default:
		panic(fmt.Sprintf("❌ FATAL: Invalid DEVKIT_STORE %q (want memory, sqlite or redis)", cfg.StoreBackend))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func loadEnvFile(path string) {
	if path == "" {
		return
	}
	err := godotenv.Load(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && path == DefaultEnvFile:
	default:
		panic(fmt.Sprintf("❌ FATAL: Cannot load env file %s: %v", path, err))
	}
}

func defaultSQLitePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "devkit.db"
	}
	return filepath.Join(dir, "devkit", "devkit.db")
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		_, errPrefix := netip.ParsePrefix(ip)
		_, errAddr := netip.ParseAddr(ip)
		if errPrefix != nil && errAddr != nil {
			panic(fmt.Sprintf("❌ FATAL: DEVKIT_ALLOWED_CIDRS has an invalid entry %q", ip))
		}
		ips = append(ips, ip)
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
