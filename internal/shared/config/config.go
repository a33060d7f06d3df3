package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	AllowedOrigins []string

	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	RateLimit   RateLimitConfig
	Kafka       KafkaConfig
	Reservation ReservationConfig
	Monitor     MonitorConfig
	Upload      UploadConfig

	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	SessionTTL  time.Duration
	DraftTTL    time.Duration
	DraftLock   time.Duration
	CacheTTL    time.Duration
	SnapshotTTL time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	JWTExpiresIn     time.Duration
	RefreshExpiresIn time.Duration
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled             bool          `json:"enabled"`
	WindowDuration      time.Duration `json:"window_duration"`
	DefaultRequests     int           `json:"default_requests"`
	PublicRequests      int           `json:"public_requests"`
	AuthRequests        int           `json:"auth_requests"`
	ReservationRequests int           `json:"reservation_requests"`
	BusinessRequests    int           `json:"business_requests"`
	DetectionRequests   int           `json:"detection_requests"`
	WhitelistedIPs      []string      `json:"whitelisted_ips"`
}

// KafkaConfig holds the alert pipeline configuration. When Enabled is false
// events are delivered straight to the alert inbox.
type KafkaConfig struct {
	Enabled       bool
	Brokers       []string
	Topic         string
	ConsumerGroup string
	MaxRetries    int
}

// ReservationConfig holds draft and submission settings
type ReservationConfig struct {
	SubmitLatency    time.Duration
	SeatRows         int
	SeatCols         int
	OccupiedRatio    float64
	AutoConfirmAfter time.Duration
	ReferencePrefix  string
}

// MonitorConfig holds the background sweep settings
type MonitorConfig struct {
	Enabled           bool
	CameraInterval    time.Duration
	LifecycleInterval time.Duration
	DetectorAvailable float64
	ConnectSuccess    float64
	MinConfidence     float64
}

// UploadConfig holds frame upload configuration
type UploadConfig struct {
	MaxSize int64
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB
		AllowedOrigins: getStringSliceEnv("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "zari_db"),
			User:     getEnv("DB_USER", "zari_user"),
			Password: getEnv("DB_PASSWORD", "zari_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),

			SessionTTL:  getDurationEnv("REDIS_SESSION_TTL", 24*time.Hour),
			DraftTTL:    getDurationEnv("REDIS_DRAFT_TTL", 2*time.Hour),
			DraftLock:   getDurationEnv("REDIS_DRAFT_LOCK_TTL", 30*time.Second),
			CacheTTL:    getDurationEnv("REDIS_CACHE_TTL", 10*time.Minute),
			SnapshotTTL: getDurationEnv("REDIS_SNAPSHOT_TTL", 15*time.Minute),
		},

		JWT: JWTConfig{
			Secret:           getEnv("JWT_SECRET", "change-me-zari-secret"),
			JWTExpiresIn:     getDurationEnvSeconds("JWT_EXPIRES_IN", 15*time.Minute),
			RefreshExpiresIn: getDurationEnvSeconds("JWT_REFRESH_EXPIRES_IN", 24*time.Hour),
		},

		RateLimit: RateLimitConfig{
			Enabled:             getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:      getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests:     getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:      getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 100),
			AuthRequests:        getIntEnv("RATE_LIMIT_AUTH_REQUESTS", 10),
			ReservationRequests: getIntEnv("RATE_LIMIT_RESERVATION_REQUESTS", 60),
			BusinessRequests:    getIntEnv("RATE_LIMIT_BUSINESS_REQUESTS", 200),
			DetectionRequests:   getIntEnv("RATE_LIMIT_DETECTION_REQUESTS", 30),
			WhitelistedIPs:      getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		Kafka: KafkaConfig{
			Enabled:       getBoolEnv("KAFKA_ENABLED", false),
			Brokers:       getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:         getEnv("KAFKA_ALERT_TOPIC", "zari.alerts"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "zari-alert-inbox"),
			MaxRetries:    getIntEnv("KAFKA_MAX_RETRIES", 3),
		},

		Reservation: ReservationConfig{
			SubmitLatency:    getDurationEnv("RESERVATION_SUBMIT_LATENCY", 1500*time.Millisecond),
			SeatRows:         getIntEnv("SEAT_ROWS", 4),
			SeatCols:         getIntEnv("SEAT_COLS", 5),
			OccupiedRatio:    getFloatEnv("SEAT_OCCUPIED_RATIO", 0.3),
			AutoConfirmAfter: getDurationEnv("RESERVATION_AUTO_CONFIRM_AFTER", 10*time.Minute),
			ReferencePrefix:  getEnv("RESERVATION_REFERENCE_PREFIX", "RSV"),
		},

		Monitor: MonitorConfig{
			Enabled:           getBoolEnv("MONITOR_ENABLED", true),
			CameraInterval:    getDurationEnv("MONITOR_CAMERA_INTERVAL", 30*time.Second),
			LifecycleInterval: getDurationEnv("MONITOR_LIFECYCLE_INTERVAL", time.Minute),
			DetectorAvailable: getFloatEnv("DETECTOR_AVAILABLE_RATIO", 0.6),
			ConnectSuccess:    getFloatEnv("CAMERA_CONNECT_SUCCESS_RATIO", 0.7),
			MinConfidence:     getFloatEnv("DETECTION_MIN_CONFIDENCE", 0.5),
		},

		Upload: UploadConfig{
			MaxSize: getInt64Env("MAX_UPLOAD_SIZE", 10*1024*1024), // 10 MB
		},

		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return fallback
}

// getFloatEnv reads a ratio; values outside [0,1] fall back
func getFloatEnv(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 && f <= 1 {
			return f
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getDurationEnvSeconds reads an integer number of seconds
func getDurationEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		var result []string
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in release mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the listen address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path, e.g. /api/v1
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
