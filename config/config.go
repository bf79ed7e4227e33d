package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server settings
	ServerPort   string        `json:"server_port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
	Debug        bool          `json:"debug"`

	// Application paths
	LogDir    string `json:"log_dir"`
	TempDir   string `json:"temp_dir"`
	StaticDir string `json:"static_dir"`

	// Middleware settings
	Middleware MiddlewareConfig `json:"middleware"`

	// CORS Configuration
	CORS CORSConfig `json:"cors"`

	// Rate Limiting
	RateLimit RateLimitConfig `json:"rate_limit"`

	// OpenAI clients
	OpenAI OpenAIConfig `json:"openai"`

	// Audio download
	Download DownloadConfig `json:"download"`

	// Application version
	Version string `json:"version"`

	// Request and shutdown timeouts
	RequestTimeout  time.Duration `json:"request_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

type MiddlewareConfig struct {
	EnableRecover   bool `json:"enable_recover"`
	EnableRequestID bool `json:"enable_request_id"`
	EnableLogger    bool `json:"enable_logger"`
	EnableCORS      bool `json:"enable_cors"`
	EnableRateLimit bool `json:"enable_rate_limit"`
	EnableCompress  bool `json:"enable_compress"`
	EnableETag      bool `json:"enable_etag"`
}

type CORSConfig struct {
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	ExposedHeaders   []string `json:"exposed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	MaxAge           int      `json:"max_age"`
}

type RateLimitConfig struct {
	Enabled           bool `json:"enabled"`
	RequestsPerMinute int  `json:"requests_per_minute"`
}

// OpenAIConfig holds the credential and model settings for the hosted
// transcription and summarization clients. The key is passed into the
// clients explicitly; nothing writes it back into the process environment.
type OpenAIConfig struct {
	APIKey              string `json:"-"`
	WhisperModel        string `json:"whisper_model"`
	ChatModel           string `json:"chat_model"`
	DefaultSummaryWords int    `json:"default_summary_words"`
	MinSummaryWords     int    `json:"min_summary_words"`
	MaxSummaryWords     int    `json:"max_summary_words"`
	SummaryWordsStep    int    `json:"summary_words_step"`
	MaxTranscriptChars  int    `json:"max_transcript_chars"`
}

// HasAPIKey reports whether a credential was configured via the environment
// or a deployment secret store. When false, the UI asks for one per session.
func (c OpenAIConfig) HasAPIKey() bool {
	return c.APIKey != ""
}

type DownloadConfig struct {
	Format           string        `json:"format"`
	UserAgent        string        `json:"user_agent"`
	SleepInterval    time.Duration `json:"sleep_interval"`
	MaxSleepInterval time.Duration `json:"max_sleep_interval"`
	Timeout          time.Duration `json:"timeout"`
	PerMinute        int           `json:"per_minute"`
}

func defaultDevMiddleware() MiddlewareConfig {
	return MiddlewareConfig{
		EnableRecover:   true,
		EnableRequestID: true,
		EnableLogger:    true,
		EnableCORS:      true,
		EnableRateLimit: false, // Disabled for testing
		EnableCompress:  false, // Not needed for development
		EnableETag:      false, // Not needed for development
	}
}

func defaultProdMiddleware() MiddlewareConfig {
	return MiddlewareConfig{
		EnableRecover:   true,
		EnableRequestID: true,
		EnableLogger:    true,
		EnableCORS:      true,
		EnableRateLimit: true,
		EnableCompress:  true,
		EnableETag:      true,
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Server settings
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:  getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		Debug:        getEnvAsBool("DEBUG", false),

		// Application paths
		LogDir:    getEnv("LOG_DIR", "./logs"),
		TempDir:   getEnv("TEMP_DIR", os.TempDir()),
		StaticDir: getEnv("STATIC_DIR", "./static"),

		// Application version
		Version: getEnv("VERSION", "1.0.0"),

		// Request and shutdown timeouts
		RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Minute),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),

		// CORS Configuration
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsStringSlice(
				"CORS_ALLOWED_METHODS",
				[]string{"GET", "POST", "OPTIONS"},
			),
			AllowedHeaders:   getEnvAsStringSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type"}),
			ExposedHeaders:   getEnvAsStringSlice("CORS_EXPOSED_HEADERS", []string{}),
			AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getEnvAsInt("CORS_MAX_AGE", 86400),
		},

		// Rate Limiting
		RateLimit: RateLimitConfig{
			Enabled:           getEnvAsBool("RATE_LIMIT_ENABLED", true),
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_RPM", 60),
		},

		// OpenAI
		OpenAI: OpenAIConfig{
			APIKey:              getEnv("OPENAI_API_KEY", ""),
			WhisperModel:        getEnv("WHISPER_MODEL", "whisper-1"),
			ChatModel:           getEnv("CHAT_MODEL", "gpt-3.5-turbo"),
			DefaultSummaryWords: getEnvAsInt("SUMMARY_WORDS_DEFAULT", 300),
			MinSummaryWords:     getEnvAsInt("SUMMARY_WORDS_MIN", 100),
			MaxSummaryWords:     getEnvAsInt("SUMMARY_WORDS_MAX", 1000),
			SummaryWordsStep:    getEnvAsInt("SUMMARY_WORDS_STEP", 50),
			MaxTranscriptChars:  getEnvAsInt("SUMMARY_MAX_TRANSCRIPT_CHARS", 15000),
		},

		// Audio download
		Download: DownloadConfig{
			Format:           getEnv("AUDIO_FORMAT", "bestaudio[ext=m4a]/bestaudio/best"),
			UserAgent:        getEnv("DOWNLOAD_USER_AGENT", defaultUserAgent),
			SleepInterval:    getEnvAsDuration("DOWNLOAD_SLEEP_INTERVAL", 1*time.Second),
			MaxSleepInterval: getEnvAsDuration("DOWNLOAD_MAX_SLEEP_INTERVAL", 5*time.Second),
			Timeout:          getEnvAsDuration("DOWNLOAD_TIMEOUT", 10*time.Minute),
			PerMinute:        getEnvAsInt("DOWNLOAD_RPM", 6),
		},

		// Middleware
		Middleware: defaultDevMiddleware(),
	}

	if os.Getenv("ENV") == "production" {
		cfg.Middleware = defaultProdMiddleware()
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

func (c *Config) Validate() error {
	if err := validatePaths(c); err != nil {
		return err
	}
	if err := validateTimeouts(c); err != nil {
		return err
	}
	if err := validateSummaryBounds(c); err != nil {
		return err
	}
	return nil
}

func validatePaths(c *Config) error {
	paths := []struct {
		path string
		name string
	}{
		{c.LogDir, "log directory"},
		{c.TempDir, "temp directory"},
	}

	for _, p := range paths {
		if err := os.MkdirAll(p.path, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", p.name, err)
		}
	}

	return nil
}

func validateTimeouts(c *Config) error {
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}
	if c.Download.Timeout <= 0 {
		return fmt.Errorf("download timeout must be positive")
	}
	return nil
}

func validateSummaryBounds(c *Config) error {
	o := c.OpenAI
	if o.MinSummaryWords <= 0 || o.MaxSummaryWords <= o.MinSummaryWords {
		return fmt.Errorf("summary word bounds must satisfy 0 < min < max")
	}
	if o.DefaultSummaryWords < o.MinSummaryWords || o.DefaultSummaryWords > o.MaxSummaryWords {
		return fmt.Errorf("default summary words must fall within [min, max]")
	}
	if o.MaxTranscriptChars <= 0 {
		return fmt.Errorf("max transcript chars must be positive")
	}
	return nil
}

// Helper functions for reading environment variables
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		if value = strings.TrimSpace(value); value != "" {
			return strings.Split(value, ",")
		}
	}
	return defaultValue
}
