package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Auth          AuthConfig
	DocumentStore DocumentStoreConfig
	Storage       StorageConfig
	Upload        UploadConfig
	LLM           LLMConfig
	OAuth         OAuthConfig
	Sentry        SentryConfig
	Appointments  AppointmentsConfig
}

type AppConfig struct {
	Port        string
	Env         string
	LogLevel    string
	BaseURL     string
	AdminEmails []string
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	TimeZone    string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type AuthConfig struct {
	RequireEmailVerification bool
	EmailTokenExpiry         time.Duration
}

// DocumentStoreConfig selects where user and doctor profile documents live.
type DocumentStoreConfig struct {
	Driver        string // postgres | mongo
	MongoURI      string
	MongoDatabase string
}

type StorageConfig struct {
	Driver        string // local | s3
	LocalPath     string
	PublicBaseURL string
	S3Bucket      string
	S3Region      string
	S3Prefix      string
	URLExpiry     time.Duration
}

type UploadConfig struct {
	MaxAttempts   int
	RetryDelay    time.Duration
	QueueSize     int
	MaxFileSizeMB int64
}

type LLMConfig struct {
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type SentryConfig struct {
	DSN         string
	Environment string
}

type AppointmentsConfig struct {
	SeedFile string
}

func LoadConfig() (*Config, error) {
	// A missing .env is fine, the process environment still applies.
	_ = godotenv.Load()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !isNotExist(err) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:        viper.GetString("APP_PORT"),
			Env:         viper.GetString("APP_ENV"),
			LogLevel:    viper.GetString("APP_LOG_LEVEL"),
			BaseURL:     viper.GetString("APP_BASE_URL"),
			AdminEmails: splitList(viper.GetString("APP_ADMIN_EMAILS")),
		},
		DB: DBConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASSWORD"),
			Name:        viper.GetString("DB_NAME"),
			TimeZone:    viper.GetString("DB_TIMEZONE"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  parseDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: parseDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Auth: AuthConfig{
			RequireEmailVerification: viper.GetBool("AUTH_REQUIRE_EMAIL_VERIFICATION"),
			EmailTokenExpiry:         parseDuration("AUTH_EMAIL_TOKEN_EXPIRY", 24*time.Hour),
		},
		DocumentStore: DocumentStoreConfig{
			Driver:        strings.ToLower(viper.GetString("DOCUMENT_STORE_DRIVER")),
			MongoURI:      viper.GetString("MONGO_URI"),
			MongoDatabase: viper.GetString("MONGO_DATABASE"),
		},
		Storage: StorageConfig{
			Driver:        strings.ToLower(viper.GetString("STORAGE_DRIVER")),
			LocalPath:     viper.GetString("STORAGE_LOCAL_PATH"),
			PublicBaseURL: viper.GetString("STORAGE_PUBLIC_BASE_URL"),
			S3Bucket:      viper.GetString("STORAGE_S3_BUCKET"),
			S3Region:      viper.GetString("STORAGE_S3_REGION"),
			S3Prefix:      viper.GetString("STORAGE_S3_PREFIX"),
			URLExpiry:     parseDuration("STORAGE_URL_EXPIRY", 7*24*time.Hour),
		},
		Upload: UploadConfig{
			MaxAttempts:   viper.GetInt("UPLOAD_MAX_ATTEMPTS"),
			RetryDelay:    parseDuration("UPLOAD_RETRY_DELAY", 2*time.Second),
			QueueSize:     viper.GetInt("UPLOAD_QUEUE_SIZE"),
			MaxFileSizeMB: viper.GetInt64("UPLOAD_MAX_FILE_SIZE_MB"),
		},
		LLM: LLMConfig{
			APIKey:   viper.GetString("GEMINI_API_KEY"),
			Model:    viper.GetString("GEMINI_MODEL"),
			Endpoint: viper.GetString("GEMINI_ENDPOINT"),
			Timeout:  parseDuration("GEMINI_TIMEOUT", 30*time.Second),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     viper.GetString("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: viper.GetString("GOOGLE_CLIENT_SECRET"),
			GoogleRedirectURL:  viper.GetString("GOOGLE_REDIRECT_URL"),
		},
		Sentry: SentryConfig{
			DSN:         viper.GetString("SENTRY_DSN"),
			Environment: viper.GetString("SENTRY_ENVIRONMENT"),
		},
		Appointments: AppointmentsConfig{
			SeedFile: viper.GetString("APPOINTMENTS_SEED_FILE"),
		},
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_LOG_LEVEL", "info")
	viper.SetDefault("APP_BASE_URL", "http://localhost:3000")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("AUTH_REQUIRE_EMAIL_VERIFICATION", true)
	viper.SetDefault("DOCUMENT_STORE_DRIVER", "postgres")
	viper.SetDefault("MONGO_DATABASE", "docconnect")
	viper.SetDefault("STORAGE_DRIVER", "local")
	viper.SetDefault("STORAGE_LOCAL_PATH", "./uploads")
	viper.SetDefault("STORAGE_PUBLIC_BASE_URL", "http://localhost:8080/uploads")
	viper.SetDefault("UPLOAD_MAX_ATTEMPTS", 3)
	viper.SetDefault("UPLOAD_QUEUE_SIZE", 64)
	viper.SetDefault("UPLOAD_MAX_FILE_SIZE_MB", 10)
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("GEMINI_ENDPOINT", "https://generativelanguage.googleapis.com/v1beta")
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
