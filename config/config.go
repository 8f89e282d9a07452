package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	// Comma-separated proxy IPs or CIDRs whose forwarding headers are trusted.
	TrustedProxies string `mapstructure:"TRUSTED_PROXIES"`

	// Auth and sessions.
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`
	SessionStore      string `mapstructure:"SESSION_STORE"`
	AdminToken        string `mapstructure:"ADMIN_TOKEN"`
	DebugAuth         bool   `mapstructure:"DEBUG_AUTH"`

	// Upstream library backend.
	APIBaseURL string `mapstructure:"API_BASE_URL"`

	// CMS content.
	CMSStore           string `mapstructure:"CMS_STORE"`
	CMSCacheTTLSeconds int    `mapstructure:"CMS_CACHE_TTL_SECONDS"`
	CMSSeedFile        string `mapstructure:"CMS_SEED_FILE"`
	DatabaseURL        string `mapstructure:"DATABASE_URL"`
	DatabaseName       string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Raw JSON list of sign-up departments. Parsed once into Departments.
	DepartmentsJSON string `mapstructure:"CIBN_DEPARTMENTS_JSON"`

	Departments []DepartmentOption `mapstructure:"-"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("TRUSTED_PROXIES", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("SESSION_TTL_MINUTES", 60)
	viper.SetDefault("SESSION_STORE", "memory")
	viper.SetDefault("ADMIN_TOKEN", "")
	viper.SetDefault("DEBUG_AUTH", false)
	viper.SetDefault("API_BASE_URL", "http://localhost:8000/api/v1")
	viper.SetDefault("CMS_STORE", "memory")
	viper.SetDefault("CMS_CACHE_TTL_SECONDS", 300)
	viper.SetDefault("CMS_SEED_FILE", "")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "cibn_library")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("CIBN_DEPARTMENTS_JSON", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	AppConfig.Departments = ParseDepartmentOptions(AppConfig.DepartmentsJSON, DefaultDepartments)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// RedisEnabled reports whether a Redis address was configured.
func RedisEnabled() bool {
	return AppConfig.RedisAddr != ""
}

// TrustedProxyList splits TRUSTED_PROXIES. It is nil when none are set, which
// makes gin ignore forwarding headers.
func TrustedProxyList() []string {
	var proxies []string
	for _, p := range strings.Split(AppConfig.TrustedProxies, ",") {
		if p = strings.TrimSpace(p); p != "" {
			proxies = append(proxies, p)
		}
	}
	return proxies
}
