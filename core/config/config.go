package config

import (
	"reflect"
	"strings"
	"time"

	"locale-manager/core/database"
	"locale-manager/core/extract"
	"locale-manager/core/logger"
	"locale-manager/core/server"
	"locale-manager/core/storage"
	"locale-manager/core/translate"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Translation holds configuration for the machine translation service.
	Translation translate.Config `mapstructure:"translation"`
	// Localization holds the reconciliation settings.
	Localization LocalizationConfig `mapstructure:"localization"`
}

// LocalizationConfig holds the reconciliation settings.
type LocalizationConfig struct {
	// SourceLang is the locale strings are extracted from.
	SourceLang string `mapstructure:"source_lang" default:"en"`
	// TargetLangs is the comma separated list of target locales.
	TargetLangs string `mapstructure:"target_langs" default:"de,zh-Hans"`
	// Parallelism bounds the partitions reconciled at once.
	Parallelism int `mapstructure:"parallelism" default:"4"`
	// CacheTTLSeconds is the lifetime of cached listings. Zero disables the cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"30"`
}

// Targets parses TargetLangs.
func (c LocalizationConfig) Targets() ([]extract.Locale, error) {
	return extract.ParseLocales(c.TargetLangs)
}

// CacheTTL returns the listing cache lifetime.
func (c LocalizationConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
