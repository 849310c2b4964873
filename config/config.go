package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Mapstructure tags map environment variables and config file keys.
type Config struct {
	// Server Configuration
	ServerAddress       string `mapstructure:"SERVER_ADDRESS" validate:"required"`
	AppEnv              string `mapstructure:"APP_ENV"`
	LogLevel            string `mapstructure:"LOG_LEVEL" validate:"omitempty,oneof=trace debug info warn error"`
	WriteTimeoutSeconds int    `mapstructure:"WRITE_TIMEOUT_SECONDS" validate:"gte=1"`
	MaxBodyBytes        int    `mapstructure:"MAX_BODY_BYTES" validate:"gte=1"`
	ExportMaxBodyBytes  int    `mapstructure:"EXPORT_MAX_BODY_BYTES" validate:"gte=1"` // exported pages may inline data: URL images
	CORSAllowOrigins    string `mapstructure:"CORS_ALLOW_ORIGINS"` // comma separated, empty disables CORS

	// Rate limiting (per client IP token bucket); capacity 0 disables it
	RateLimitCapacity float64 `mapstructure:"RATE_LIMIT_CAPACITY" validate:"gte=0"`
	RateLimitFillRate float64 `mapstructure:"RATE_LIMIT_FILL_RATE" validate:"gte=0"`

	// AI Configuration
	OpenAIKey     string `mapstructure:"OPENAI_API_KEY" validate:"required"`
	OpenAIBaseURL string `mapstructure:"OPENAI_BASE_URL" validate:"omitempty,url"`
	TextModel     string `mapstructure:"TEXT_MODEL" validate:"required"`
	DefaultStyle  string `mapstructure:"DEFAULT_STYLE" validate:"required"`
	LenientJSON   bool   `mapstructure:"LENIENT_JSON"` // empty site instead of an error on unparsable model output

	// Image Generation
	ImageProvider    string `mapstructure:"IMAGE_PROVIDER" validate:"oneof=openai gemini"`
	ImageModel       string `mapstructure:"IMAGE_MODEL"`
	ImageSize        string `mapstructure:"IMAGE_SIZE"`
	ImageQuality     string `mapstructure:"IMAGE_QUALITY" validate:"omitempty,oneof=standard hd low medium high auto"`
	GeminiAPIKey     string `mapstructure:"GEMINI_API_KEY" validate:"required_if=ImageProvider gemini"`
	GeminiImageModel string `mapstructure:"GEMINI_IMAGE_MODEL"`
	GeminiBaseURL    string `mapstructure:"GEMINI_BASE_URL" validate:"omitempty,url"`

	// FileUsed is the config file that was read, empty when running on env vars only.
	FileUsed string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("WRITE_TIMEOUT_SECONDS", 180)
	v.SetDefault("MAX_BODY_BYTES", 64*1024)
	v.SetDefault("EXPORT_MAX_BODY_BYTES", 16*1024*1024)
	v.SetDefault("CORS_ALLOW_ORIGINS", "")
	v.SetDefault("RATE_LIMIT_CAPACITY", 0)
	v.SetDefault("RATE_LIMIT_FILL_RATE", 0)
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("TEXT_MODEL", "gpt-4-turbo-preview")
	v.SetDefault("DEFAULT_STYLE", "modern")
	v.SetDefault("LENIENT_JSON", false)
	v.SetDefault("IMAGE_PROVIDER", "openai")
	v.SetDefault("IMAGE_MODEL", "dall-e-3")
	v.SetDefault("IMAGE_SIZE", "1024x1024")
	v.SetDefault("IMAGE_QUALITY", "standard")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_IMAGE_MODEL", "imagen-3.0-generate-002")
	v.SetDefault("GEMINI_BASE_URL", "")
}

// LoadConfig reads configuration from config.yaml in path (optional) and environment variables.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)     // Path to look for the config file in
	v.SetConfigName("config") // Name of config file (without extension)
	v.SetConfigType("yaml")
	setDefaults(v)

	// Defaults register every key, so AutomaticEnv can bind them all on Unmarshal.
	v.AutomaticEnv()

	fileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		// A missing config.yaml is fine; env vars and defaults still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		fileUsed = v.ConfigFileUsed()
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.FileUsed = fileUsed
	config.ImageProvider = strings.ToLower(strings.TrimSpace(config.ImageProvider))
	if err := Validate(config); err != nil {
		return Config{}, err
	}

	return config, nil
}

func Validate(config Config) error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// AllowedOrigins splits CORS_ALLOW_ORIGINS into a list, dropping blanks.
func (c Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
