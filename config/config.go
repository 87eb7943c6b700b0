package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Newsletter pipeline specifics
	Gemini         GeminiConfig
	OCR            OCRConfig
	TaskBoard      TaskBoardConfig
	GoogleCalendar GoogleCalendarConfig
	Pipeline       PipelineConfig

	// Upload protection
	Upload UploadConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port        int
	Mode        string
	InternalKey string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OCRConfig struct {
	URL      string
	PoolSize int
}

type TaskBoardConfig struct {
	URL         string
	AccessToken string
}

type GoogleCalendarConfig struct {
	Enabled         bool
	CredentialsPath string
	CalendarID      string
}

// PipelineConfig carries the extraction tunables that operators may
// adjust without a rebuild.
type PipelineConfig struct {
	TitleMinScore    float64
	TitleMaxLen      int
	DefaultTimezone  string
	IssueMonthWindow int // months of drift tolerated between hint and payload
}

type UploadConfig struct {
	Enabled         bool
	Secret          string
	AllowedIPs      []string
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.InternalKey = viper.GetString("http_server.internal_key")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Gemini
	cfg.Gemini.APIKey = expandEnvVar(viper.GetString("gemini.api_key"))
	cfg.Gemini.Model = viper.GetString("gemini.model")
	if geminiKey := viper.GetString("gemini_api_key"); geminiKey != "" {
		cfg.Gemini.APIKey = geminiKey
	}

	// OCR
	cfg.OCR.URL = viper.GetString("ocr.url")
	cfg.OCR.PoolSize = viper.GetInt("ocr.pool_size")
	if ocrURL := viper.GetString("ocr_url"); ocrURL != "" {
		cfg.OCR.URL = ocrURL
	}

	// Task board
	cfg.TaskBoard.URL = viper.GetString("task_board.url")
	cfg.TaskBoard.AccessToken = expandEnvVar(viper.GetString("task_board.access_token"))
	if boardURL := viper.GetString("task_board_url"); boardURL != "" {
		cfg.TaskBoard.URL = boardURL
	}
	if boardToken := viper.GetString("task_board_access_token"); boardToken != "" {
		cfg.TaskBoard.AccessToken = boardToken
	}

	// Google Calendar
	cfg.GoogleCalendar.Enabled = viper.GetBool("google_calendar.enabled")
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	// Pipeline tunables
	cfg.Pipeline.TitleMinScore = viper.GetFloat64("pipeline.title_min_score")
	cfg.Pipeline.TitleMaxLen = viper.GetInt("pipeline.title_max_len")
	cfg.Pipeline.DefaultTimezone = viper.GetString("pipeline.default_timezone")
	cfg.Pipeline.IssueMonthWindow = viper.GetInt("pipeline.issue_month_window")

	// Upload protection
	cfg.Upload.Enabled = viper.GetBool("upload.enabled")
	cfg.Upload.Secret = viper.GetString("upload.secret")
	if uploadSecret := viper.GetString("upload_secret"); uploadSecret != "" {
		cfg.Upload.Secret = uploadSecret
	}
	cfg.Upload.RateLimitPerMin = viper.GetInt("upload.rate_limit_per_min")

	// Split allowed IPs since viper might not parse array seamlessly from env
	var ips []string
	if rawIps := viper.GetString("upload.allowed_ips"); rawIps != "" {
		for _, ip := range strings.Split(rawIps, ",") {
			ip = strings.TrimSpace(ip)
			if ip != "" {
				ips = append(ips, ip)
			}
		}
	}
	cfg.Upload.AllowedIPs = ips

	if cfg.Gemini.APIKey == "" {
		fmt.Println("Warning: gemini.api_key not configured; OCR-only extraction will degrade to defaults")
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("ocr.pool_size", 2)
	viper.SetDefault("pipeline.title_min_score", 2.5)
	viper.SetDefault("pipeline.title_max_len", 24)
	viper.SetDefault("pipeline.default_timezone", "Asia/Tokyo")
	viper.SetDefault("pipeline.issue_month_window", 1)
	viper.SetDefault("upload.enabled", true)
	viper.SetDefault("upload.rate_limit_per_min", 60)
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	// Check if value is in format ${VAR_NAME}
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		// Try lowercase version
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		// Try direct os.Getenv as last resort
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}
