package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Check  CheckConfig
	Rename RenameConfig
	Export ExportConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	MaxUploadMB  int64         `mapstructure:"max_upload_mb"`
}

// CheckConfig holds reconciliation run settings.
type CheckConfig struct {
	InputDir        string `mapstructure:"input_dir"`
	LedgerFilename  string `mapstructure:"ledger_filename"`
	DuplicatePolicy string `mapstructure:"duplicate_policy"`
}

// RenameConfig holds invoice renamer settings.
type RenameConfig struct {
	WatchDir string `mapstructure:"watch_dir"`
}

// ExportConfig holds report output settings.
type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	BaseName  string `mapstructure:"base_name"`
	XLSX      bool   `mapstructure:"xlsx"`
}

// Load reads configuration from environment variables with the INVCHECK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_upload_mb", 50)

	// Check defaults
	v.SetDefault("check.input_dir", ".")
	v.SetDefault("check.ledger_filename", "Finance invoice.pdf")
	v.SetDefault("check.duplicate_policy", "keep_last")

	// Rename defaults
	v.SetDefault("rename.watch_dir", ".")

	// Export defaults
	v.SetDefault("export.output_dir", ".")
	v.SetDefault("export.base_name", "check_results")
	v.SetDefault("export.xlsx", false)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "INVCHECK_SERVER_PORT",
		"server.read_timeout":    "INVCHECK_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "INVCHECK_SERVER_WRITE_TIMEOUT",
		"server.environment":     "INVCHECK_SERVER_ENVIRONMENT",
		"server.max_upload_mb":   "INVCHECK_SERVER_MAX_UPLOAD_MB",
		"check.input_dir":        "INVCHECK_CHECK_INPUT_DIR",
		"check.ledger_filename":  "INVCHECK_CHECK_LEDGER_FILENAME",
		"check.duplicate_policy": "INVCHECK_CHECK_DUPLICATE_POLICY",
		"rename.watch_dir":       "INVCHECK_RENAME_WATCH_DIR",
		"export.output_dir":      "INVCHECK_EXPORT_OUTPUT_DIR",
		"export.base_name":       "INVCHECK_EXPORT_BASE_NAME",
		"export.xlsx":            "INVCHECK_EXPORT_XLSX",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVCHECK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVCHECK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		MaxUploadMB:  v.GetInt64("server.max_upload_mb"),
	}
	cfg.Check = CheckConfig{
		InputDir:        v.GetString("check.input_dir"),
		LedgerFilename:  v.GetString("check.ledger_filename"),
		DuplicatePolicy: v.GetString("check.duplicate_policy"),
	}
	cfg.Rename = RenameConfig{
		WatchDir: v.GetString("rename.watch_dir"),
	}
	cfg.Export = ExportConfig{
		OutputDir: v.GetString("export.output_dir"),
		BaseName:  v.GetString("export.base_name"),
		XLSX:      v.GetBool("export.xlsx"),
	}

	return cfg, nil
}
