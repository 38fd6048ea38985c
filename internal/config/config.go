// Package config loads application configuration from a .env file,
// environment variables, an optional config file and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port   string
	AppEnv string

	// UploadPath is the directory every stored file lives in.
	UploadPath string
	// MaxFileSize caps a single uploaded file, in bytes.
	MaxFileSize int64
	// MaxRequestSize caps a whole upload request body, in bytes.
	MaxRequestSize int64
}

const (
	keyPort           = "port"
	keyAppEnv         = "app_env"
	keyUploadPath     = "upload_path"
	keyMaxFileSize    = "max_file_size"
	keyMaxRequestSize = "max_request_size"
)

var defaults = map[string]string{
	keyPort:           "8080",
	keyAppEnv:         "development",
	keyUploadPath:     "./uploads",
	keyMaxFileSize:    "10MiB",
	keyMaxRequestSize: "10MiB",
}

// Load reads configuration with the precedence flags > environment > config
// file > defaults. A .env file in the working directory, if present, seeds the
// environment without overriding variables that are already set.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	flags := pflag.NewFlagSet("filestore", pflag.ContinueOnError)
	configFile := flags.String("config", "", "Path to a YAML/JSON/TOML config file")
	flags.String("port", "", "HTTP listen port")
	flags.String("app-env", "", "Application environment (development, production)")
	flags.String("upload-path", "", "Directory uploaded files are stored in")
	flags.String("max-file-size", "", "Maximum size of a single file (e.g. 10MiB)")
	flags.String("max-request-size", "", "Maximum size of an upload request (e.g. 10MiB)")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	for key := range defaults {
		if err := v.BindPFlag(key, flags.Lookup(strings.ReplaceAll(key, "_", "-"))); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", key, err)
		}
	}

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	maxFile, err := parseSize(v, keyMaxFileSize)
	if err != nil {
		return nil, err
	}
	maxRequest, err := parseSize(v, keyMaxRequestSize)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:           v.GetString(keyPort),
		AppEnv:         v.GetString(keyAppEnv),
		UploadPath:     v.GetString(keyUploadPath),
		MaxFileSize:    maxFile,
		MaxRequestSize: maxRequest,
	}
	if cfg.UploadPath == "" {
		return nil, errors.New("upload path must not be empty")
	}
	return cfg, nil
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func parseSize(v *viper.Viper, key string) (int64, error) {
	raw := v.GetString(key)
	n, err := humanize.ParseBytes(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if n == 0 || n > 1<<62 {
		return 0, fmt.Errorf("invalid %s %q: out of range", key, raw)
	}
	return int64(n), nil
}
