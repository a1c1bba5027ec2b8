package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Files   FilesConfig   `toml:"files"`
	Logging LoggingConfig `toml:"logging"`
	PDF     PDFConfig     `toml:"pdf"`
}

type ServerConfig struct {
	Host                    string `toml:"host"`
	Port                    int    `toml:"port" validate:"min=1,max=65535"`
	ReadTimeout             string `toml:"read_timeout"`              // e.g. "15s"
	WriteTimeout            string `toml:"write_timeout"`             // e.g. "15s"
	IdleTimeout             string `toml:"idle_timeout"`              // e.g. "60s"
	GracefulShutdownTimeout string `toml:"graceful_shutdown_timeout"` // e.g. "10s"
}

// FilesConfig controls uploads and temporary files of the HTTP service
type FilesConfig struct {
	MaxFileSize  int64  `toml:"max_file_size" validate:"gt=0"` // bytes
	TempDir      string `toml:"temp_dir" validate:"required"`
	CleanupDelay string `toml:"cleanup_delay"`                 // delay before temp files of a response are removed, e.g. "2s"
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=trace debug info warn error"`
	Output []string `toml:"output" validate:"dive,oneof=stdout console file"` // "stdout", "file"
	File   string   `toml:"file"`
}

// PDFConfig controls how input documents are parsed
type PDFConfig struct {
	ValidationMode string `toml:"validation_mode" validate:"oneof=relaxed strict"`
}

// StrictValidation reports whether inputs are parsed in strict mode
func (c PDFConfig) StrictValidation() bool {
	return c.ValidationMode == "strict"
}

// NewDefaultConfig returns the configuration used when no file or
// environment variable overrides a value.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                    "",
			Port:                    8080,
			ReadTimeout:             "15s",
			WriteTimeout:            "15s",
			IdleTimeout:             "60s",
			GracefulShutdownTimeout: "10s",
		},
		Files: FilesConfig{
			MaxFileSize:  10 * 1024 * 1024, // 10MB
			TempDir:      "./temp",
			CleanupDelay: "2s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
			File:   "logs/pdftools.log",
		},
		PDF: PDFConfig{
			ValidationMode: "relaxed",
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files. Empty paths are ignored.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// The unprefixed PORT, MAX_FILE_SIZE and TEMP_DIR are still honoured; the
// PDFTOOLS_ names win when both are set.
func applyEnvOverrides(config *Config) {
	for _, key := range []string{"PORT", "PDFTOOLS_PORT"} {
		if port := os.Getenv(key); port != "" {
			if p, err := strconv.Atoi(port); err == nil {
				config.Server.Port = p
			}
		}
	}
	if host := os.Getenv("PDFTOOLS_HOST"); host != "" {
		config.Server.Host = host
	}

	for _, key := range []string{"MAX_FILE_SIZE", "PDFTOOLS_MAX_FILE_SIZE"} {
		if size := os.Getenv(key); size != "" {
			if s, err := strconv.ParseInt(size, 10, 64); err == nil {
				config.Files.MaxFileSize = s
			}
		}
	}
	for _, key := range []string{"TEMP_DIR", "PDFTOOLS_TEMP_DIR"} {
		if dir := os.Getenv(key); dir != "" {
			config.Files.TempDir = dir
		}
	}

	if level := os.Getenv("PDFTOOLS_LOG_LEVEL"); level != "" {
		config.Logging.Level = strings.ToLower(level)
	}
	if output := os.Getenv("PDFTOOLS_LOG_OUTPUT"); output != "" {
		config.Logging.Output = splitList(output)
	}

	if mode := os.Getenv("PDFTOOLS_VALIDATION_MODE"); mode != "" {
		config.PDF.ValidationMode = strings.ToLower(mode)
	}
}

// ApplyFlagOverrides applies command line values, which take precedence
// over everything else. Zero values leave the config untouched.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks the struct constraints of c and that every duration parses.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	for name, value := range map[string]string{
		"server.read_timeout":              c.Server.ReadTimeout,
		"server.write_timeout":             c.Server.WriteTimeout,
		"server.idle_timeout":              c.Server.IdleTimeout,
		"server.graceful_shutdown_timeout": c.Server.GracefulShutdownTimeout,
		"files.cleanup_delay":              c.Files.CleanupDelay,
	} {
		if d, err := time.ParseDuration(value); err != nil || d < 0 {
			return fmt.Errorf("invalid configuration: %s: invalid duration %q", name, value)
		}
	}
	return nil
}

// Duration parses a duration field that Validate has already checked.
// Unparseable values yield zero.
func Duration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
