// Package config loads worker settings from a TOML file, a .env file and
// environment variables, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Debug         bool   `toml:"debug"`
	MaxFileSizeMB int    `toml:"max_file_size_mb"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type DiffConfig struct {
	SimilarityThreshold float64 `toml:"similarity_threshold"`
}

type ParserConfig struct {
	OCRLanguage   string `toml:"ocr_language"`
	StripMarkdown bool   `toml:"strip_markdown"`
}

type Config struct {
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
	Diff   DiffConfig   `toml:"diff"`
	Parser ParserConfig `toml:"parser"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:          "0.0.0.0",
			Port:          8000,
			MaxFileSizeMB: 10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Diff: DiffConfig{
			SimilarityThreshold: 0.6,
		},
		Parser: ParserConfig{
			OCRLanguage: "eng",
		},
	}
}

// Load reads a TOML file over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads variables from a .env file into the process
// environment without overriding variables that are already set. A
// missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Resolve builds the effective configuration: defaults, then the TOML file
// at path if non-empty, then the .env file, then the environment.
func Resolve(path, dotenv string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}
	if dotenv != "" {
		if err := LoadDotEnv(dotenv); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides settings from environment variables: HOST, PORT,
// DEBUG, MAX_FILE_SIZE_MB, LOG_LEVEL, LOG_FORMAT, SIMILARITY_THRESHOLD,
// OCR_LANGUAGE and STRIP_MARKDOWN.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	integer := func(key string, dst *int) error {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", key, v, err)
			}
			*dst = n
		}
		return nil
	}
	boolean := func(key string, dst *bool) error {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", key, v, err)
			}
			*dst = b
		}
		return nil
	}

	str("HOST", &c.Server.Host)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("OCR_LANGUAGE", &c.Parser.OCRLanguage)

	if err := integer("PORT", &c.Server.Port); err != nil {
		return err
	}
	if err := integer("MAX_FILE_SIZE_MB", &c.Server.MaxFileSizeMB); err != nil {
		return err
	}
	if err := boolean("DEBUG", &c.Server.Debug); err != nil {
		return err
	}
	if err := boolean("STRIP_MARKDOWN", &c.Parser.StripMarkdown); err != nil {
		return err
	}

	if v, ok := lookup("SIMILARITY_THRESHOLD"); ok && v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("invalid SIMILARITY_THRESHOLD %q: %w", v, err)
		}
		c.Diff.SimilarityThreshold = f
	}

	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.MaxFileSizeMB < 1 {
		return fmt.Errorf("server.max_file_size_mb must be positive, got %d", c.Server.MaxFileSizeMB)
	}
	t := c.Diff.SimilarityThreshold
	if math.IsNaN(t) || t < 0 || t > 1 {
		return fmt.Errorf("diff.similarity_threshold %v out of range [0, 1]", t)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format %q is not one of json, text", c.Log.Format)
	}
	return nil
}

// MaxFileSizeBytes returns the upload limit in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.Server.MaxFileSizeMB) * 1024 * 1024
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
