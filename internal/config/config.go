// Package config loads pronounce settings from a YAML file, PRONOUNCE_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: recognizer.api_key is read from
// PRONOUNCE_RECOGNIZER_API_KEY.
const EnvPrefix = "PRONOUNCE"

// RecognizerProvider selects the speech recognizer.
type RecognizerProvider string

const (
	RecognizerNone    RecognizerProvider = "none"
	RecognizerWhisper RecognizerProvider = "whisper"
)

// IsValid reports whether p is a known provider.
func (p RecognizerProvider) IsValid() bool {
	switch p {
	case RecognizerNone, RecognizerWhisper:
		return true
	}
	return false
}

type Recognizer struct {
	Provider RecognizerProvider `mapstructure:"provider" yaml:"provider"`
	APIKey   string             `mapstructure:"api_key" yaml:"api_key"`
	BaseURL  string             `mapstructure:"base_url" yaml:"base_url"`
	Model    string             `mapstructure:"model" yaml:"model"`
	Timeout  time.Duration      `mapstructure:"timeout" yaml:"timeout"`
}

// Phonemes configures the CTC phoneme extractor. An empty Endpoint
// disables phoneme scoring.
type Phonemes struct {
	Endpoint string        `mapstructure:"endpoint" yaml:"endpoint"`
	Vocab    string        `mapstructure:"vocab" yaml:"vocab"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type Progress struct {
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

type Catalog struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type Server struct {
	ListenAddr     string        `mapstructure:"listen_addr" yaml:"listen_addr"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
}

type Feature struct {
	SampleRate int     `mapstructure:"sample_rate" yaml:"sample_rate"`
	NumMFCC    int     `mapstructure:"n_mfcc" yaml:"n_mfcc"`
	Normalize  bool    `mapstructure:"normalize" yaml:"normalize"`
	TargetDB   float64 `mapstructure:"target_db" yaml:"target_db"`
}

// Config is the complete pronounce configuration.
type Config struct {
	LogLevel   string     `mapstructure:"log_level" yaml:"log_level"`
	TempDir    string     `mapstructure:"temp_dir" yaml:"temp_dir"`
	Language   string     `mapstructure:"language" yaml:"language"`
	Parallel   bool       `mapstructure:"parallel" yaml:"parallel"`
	Recognizer Recognizer `mapstructure:"recognizer" yaml:"recognizer"`
	Phonemes   Phonemes   `mapstructure:"phonemes" yaml:"phonemes"`
	Progress   Progress   `mapstructure:"progress" yaml:"progress"`
	Catalog    Catalog    `mapstructure:"catalog" yaml:"catalog"`
	Server     Server     `mapstructure:"server" yaml:"server"`
	Feature    Feature    `mapstructure:"feature" yaml:"feature"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Language: "id",
		Parallel: true,
		Recognizer: Recognizer{
			Provider: RecognizerNone,
			Model:    "whisper-1",
			Timeout:  30 * time.Second,
		},
		Phonemes: Phonemes{
			Timeout: 30 * time.Second,
		},
		Progress: Progress{
			DBPath: "pronounce.sqlite",
		},
		Server: Server{
			ListenAddr:     ":8080",
			RequestTimeout: 60 * time.Second,
		},
		Feature: Feature{
			SampleRate: 16000,
			NumMFCC:    13,
			Normalize:  true,
			TargetDB:   -25,
		},
	}
}

// setDefaults registers every key with v so that environment variables are
// honoured for keys absent from the file.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("temp_dir", d.TempDir)
	v.SetDefault("language", d.Language)
	v.SetDefault("parallel", d.Parallel)
	v.SetDefault("recognizer.provider", string(d.Recognizer.Provider))
	v.SetDefault("recognizer.api_key", d.Recognizer.APIKey)
	v.SetDefault("recognizer.base_url", d.Recognizer.BaseURL)
	v.SetDefault("recognizer.model", d.Recognizer.Model)
	v.SetDefault("recognizer.timeout", d.Recognizer.Timeout)
	v.SetDefault("phonemes.endpoint", d.Phonemes.Endpoint)
	v.SetDefault("phonemes.vocab", d.Phonemes.Vocab)
	v.SetDefault("phonemes.timeout", d.Phonemes.Timeout)
	v.SetDefault("progress.db_path", d.Progress.DBPath)
	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("server.listen_addr", d.Server.ListenAddr)
	v.SetDefault("server.request_timeout", d.Server.RequestTimeout)
	v.SetDefault("feature.sample_rate", d.Feature.SampleRate)
	v.SetDefault("feature.n_mfcc", d.Feature.NumMFCC)
	v.SetDefault("feature.normalize", d.Feature.Normalize)
	v.SetDefault("feature.target_db", d.Feature.TargetDB)
}

// FlagKeys maps command-line flag names to configuration keys. Load binds
// each flag present in the flag set.
var FlagKeys = map[string]string{
	"log-level":  "log_level",
	"temp-dir":   "temp_dir",
	"language":   "language",
	"parallel":   "parallel",
	"recognizer": "recognizer.provider",
	"db":         "progress.db_path",
	"catalog":    "catalog.path",
	"listen":     "server.listen_addr",
}

// Load reads the configuration. path may be empty to skip the file; flags
// may be nil. The result is validated.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %q: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg and reports every problem at once.
func Validate(cfg *Config) error {
	var errs []error

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if cfg.Language == "" {
		errs = append(errs, errors.New("language is required"))
	}
	if !cfg.Recognizer.Provider.IsValid() {
		errs = append(errs, fmt.Errorf("recognizer.provider %q is invalid; valid values: none, whisper", cfg.Recognizer.Provider))
	}
	if cfg.Recognizer.Provider == RecognizerWhisper && cfg.Recognizer.APIKey == "" {
		errs = append(errs, errors.New("recognizer.api_key is required for the whisper provider"))
	}
	if cfg.Recognizer.Timeout < 0 || cfg.Phonemes.Timeout < 0 || cfg.Server.RequestTimeout < 0 {
		errs = append(errs, errors.New("timeouts must not be negative"))
	}
	if cfg.Phonemes.Vocab != "" && cfg.Phonemes.Endpoint == "" {
		errs = append(errs, errors.New("phonemes.vocab requires phonemes.endpoint"))
	}
	if cfg.Feature.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("feature.sample_rate must be positive, got %d", cfg.Feature.SampleRate))
	}
	if cfg.Feature.NumMFCC <= 0 {
		errs = append(errs, fmt.Errorf("feature.n_mfcc must be positive, got %d", cfg.Feature.NumMFCC))
	}

	return errors.Join(errs...)
}
