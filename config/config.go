/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads httperr settings from a YAML file, a .env file and
// HTTPERR_* environment variables.
//
// Precedence, highest first: process environment, .env file, YAML file,
// defaults. Keys are nested with "." in YAML and "_" in the environment:
//
//	errors:
//	  catch_all: true        # HTTPERR_ERRORS_CATCH_ALL=true
//	  redacted_reason: Oops  # HTTPERR_ERRORS_REDACTED_REASON=Oops
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"dirpx.dev/httperr"
	"dirpx.dev/httperr/logsink"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the default environment variable prefix.
const EnvPrefix = "HTTPERR"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Settings is the full configuration of a service using httperr.
type Settings struct {
	// Addr is the listen address of the HTTP server.
	Addr string `yaml:"addr" mapstructure:"addr" validate:"required"`

	// Errors is bound into the Converter.
	Errors httperr.Config `yaml:"errors" mapstructure:"errors"`

	// Log configures the instrumentation sink.
	Log Log `yaml:"log" mapstructure:"log"`
}

// Log configures the zerolog sink.
type Log struct {
	logsink.Config `yaml:",inline" mapstructure:",squash"`

	// Async enables the non-blocking diode writer.
	Async bool `yaml:"async" mapstructure:"async"`
	// BufferSize is the diode ring size in records.
	BufferSize int `yaml:"buffer_size" mapstructure:"buffer_size" validate:"gte=0,lte=1000000"`
}

// Default returns the settings used when nothing else is configured.
func Default() Settings {
	return Settings{
		Addr:   ":8080",
		Errors: httperr.DefaultConfig(),
		Log: Log{
			Config:     logsink.Config{Format: "json", Timestamp: true},
			Async:      true,
			BufferSize: 1000,
		},
	}
}

// LoaderConfig holds optional file overrides.
type LoaderConfig struct {
	ConfigFile string // YAML file path (optional)
	EnvFile    string // .env file path (optional)
	EnvPrefix  string // defaults to EnvPrefix
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithConfigFile sets an explicit YAML config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix replaces the HTTPERR environment prefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = prefix }
}

var validate = validator.New()

// Load resolves Settings and validates them.
//
// Missing explicit files are errors. Values that fail validation are
// reported wrapped in ErrInvalidConfig.
func Load(opts ...LoaderOption) (Settings, error) {
	lc := LoaderConfig{EnvPrefix: EnvPrefix}
	for _, opt := range opts {
		opt(&lc)
	}

	if lc.EnvFile != "" {
		if err := godotenv.Load(lc.EnvFile); err != nil {
			return Settings{}, fmt.Errorf("config: load env file %s: %w", lc.EnvFile, err)
		}
	}

	v := viper.New()
	setDefaults(v, Default())

	if lc.ConfigFile != "" {
		if _, err := os.Stat(lc.ConfigFile); err != nil {
			return Settings{}, fmt.Errorf("config: %w", err)
		}
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("config: read %s: %w", lc.ConfigFile, err)
		}
	}

	v.SetEnvPrefix(lc.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := Validate(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks s against its struct tags.
func Validate(s Settings) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// setDefaults registers every key, so AutomaticEnv also covers keys absent
// from the YAML file.
func setDefaults(v *viper.Viper, d Settings) {
	v.SetDefault("addr", d.Addr)

	v.SetDefault("errors.catch_all", d.Errors.CatchAll)
	v.SetDefault("errors.redact", d.Errors.Redact)
	v.SetDefault("errors.instrument", d.Errors.Instrument)
	v.SetDefault("errors.redacted_reason", d.Errors.RedactedReason)

	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.no_color", d.Log.NoColor)
	v.SetDefault("log.timestamp", d.Log.Timestamp)
	v.SetDefault("log.service", d.Log.Service)
	v.SetDefault("log.async", d.Log.Async)
	v.SetDefault("log.buffer_size", d.Log.BufferSize)
}
