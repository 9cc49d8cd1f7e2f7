// Package config loads the configuration of the filemutex command from
// flags and FILEMUTEX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gentlemanautomaton/filemutex"
)

// EnvPrefix is prepended to every environment variable read by [Load].
const EnvPrefix = "FILEMUTEX"

// Configuration keys. Each is both a flag name and, upper-cased with
// dashes replaced by underscores, an environment variable suffix.
const (
	KeyLock          = "lock"
	KeyRetryInterval = "retry-interval"
	KeySpin          = "spin"
	KeyLogLevel      = "log-level"
)

// ErrInvalidConfig is returned by [Load] for values that can't be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved configuration of the command.
type Config struct {
	LockPath      string
	RetryInterval time.Duration
	Spin          bool
	LogLevel      log.Level
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyLock, filemutex.DefaultPath(), "path of the lock file")
	fs.Duration(KeyRetryInterval, filemutex.DefaultRetryInterval, "delay between attempts while the lock is held elsewhere")
	fs.Bool(KeySpin, false, "retry without sleeping while the lock is held elsewhere")
	fs.String(KeyLogLevel, "info", "log level (debug, info, warn, error)")
}

// Bind returns a viper instance that resolves each key from the flags in fs
// when they were set explicitly, then from the environment, then from the
// flag defaults.
func Bind(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	return v, nil
}

// Load resolves and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		LockPath: v.GetString(KeyLock),
		Spin:     v.GetBool(KeySpin),
	}

	if cfg.LockPath == "" {
		cfg.LockPath = filemutex.DefaultPath()
	}

	raw := v.GetString(KeyRetryInterval)
	interval, err := time.ParseDuration(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s = %q: %v", ErrInvalidConfig, KeyRetryInterval, raw, err)
	}
	if interval < 0 {
		return Config{}, fmt.Errorf("%w: %s = %s: must not be negative", ErrInvalidConfig, KeyRetryInterval, interval)
	}
	cfg.RetryInterval = interval
	if cfg.Spin {
		cfg.RetryInterval = filemutex.Spin
	}

	raw = v.GetString(KeyLogLevel)
	level, err := log.ParseLevel(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s = %q: %v", ErrInvalidConfig, KeyLogLevel, raw, err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

// Mutex returns a mutex for the configured lock file. Progress notices are
// written to logger.
func (c Config) Mutex(logger *log.Logger) *filemutex.Mutex {
	return filemutex.New(c.LockPath,
		filemutex.WithRetryInterval(c.RetryInterval),
		filemutex.WithLogger(logger),
	)
}
