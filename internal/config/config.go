// Package config layers defaults, an optional .env file, CURVEPASS_*
// environment variables and command-line flags, later sources winning.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable the config reads.
const EnvPrefix = "CURVEPASS_"

// Config is the shared runtime configuration of every command.
type Config struct {
	Seed       int64
	Audio      bool
	LogLevel   string
	Addr       string
	TickRate   int
	Codec      string
	CameraMode string
	Autoplay   bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Seed:       1,
		Audio:      true,
		LogLevel:   "info",
		Addr:       ":9003",
		TickRate:   60,
		Codec:      "json",
		CameraMode: "follow",
	}
}

// Load builds a Config for a command. envFile may be empty to skip the
// .env step; a missing file is not an error. getenv is usually os.Getenv.
func Load(name string, args []string, envFile string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if envFile != "" {
		if err := loadEnvFile(envFile); err != nil {
			return cfg, err
		}
	}
	if getenv == nil {
		getenv = os.Getenv
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return cfg, err
	}

	fsFlags := flag.NewFlagSet(name, flag.ContinueOnError)
	fsFlags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "match random seed")
	fsFlags.BoolVar(&cfg.Audio, "audio", cfg.Audio, "play sound effects")
	fsFlags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fsFlags.StringVar(&cfg.Addr, "addr", cfg.Addr, "server listen address")
	fsFlags.IntVar(&cfg.TickRate, "tick-rate", cfg.TickRate, "server simulation frames per second")
	fsFlags.StringVar(&cfg.Codec, "codec", cfg.Codec, "stream codec: json or msgpack")
	fsFlags.StringVar(&cfg.CameraMode, "camera", cfg.CameraMode, "camera mode: follow or broadcast")
	fsFlags.BoolVar(&cfg.Autoplay, "autoplay", cfg.Autoplay, "let the autopilot play the user side")
	if err := fsFlags.Parse(args); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadEnvFile reads KEY=value pairs into the process environment without
// overriding variables that are already set.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}
	var errs []error
	boolean := func(key string, dst *bool) {
		if v := getenv(EnvPrefix + key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s%s=%q: %w", EnvPrefix, key, v, err))
				return
			}
			*dst = b
		}
	}

	if v := getenv(EnvPrefix + "SEED"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %sSEED=%q: %w", EnvPrefix, v, err))
		} else {
			c.Seed = n
		}
	}
	if v := getenv(EnvPrefix + "TICK_RATE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %sTICK_RATE=%q: %w", EnvPrefix, v, err))
		} else {
			c.TickRate = n
		}
	}
	boolean("AUDIO", &c.Audio)
	boolean("AUTOPLAY", &c.Autoplay)
	str("LOG_LEVEL", &c.LogLevel)
	str("ADDR", &c.Addr)
	str("CODEC", &c.Codec)
	str("CAMERA", &c.CameraMode)
	return errors.Join(errs...)
}

// Validate rejects values no component can run with.
func (c Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("config: log level %q", c.LogLevel))
	}
	switch c.Codec {
	case "json", "msgpack":
	default:
		errs = append(errs, fmt.Errorf("config: codec %q", c.Codec))
	}
	switch c.CameraMode {
	case "follow", "broadcast":
	default:
		errs = append(errs, fmt.Errorf("config: camera mode %q", c.CameraMode))
	}
	if c.TickRate < 1 || c.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("config: tick rate %d out of range 1..1000", c.TickRate))
	}
	if c.Addr == "" {
		errs = append(errs, errors.New("config: empty listen address"))
	}
	return errors.Join(errs...)
}
