package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

const envPrefix = "RUNECAST_"

// Config is everything the gateway binary reads from its environment.
type Config struct {
	Addr      string
	LogLevel  string
	LogFormat string // "json" or "console"

	// SendBuffer is the per-connection outbox size. A connection whose
	// outbox is full is dropped.
	SendBuffer int
	// ReplayLimit caps how many messages a parked session keeps for resume.
	ReplayLimit int
	// EnvelopeDefault envelopes replies even before the peer sends an envelope.
	EnvelopeDefault bool
}

func Default() Config {
	return Config{
		Addr:        ":8080",
		LogLevel:    "info",
		LogFormat:   "json",
		SendBuffer:  64,
		ReplayLimit: 256,
	}
}

// Load reads an optional .env file from the working directory and then the
// RUNECAST_* variables. Variables already set in the process win over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, starting from Default.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var err error

	if v, ok := lookup(envPrefix + "ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup(envPrefix + "LOG_FORMAT"); ok {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v, ok := lookup(envPrefix + "SEND_BUFFER"); ok {
		n, perr := strconv.Atoi(v)
		err = multierr.Append(err, wrap("SEND_BUFFER", perr))
		cfg.SendBuffer = n
	}
	if v, ok := lookup(envPrefix + "REPLAY_LIMIT"); ok {
		n, perr := strconv.Atoi(v)
		err = multierr.Append(err, wrap("REPLAY_LIMIT", perr))
		cfg.ReplayLimit = n
	}
	if v, ok := lookup(envPrefix + "ENVELOPE_DEFAULT"); ok {
		b, perr := strconv.ParseBool(v)
		err = multierr.Append(err, wrap("ENVELOPE_DEFAULT", perr))
		cfg.EnvelopeDefault = b
	}
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var err error
	if c.Addr == "" {
		err = multierr.Append(err, errors.New("config: addr is empty"))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("config: unknown log level %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		err = multierr.Append(err, fmt.Errorf("config: unknown log format %q", c.LogFormat))
	}
	if c.SendBuffer < 1 {
		err = multierr.Append(err, fmt.Errorf("config: send buffer must be positive, got %d", c.SendBuffer))
	}
	if c.ReplayLimit < 0 {
		err = multierr.Append(err, fmt.Errorf("config: replay limit must not be negative, got %d", c.ReplayLimit))
	}
	return err
}

func wrap(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("config: %s%s: %w", envPrefix, key, err)
}
