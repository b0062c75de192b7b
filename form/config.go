package form

import (
	"errors"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries the engine knobs that are typically tuned per deployment
// rather than per form.
type Config struct {
	// DebounceInterval is the quiet period for debounced async validators.
	DebounceInterval time.Duration `env:"FORM_DEBOUNCE_INTERVAL" envDefault:"700ms"`
	// AsyncTimeout bounds async validation; zero waits indefinitely.
	AsyncTimeout time.Duration `env:"FORM_ASYNC_TIMEOUT" envDefault:"0"`
	// DefaultStrategy names the form-level strategy, e.g. "on_first_change".
	DefaultStrategy string `env:"FORM_DEFAULT_STRATEGY" envDefault:"on_first_change"`
}

var loadDotEnv sync.Once

// LoadConfig populates Config from environment variables, loading a .env
// file first if one exists.
func LoadConfig() (Config, error) {
	loadDotEnv.Do(func() {
		// The .env file is optional; a missing file is not an error.
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if _, err := ParseStrategy(cfg.DefaultStrategy); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
