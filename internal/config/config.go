// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/robalobadob/wordgame/internal/game"
	"github.com/robalobadob/wordgame/internal/words"
)

// Config holds every setting shared by the server and the terminal client.
type Config struct {
	Port         string        `env:"PORT" envDefault:"5175"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFile      string        `env:"LOG_FILE"` // terminal client only; empty discards logs
	WordsFile    string        `env:"WORDS_FILE"`
	WordsDB      string        `env:"WORDS_DB"`
	WordLength   int           `env:"WORD_LENGTH" envDefault:"5"`
	RandomSeed   int64         `env:"RANDOM_SEED"` // 0 seeds from the clock
	DailySalt    string        `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	TokenSecret  string        `env:"TOKEN_SECRET" envDefault:"dev_secret_change_me"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	ClientOrigin string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	OTelEnabled  bool          `env:"OTEL_ENABLED" envDefault:"false"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if !game.ValidWordLength(c.WordLength) {
		return Config{}, fmt.Errorf("WORD_LENGTH %d: must be between %d and %d",
			c.WordLength, game.MinWordLength, game.MaxWordLength)
	}
	return c, nil
}

// WordsOptions maps the config onto the word pool loader options.
func (c Config) WordsOptions() words.Options {
	return words.Options{File: c.WordsFile, BankDB: c.WordsDB}
}

// Rand returns the random generator for word picks.
func (c Config) Rand() *rand.Rand {
	seed := c.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
