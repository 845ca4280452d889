// Package config holds runtime settings for hashed-rename. Settings come
// from the environment, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/dendrascience/hashed-rename/pathcode"
	"github.com/dendrascience/hashed-rename/unhash"
	"github.com/dendrascience/hashed-rename/util"
	"github.com/joho/godotenv"
)

const envPrefix = "HASHED_RENAME_"

// Config holds all runtime settings. Build it with DefaultConfig or Load.
type Config struct {
	DictionaryPath string   // Default: qar_dictionary.txt next to the executable.
	DictionaryName string   // File name that marks a positional arg as the dictionary.
	Hasher         string   // "pathcode64" (default) or "strcode64".
	Workers        int      // Dictionary build workers. Default: runtime.NumCPU().
	DeleteAttempts int      // Merge target delete checks before giving up. Default: 50.
	DeleteInterval time.Duration
	SkipPatterns   []string // gitignore-style patterns. Default: *.txt.
	Suffixes       []string // Archive directory suffixes.
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		DictionaryPath: defaultDictionaryPath(),
		DictionaryName: util.DefaultDictionaryName,
		Hasher:         pathcode.NamePathCode64,
		Workers:        runtime.NumCPU(),
		DeleteAttempts: util.DefaultDeleteAttempts,
		DeleteInterval: util.DefaultDeleteInterval,
		SkipPatterns:   append([]string(nil), unhash.DefaultSkipPatterns...),
		Suffixes:       append([]string(nil), unhash.DefaultArchiveSuffixes...),
	}
}

// Load reads envFile if it exists, then overlays HASHED_RENAME_* variables on
// the defaults. Unparseable numbers and durations keep their defaults.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := DefaultConfig()
	cfg.DictionaryPath = getEnv("DICTIONARY", cfg.DictionaryPath)
	cfg.DictionaryName = getEnv("DICTIONARY_NAME", cfg.DictionaryName)
	cfg.Hasher = getEnv("HASHER", cfg.Hasher)
	cfg.Workers = getEnvAsInt("WORKERS", cfg.Workers)
	cfg.DeleteAttempts = getEnvAsInt("DELETE_ATTEMPTS", cfg.DeleteAttempts)
	cfg.DeleteInterval = getEnvAsDuration("DELETE_INTERVAL", cfg.DeleteInterval)
	cfg.SkipPatterns = getEnvAsList("SKIP", cfg.SkipPatterns)
	cfg.Suffixes = getEnvAsList("SUFFIXES", cfg.Suffixes)

	if _, err := pathcode.ByName(cfg.Hasher); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Mover returns the mover configured by cfg.
func (c Config) Mover() util.Mover {
	return util.Mover{DeleteAttempts: c.DeleteAttempts, DeleteInterval: c.DeleteInterval}
}

// Classifier returns a classifier for the configured suffixes.
func (c Config) Classifier() unhash.Classifier {
	return unhash.NewClassifier(unhash.NewSuffixSet(c.Suffixes...))
}

// Collector returns an input collector for the configured suffixes and skip list.
func (c Config) Collector() unhash.Collector {
	return unhash.Collector{Classifier: c.Classifier(), Skip: unhash.NewSkipList(c.SkipPatterns...)}
}

func defaultDictionaryPath() string {
	exe, err := os.Executable()
	if err != nil {
		return util.DefaultDictionaryName
	}
	return filepath.Join(filepath.Dir(exe), util.DefaultDictionaryName)
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(envPrefix + key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
