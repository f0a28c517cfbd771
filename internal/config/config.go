// Package config loads vokabel settings from an optional YAML file,
// VOKABEL_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/abhisek/vokabel/internal/mastery"
	"github.com/abhisek/vokabel/internal/selection"
	"github.com/abhisek/vokabel/internal/vocab"
)

// EnvPrefix is prepended to every environment override, e.g. VOKABEL_LOG_LEVEL.
const EnvPrefix = "VOKABEL"

// Config holds all configuration for the application.
type Config struct {
	Levels     []string         `mapstructure:"levels"`
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
	Store      StoreConfig      `mapstructure:"store"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Log        LogConfig        `mapstructure:"log"`
}

// SchedulingConfig holds the state machine and selection tunables.
type SchedulingConfig struct {
	DailyNewItemLimit int `mapstructure:"daily_new_item_limit"`
	MasteryGoal       int `mapstructure:"mastery_goal"`
	HardWordThreshold int `mapstructure:"hard_word_threshold"`
	HistoryMaxLength  int `mapstructure:"history_max_length"`
	RivalThreshold    int `mapstructure:"rival_threshold"`
	BatchSize         int `mapstructure:"batch_size"`
}

// StoreConfig holds the database location. An empty path means the default.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// CatalogConfig holds the directory of per-level catalog files.
type CatalogConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New returns a viper instance with defaults and environment overrides set up.
// Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file and unmarshals the result. An explicit file
// must exist; otherwise vokabel.yaml is looked up in the working directory
// and $XDG_CONFIG_HOME/vokabel, and its absence is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("vokabel")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configHome(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "vokabel"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("levels", []string{"a1", "a2", "b1"})

	v.SetDefault("scheduling.daily_new_item_limit", selection.DefaultDailyNewItemLimit)
	v.SetDefault("scheduling.mastery_goal", mastery.DefaultMasteryGoal)
	v.SetDefault("scheduling.hard_word_threshold", mastery.DefaultHardWordThreshold)
	v.SetDefault("scheduling.history_max_length", mastery.DefaultHistoryMaxLength)
	v.SetDefault("scheduling.rival_threshold", selection.DefaultRivalThreshold)
	v.SetDefault("scheduling.batch_size", selection.DefaultBatchSize)

	v.SetDefault("store.path", "")
	v.SetDefault("catalog.dir", "output")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate rejects settings the scheduler cannot run with.
func (c *Config) Validate() error {
	levels := c.LevelList()
	if len(levels) == 0 {
		return errors.New("config: at least one level is required")
	}
	if lo.Contains(levels, vocab.Level(vocab.MixScope)) {
		return fmt.Errorf("config: %q is reserved and cannot be a level", vocab.MixScope)
	}
	if len(lo.Uniq(levels)) != len(levels) {
		return errors.New("config: levels must be unique")
	}
	s := c.Scheduling
	switch {
	case s.DailyNewItemLimit < 1:
		return errors.New("config: scheduling.daily_new_item_limit must be at least 1")
	case s.MasteryGoal < 1:
		return errors.New("config: scheduling.mastery_goal must be at least 1")
	case s.HardWordThreshold < 1:
		return errors.New("config: scheduling.hard_word_threshold must be at least 1")
	case s.HistoryMaxLength < 1:
		return errors.New("config: scheduling.history_max_length must be at least 1")
	case s.RivalThreshold < 1:
		return errors.New("config: scheduling.rival_threshold must be at least 1")
	case s.BatchSize < 1:
		return errors.New("config: scheduling.batch_size must be at least 1")
	}
	return nil
}

// LevelList returns the configured levels, normalized and in order.
func (c *Config) LevelList() []vocab.Level {
	levels := lo.Map(c.Levels, func(s string, _ int) vocab.Level { return vocab.NormalizeLevel(s) })
	return lo.Filter(levels, func(l vocab.Level, _ int) bool { return l != "" })
}

// Rules returns the state machine parameters.
func (c *Config) Rules() mastery.Rules {
	return mastery.Rules{
		MasteryGoal:       c.Scheduling.MasteryGoal,
		HardWordThreshold: c.Scheduling.HardWordThreshold,
		HistoryMaxLength:  c.Scheduling.HistoryMaxLength,
	}
}

// Selection returns the batch composition parameters.
func (c *Config) Selection() selection.Config {
	return selection.Config{
		DailyNewItemLimit: c.Scheduling.DailyNewItemLimit,
		BatchSize:         c.Scheduling.BatchSize,
		RivalThreshold:    c.Scheduling.RivalThreshold,
	}
}

func configHome() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir, nil
	}
	return os.UserConfigDir()
}
