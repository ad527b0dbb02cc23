// Package config loads the CLI configuration with priority env > file > defaults.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"pvmcts/experiments"
	"pvmcts/meta"
	"pvmcts/searcher"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const envPrefix = "PVMCTS_"

type Config struct {
	Search     SearchConfig     `yaml:"search"`
	Game       GameConfig       `yaml:"game"`
	Experiment ExperimentConfig `yaml:"experiment"`
	LogLevel   string           `yaml:"log_level"`
}

type SearchConfig struct {
	MaxSteps    int     `yaml:"max_steps"`
	Simulations int     `yaml:"simulations"`
	Exploration float64 `yaml:"exploration"`
	Temperature float64 `yaml:"temperature"`
	Seed        uint64  `yaml:"seed"` // 0 seeds from the clock
	Rescale     string  `yaml:"rescale"`
	// "power" adds numActions^remainingDepth to terminal nodes, "none" disables it
	TerminalBonus string `yaml:"terminal_bonus"`
}

type GameConfig struct {
	Name   string `yaml:"name"` // walk or tictactoe
	Target int    `yaml:"target"`
	Start  int    `yaml:"start"`
}

type ExperimentConfig struct {
	Games     int    `yaml:"games"`
	Parallel  int    `yaml:"parallel"`
	OutputDir string `yaml:"output_dir"`
}

func DefaultConfig() Config {
	settings := experiments.DefaultSettings()
	return Config{
		Search: SearchConfig{
			MaxSteps:      meta.MaxSteps,
			Simulations:   meta.Simulations,
			Exploration:   meta.Exploration,
			Temperature:   meta.Temperature,
			Rescale:       searcher.RescaleNone.String(),
			TerminalBonus: "power",
		},
		Game: GameConfig{
			Name:   "walk",
			Target: settings.WalkTarget,
			Start:  1,
		},
		Experiment: ExperimentConfig{
			Games:     settings.Games,
			Parallel:  settings.Parallel,
			OutputDir: settings.OutputDir,
		},
		LogLevel: "info",
	}
}

// Load reads path on top of the defaults, then applies PVMCTS_*
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	config := DefaultConfig()

	if path != "" {
		if err := loadFile(path, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := loadEnv(&config); err != nil {
		return config, fmt.Errorf("load config env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, config)
}

func loadEnv(config *Config) error {
	ints := map[string]*int{
		"MAX_STEPS":        &config.Search.MaxSteps,
		"SIMULATIONS":      &config.Search.Simulations,
		"GAME_TARGET":      &config.Game.Target,
		"GAME_START":       &config.Game.Start,
		"EXPERIMENT_GAMES": &config.Experiment.Games,
		"PARALLEL":         &config.Experiment.Parallel,
	}
	for name, field := range ints {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			i, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*field = i
		}
	}

	floats := map[string]*float64{
		"EXPLORATION": &config.Search.Exploration,
		"TEMPERATURE": &config.Search.Temperature,
	}
	for name, field := range floats {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*field = f
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", envPrefix, err)
		}
		config.Search.Seed = seed
	}

	texts := map[string]*string{
		"RESCALE":        &config.Search.Rescale,
		"TERMINAL_BONUS": &config.Search.TerminalBonus,
		"GAME":           &config.Game.Name,
		"OUTPUT_DIR":     &config.Experiment.OutputDir,
		"LOG_LEVEL":      &config.LogLevel,
	}
	for name, field := range texts {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*field = v
		}
	}
	return nil
}

func (c Config) Validate() error {
	if c.Search.MaxSteps < 1 {
		return fmt.Errorf("max_steps must be >= 1")
	}
	if c.Search.Simulations < 1 {
		return fmt.Errorf("simulations must be >= 1")
	}
	if c.Search.Exploration < 0 || math.IsNaN(c.Search.Exploration) || math.IsInf(c.Search.Exploration, 0) {
		return fmt.Errorf("exploration must be >= 0 and finite")
	}
	if !(c.Search.Temperature > 0) || math.IsInf(c.Search.Temperature, 0) {
		return fmt.Errorf("temperature must be > 0 and finite")
	}
	if _, err := searcher.ParseRescale(c.Search.Rescale); err != nil {
		return err
	}
	if _, err := c.terminalBonus(); err != nil {
		return err
	}
	switch c.Game.Name {
	case "walk":
		if c.Game.Target < 1 {
			return fmt.Errorf("target must be >= 1")
		}
	case "tictactoe":
	default:
		return fmt.Errorf("unknown game %q", c.Game.Name)
	}
	if c.Experiment.Games < 1 {
		return fmt.Errorf("games must be >= 1")
	}
	if c.Experiment.Parallel < 1 {
		return fmt.Errorf("parallel must be >= 1")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c Config) terminalBonus() (searcher.TerminalBonus, error) {
	switch c.Search.TerminalBonus {
	case "", "power":
		return searcher.PowerBonus, nil
	case "none":
		return searcher.NoBonus, nil
	}
	return nil, fmt.Errorf("unknown terminal bonus %q", c.Search.TerminalBonus)
}

// Options converts the search section into engine options.
func (c Config) Options() ([]searcher.Option, error) {
	rescale, err := searcher.ParseRescale(c.Search.Rescale)
	if err != nil {
		return nil, err
	}
	bonus, err := c.terminalBonus()
	if err != nil {
		return nil, err
	}

	options := []searcher.Option{
		searcher.WithMaxSteps(c.Search.MaxSteps),
		searcher.WithSimulations(c.Search.Simulations),
		searcher.WithExploration(c.Search.Exploration),
		searcher.WithTemperature(c.Search.Temperature),
		searcher.WithRescale(rescale),
		searcher.WithTerminalBonus(bonus),
		searcher.WithMetrics(),
	}
	if c.Search.Seed != 0 {
		options = append(options, searcher.WithSeed(c.Search.Seed))
	}
	return options, nil
}

func (c Config) Settings() experiments.Settings {
	return experiments.Settings{
		Games:      c.Experiment.Games,
		Parallel:   c.Experiment.Parallel,
		OutputDir:  c.Experiment.OutputDir,
		Seed:       c.Search.Seed,
		WalkTarget: c.Game.Target,
	}
}

func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
