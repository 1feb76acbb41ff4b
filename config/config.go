package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"strategy-engine/service"
)

// Duration wraps time.Duration so YAML can carry values like "30m" or
// "15s" instead of raw nanosecond counts.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the full runtime configuration. Every field has a working
// default so the binary runs with no file at all.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Engine EngineConfig `yaml:"engine"`
}

type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	IdleTimeout     Duration `yaml:"idle_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	RateLimit       int      `yaml:"rate_limit"`
	RateWindow      Duration `yaml:"rate_window"`
}

type RedisConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Addr     string   `yaml:"addr"`
	CacheTTL Duration `yaml:"cache_ttl"`
}

// EngineConfig tunes the analysis pipeline. Rate brackets must be listed
// from the highest score floor down.
type EngineConfig struct {
	LivingExpenseRatio   float64       `yaml:"living_expense_ratio"`
	DiscrepancyTolerance float64       `yaml:"discrepancy_tolerance"`
	ForecastHorizon      int           `yaml:"forecast_horizon_months"`
	RateTable            []RateBracket `yaml:"rate_table"`
}

type RateBracket struct {
	MinScore int     `yaml:"min_score"`
	RatePct  float64 `yaml:"rate_pct"`
}

func Default() Config {
	opts := service.DefaultOptions()
	cfg := Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration(15 * time.Second),
			WriteTimeout:    Duration(15 * time.Second),
			IdleTimeout:     Duration(60 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
			RateLimit:       5,
			RateWindow:      Duration(time.Minute),
		},
		Redis: RedisConfig{
			Enabled:  false,
			Addr:     "localhost:6379",
			CacheTTL: Duration(time.Hour),
		},
		Engine: EngineConfig{
			LivingExpenseRatio:   opts.LivingExpenseRatio,
			DiscrepancyTolerance: opts.DiscrepancyTolerance,
			ForecastHorizon:      opts.ForecastHorizon,
		},
	}
	for _, b := range opts.RateTable {
		cfg.Engine.RateTable = append(cfg.Engine.RateTable, RateBracket{
			MinScore: b.MinScore,
			RatePct:  b.RatePct,
		})
	}
	return cfg
}

// Load reads a YAML file over the defaults. A missing path is not an
// error; an unreadable or invalid file is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Engine.LivingExpenseRatio < 0 || c.Engine.LivingExpenseRatio >= 1 {
		return fmt.Errorf("living_expense_ratio must be in [0, 1), got %v", c.Engine.LivingExpenseRatio)
	}
	if c.Engine.DiscrepancyTolerance < 0 {
		return fmt.Errorf("discrepancy_tolerance must not be negative, got %v", c.Engine.DiscrepancyTolerance)
	}
	if c.Engine.ForecastHorizon <= 0 {
		return fmt.Errorf("forecast_horizon_months must be positive, got %d", c.Engine.ForecastHorizon)
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive, got %d", c.Server.RateLimit)
	}
	for i := 1; i < len(c.Engine.RateTable); i++ {
		if c.Engine.RateTable[i].MinScore >= c.Engine.RateTable[i-1].MinScore {
			return fmt.Errorf("rate_table must be ordered by descending min_score")
		}
	}
	return nil
}

// EngineOptions maps the engine section onto the service layer's options.
func (c Config) EngineOptions() service.Options {
	opts := service.Options{
		LivingExpenseRatio:   c.Engine.LivingExpenseRatio,
		DiscrepancyTolerance: c.Engine.DiscrepancyTolerance,
		ForecastHorizon:      c.Engine.ForecastHorizon,
	}
	for _, b := range c.Engine.RateTable {
		opts.RateTable = append(opts.RateTable, service.RateBracket{
			MinScore: b.MinScore,
			RatePct:  b.RatePct,
		})
	}
	return opts
}
