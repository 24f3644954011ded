// Package config loads application settings from YAML, the environment and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath は CONFIG_PATH 未設定時に読み込む設定ファイルです。
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr        string   `yaml:"addr"`
		CORSOrigins []string `yaml:"cors_origins"`
		GinMode     string   `yaml:"gin_mode"`
		// ExportRatePerMinute が0なら制限なし
		ExportRatePerMinute int `yaml:"export_rate_per_minute"`
	} `yaml:"server"`
	Database struct {
		Driver  string `yaml:"driver"` // sqlite / postgres
		DSN     string `yaml:"dsn"`
		Migrate bool   `yaml:"migrate"`
	} `yaml:"database"`
	Redis struct {
		Enabled  bool          `yaml:"enabled"`
		Host     string        `yaml:"host"`
		Port     string        `yaml:"port"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		TTL      time.Duration `yaml:"ttl"`
		// RefreshHour が0以上なら、その時刻を過ぎたエントリは無効になる
		RefreshHour int    `yaml:"refresh_hour"`
		RefreshTZ   string `yaml:"refresh_tz"`
	} `yaml:"redis"`
	Generator struct {
		DefaultSeed *int64 `yaml:"default_seed"`
		RandomSeed  bool   `yaml:"random_seed"`
		// 平均回帰のパラメータ。キーが無いときだけ既定値を入れる（0 は有効な値）
		UpperBound  *float64 `yaml:"upper_bound"`
		LowerBound  *float64 `yaml:"lower_bound"`
		Damping     *float64 `yaml:"damping"`
		MaxSpanDays int      `yaml:"max_span_days"`
		CalendarMIC string   `yaml:"calendar_mic"`
	} `yaml:"generator"`
	Instruments []Instrument `yaml:"instruments"`
	Ingest      struct {
		Cron       string        `yaml:"cron"`
		OutputSize int           `yaml:"outputsize"`
		Timeout    time.Duration `yaml:"timeout"`
	} `yaml:"ingest"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // json / text
	} `yaml:"log"`
}

// Instrument は銘柄プロファイルの追加・上書きです。
type Instrument struct {
	Name          string  `yaml:"name"`
	StartingPrice float64 `yaml:"starting_price"`
	Volatility    float64 `yaml:"volatility"`
}

// Load reads config from a YAML file, then applies environment variable overrides
// and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Redis.RefreshHour = -1

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

// LoadFromEnv は CONFIG_PATH（未設定なら DefaultPath）から設定を読み込みます。
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	return Load(path)
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Server.Addr, "SERVER_ADDR")
	setString(&cfg.Server.GinMode, "GIN_MODE")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}
	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.DSN, "DB_DSN")
	if v := os.Getenv("RUN_MIGRATIONS"); v != "" {
		cfg.Database.Migrate = v == "true"
	}
	setString(&cfg.Redis.Host, "REDIS_HOST")
	setString(&cfg.Redis.Port, "REDIS_PORT")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	if cfg.Redis.Host != "" {
		cfg.Redis.Enabled = true
	}
	setString(&cfg.Generator.CalendarMIC, "CALENDAR_MIC")
	setString(&cfg.Ingest.Cron, "INGEST_CRON")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Format, "LOG_FORMAT")

	if v := os.Getenv("SERIES_SEED"); v != "" {
		if strings.EqualFold(v, "random") {
			cfg.Generator.RandomSeed = true
			cfg.Generator.DefaultSeed = nil
		} else {
			seed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("SERIES_SEED: %w", err)
			}
			cfg.Generator.DefaultSeed = &seed
			cfg.Generator.RandomSeed = false
		}
	}
	if v := os.Getenv("REDIS_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REDIS_TTL: %w", err)
		}
		cfg.Redis.TTL = ttl
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "data/candles.db"
	}
	if cfg.Redis.Port == "" {
		cfg.Redis.Port = "6379"
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = 5 * time.Minute
	}
	if cfg.Generator.DefaultSeed == nil && !cfg.Generator.RandomSeed {
		seed := int64(42)
		cfg.Generator.DefaultSeed = &seed
	}
	if cfg.Generator.UpperBound == nil {
		cfg.Generator.UpperBound = float64Ptr(1.2)
	}
	if cfg.Generator.LowerBound == nil {
		cfg.Generator.LowerBound = float64Ptr(0.8)
	}
	if cfg.Generator.Damping == nil {
		cfg.Generator.Damping = float64Ptr(0.1)
	}
	if cfg.Generator.MaxSpanDays == 0 {
		cfg.Generator.MaxSpanDays = 7320
	}
	if cfg.Ingest.Timeout <= 0 {
		cfg.Ingest.Timeout = 5 * time.Minute
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}
	if c.Generator.LowerBound != nil && c.Generator.UpperBound != nil && *c.Generator.LowerBound >= *c.Generator.UpperBound {
		errs = append(errs, errors.New("generator.lower_bound must be below generator.upper_bound"))
	}
	if c.Generator.Damping != nil && *c.Generator.Damping < 0 {
		errs = append(errs, errors.New("generator.damping must not be negative"))
	}
	if c.Generator.MaxSpanDays < 0 {
		errs = append(errs, errors.New("generator.max_span_days must not be negative"))
	}
	if c.Redis.RefreshHour > 23 {
		errs = append(errs, errors.New("redis.refresh_hour must be between 0 and 23"))
	}
	if c.Server.ExportRatePerMinute < 0 {
		errs = append(errs, errors.New("server.export_rate_per_minute must not be negative"))
	}
	if c.Ingest.OutputSize < 0 {
		errs = append(errs, errors.New("ingest.outputsize must not be negative"))
	}
	for i, in := range c.Instruments {
		if strings.TrimSpace(in.Name) == "" || in.StartingPrice <= 0 || in.Volatility <= 0 {
			errs = append(errs, fmt.Errorf("instruments[%d]: name, starting_price and volatility are required", i))
		}
	}
	return errors.Join(errs...)
}

// RedisAddr は host:port を返します。
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

// RefreshLocation は redis.refresh_tz を読み込みます。未設定・不正な場合はUTCです。
func (c *Config) RefreshLocation() *time.Location {
	if c.Redis.RefreshTZ == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Redis.RefreshTZ)
	if err != nil {
		return time.UTC
	}
	return loc
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func float64Ptr(v float64) *float64 {
	return &v
}
