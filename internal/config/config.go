// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so TTLs are written with explicit units in the
// config file ("4h", "30m") instead of bare numbers of ambiguous unit.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`

	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`

	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	RabbitMQ struct {
		URL   string `yaml:"url"`
		Queue string `yaml:"queue"`
	} `yaml:"rabbitmq"`

	Auth struct {
		TokenSecret string `yaml:"token_secret"`
	} `yaml:"auth"`

	Demo struct {
		Enabled       bool     `yaml:"enabled"`
		DisplayEmail  string   `yaml:"display_email"`
		Password      string   `yaml:"password"`
		Domain        string   `yaml:"domain"`
		PoolSize      int      `yaml:"pool_size"`
		SessionTTL    Duration `yaml:"session_ttl"`
		DataTTL       Duration `yaml:"data_ttl"`
		SweepInterval Duration `yaml:"sweep_interval"`
		SyncFallback  bool     `yaml:"sync_fallback"`
		SyncThreshold int      `yaml:"sync_threshold"`
		LoginRate     float64  `yaml:"login_rate"`
		LoginBurst    int      `yaml:"login_burst"`
	} `yaml:"demo"`

	Seed SeedConfig `yaml:"seed"`
}

// SeedConfig controls how much data each demo workspace receives.
type SeedConfig struct {
	Shop struct {
		Brands     int `yaml:"brands"`
		Categories int `yaml:"categories"`
		Products   int `yaml:"products"`
		Customers  int `yaml:"customers"`
		Orders     int `yaml:"orders"`
	} `yaml:"shop"`
	Blog struct {
		Authors         int `yaml:"authors"`
		Categories      int `yaml:"categories"`
		Posts           int `yaml:"posts"`
		CommentsPerPost int `yaml:"comments_per_post"`
		Links           int `yaml:"links"`
	} `yaml:"blog"`
	Reports int `yaml:"reports"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a config pre-filled with the values the demo system ships
// with; LoadConfig overlays the file on top of it.
func Default() *Config {
	cfg := &Config{}
	cfg.Environment = "development"
	cfg.LogLevel = "info"
	cfg.HTTP.Addr = ":8080"
	cfg.RabbitMQ.Queue = "demo_replenish"
	cfg.Auth.TokenSecret = "demo-pool-dev-secret"
	cfg.Demo.Enabled = true
	cfg.Demo.DisplayEmail = "demo@demo.example.com"
	cfg.Demo.Password = "demo2024"
	cfg.Demo.Domain = "demo.example.com"
	cfg.Demo.PoolSize = 50
	cfg.Demo.SessionTTL = Duration(4 * time.Hour)
	cfg.Demo.DataTTL = Duration(24 * time.Hour)
	cfg.Demo.SweepInterval = Duration(time.Hour)
	cfg.Demo.SyncFallback = true
	cfg.Demo.SyncThreshold = 5
	cfg.Demo.LoginRate = 5
	cfg.Demo.LoginBurst = 10

	cfg.Seed.Shop.Brands = 5
	cfg.Seed.Shop.Categories = 5
	cfg.Seed.Shop.Products = 20
	cfg.Seed.Shop.Customers = 50
	cfg.Seed.Shop.Orders = 100
	cfg.Seed.Blog.Authors = 3
	cfg.Seed.Blog.Categories = 5
	cfg.Seed.Blog.Posts = 15
	cfg.Seed.Blog.CommentsPerPost = 5
	cfg.Seed.Blog.Links = 10
	cfg.Seed.Reports = 4
	return cfg
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}
	if c.Demo.PoolSize < 1 {
		return fmt.Errorf("demo.pool_size must be positive, got %d", c.Demo.PoolSize)
	}
	if c.Demo.SessionTTL <= 0 {
		return fmt.Errorf("demo.session_ttl must be positive")
	}
	if c.Demo.DataTTL < c.Demo.SessionTTL {
		return fmt.Errorf("demo.data_ttl must be at least demo.session_ttl")
	}
	if c.Demo.SyncThreshold < 0 {
		return fmt.Errorf("demo.sync_threshold must not be negative")
	}
	if c.Demo.DisplayEmail == "" || c.Demo.Password == "" {
		return fmt.Errorf("demo.display_email and demo.password are required")
	}
	return nil
}
