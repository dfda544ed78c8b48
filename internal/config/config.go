package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Port int `yaml:"port"`
}

type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQ struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Catalog holds the pricing knobs for pizza flavor surcharges. Sizes not
// listed in SpecialSurcharge carry no special-flavor surcharge.
type Catalog struct {
	SpecialSurcharge     map[string]float64 `yaml:"special_surcharge"`
	ThreeFlavorSurcharge float64            `yaml:"three_flavor_surcharge"`
	ExtraSpecialFlavors  []string           `yaml:"extra_special_flavors"`
}

type Delivery struct {
	DefaultFee float64 `yaml:"default_fee"`
}

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	Database Database `yaml:"database"`
	RabbitMQ RabbitMQ `yaml:"rabbitmq"`
	Catalog  Catalog  `yaml:"catalog"`
	Delivery Delivery `yaml:"delivery"`
}

// Load reads and validates a YAML config file, applying defaults for
// anything the file leaves out.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := defaults()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		HTTP:     HTTP{Port: 3000},
		Database: Database{Port: 5432},
		RabbitMQ: RabbitMQ{Port: 5672},
		Catalog: Catalog{
			SpecialSurcharge: map[string]float64{
				"pequeña": 2000,
				"mediana": 3000,
				"grande":  4000,
			},
			ThreeFlavorSurcharge: 3000,
		},
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" || c.Database.Database == "" {
		return fmt.Errorf("invalid config: database host and name are required")
	}
	if c.RabbitMQ.Host == "" {
		return fmt.Errorf("invalid config: rabbitmq host is required")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid config: http port %d out of range", c.HTTP.Port)
	}
	return nil
}

// Find returns the first existing config path among the usual candidates.
func Find() (string, error) {
	candidates := []string{"config.yaml", "deploy/config.example.yaml"}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no config file found (tried %v)", candidates)
}
