package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Auth struct {
		SigningKey      string `yaml:"signing_key"`
		AccessTTLMins   int    `yaml:"access_ttl_minutes"`
		RefreshTTLHours int    `yaml:"refresh_ttl_hours"`
	} `yaml:"auth"`
	Firebase struct {
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"firebase"`
	Storage struct {
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
	} `yaml:"storage"`
	Gateway struct {
		KeyID     string `yaml:"key_id"`
		KeySecret string `yaml:"key_secret"`
		BaseURL   string `yaml:"base_url"`
	} `yaml:"gateway"`
	Wages struct {
		Timezone string `yaml:"timezone"`
		RunHour  int    `yaml:"run_hour"`
	} `yaml:"wages"`
}

func LoadConfig() Config {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		log.Fatalf("Failed to unmarshal config data: %v", err)
	}

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if key := os.Getenv("JWT_SIGNING_KEY"); key != "" {
		cfg.Auth.SigningKey = key
	}
	if cfg.Wages.Timezone == "" {
		cfg.Wages.Timezone = "Asia/Kolkata"
	}
	if cfg.Wages.RunHour == 0 {
		cfg.Wages.RunHour = 20
	}
	return cfg
}
