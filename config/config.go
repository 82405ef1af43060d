package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type (
	// Config ...
	Config struct {
		Server struct {
			Addr string `yaml:"addr"`
		} `yaml:"server"`
		Database struct {
			Path string `yaml:"path"`
		} `yaml:"database"`
		Auth      Auth   `yaml:"auth"`
		ProjectID string `yaml:"projectID"`
		Backup    struct {
			Bucket string `yaml:"bucket"`
			Object string `yaml:"object"`
		} `yaml:"backup"`
		Telegram struct {
			Token  string `yaml:"token"`
			ChatID int64  `yaml:"chatID"`
		} `yaml:"telegram"`
	}

	// Auth ...
	Auth struct {
		Users       []User   `yaml:"users"`
		JWTSecret   string   `yaml:"jwtSecret"`
		JWTSecretID string   `yaml:"jwtSecretID"`
		TokenTTL    Duration `yaml:"tokenTTL"`
	}

	// User ...
	User struct {
		Name     string `yaml:"name"`
		Password string `yaml:"password"`
	}

	// Duration unmarshals Go duration strings like "24h".
	Duration time.Duration
)

// UnmarshalYAML ...
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("error parsing duration '%s': %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Load ...
func Load() (*Config, error) {
	confFile := os.Getenv("CONF_FILE")
	if confFile == "" {
		confFile = "config.yml"
	}
	b, err := os.ReadFile(confFile)
	if err != nil {
		return nil, fmt.Errorf("error reading config file '%s': %w", confFile, err)
	}
	var conf Config
	if err := yaml.Unmarshal(b, &conf); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	conf.applyDefaults()
	return &conf, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Database.Path == "" {
		c.Database.Path = "killshot.db"
	}
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = Duration(30 * 24 * time.Hour)
	}
}

// FindUser ...
func (a *Auth) FindUser(name string) *User {
	for i := range a.Users {
		if a.Users[i].Name == name {
			return &a.Users[i]
		}
	}
	return nil
}
