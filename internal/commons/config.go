package commons

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"mobiliario/internal/config"
)

// fileConfig mirrors config.Config with durations as strings, since yaml
// has no native duration scalar.
type fileConfig struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		User            string `yaml:"user"`
		Password        string `yaml:"password"`
		Name            string `yaml:"name"`
		MaxOpenConns    int    `yaml:"maxOpenConns"`
		MaxIdleConns    int    `yaml:"maxIdleConns"`
		ConnMaxLifetime string `yaml:"connMaxLifetime"`
	} `yaml:"database"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Batch struct {
		Interval   string `yaml:"interval"`
		JobTimeout string `yaml:"jobTimeout"`
	} `yaml:"batch"`
}

func LoadConfig(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	connMaxLifetime, err := parseDuration(fc.Database.ConnMaxLifetime, "database.connMaxLifetime")
	if err != nil {
		return nil, err
	}
	batchInterval, err := parseDuration(fc.Batch.Interval, "batch.interval")
	if err != nil {
		return nil, err
	}
	jobTimeout, err := parseDuration(fc.Batch.JobTimeout, "batch.jobTimeout")
	if err != nil {
		return nil, err
	}

	return &config.Config{
		Server: config.ServerConfig{
			Port: fc.Server.Port,
		},
		Database: config.DatabaseConfig{
			Host:            fc.Database.Host,
			Port:            fc.Database.Port,
			User:            fc.Database.User,
			Password:        fc.Database.Password,
			Name:            fc.Database.Name,
			MaxOpenConns:    fc.Database.MaxOpenConns,
			MaxIdleConns:    fc.Database.MaxIdleConns,
			ConnMaxLifetime: connMaxLifetime,
		},
		Log: config.LogConfig{
			Level: fc.Log.Level,
		},
		Batch: config.BatchConfig{
			Interval:   batchInterval,
			JobTimeout: jobTimeout,
		},
	}, nil
}

func parseDuration(value, key string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return d, nil
}
