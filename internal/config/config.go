package config

import (
	"encoding/json"
	"os"
)

type Config struct {
	OutCSV   string `json:"out_csv"`
	OutJSON  string `json:"out_json"`
	History  string `json:"history_db"`
	LogFile  string `json:"log_file"`
	LogLevel string `json:"log_level"`
}

// LoadConfig loads a JSON config from the given path. If path is empty, looks for ./config.json.
// A missing file is not an error: defaults are returned so the tool works with flags alone.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = "config.json"
	}
	f, err := os.Open(path)
	if err != nil {
		// not fatal: return defaults
		return &Config{}, nil
	}
	defer f.Close()
	var c Config
	dec := json.NewDecoder(f)
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
