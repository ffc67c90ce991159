// SPDX-FileCopyrightText: The skyquorum authors
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Xuanwo/go-locale"
	"github.com/kkyr/fig"
	"golang.org/x/text/language"
)

const configEnv = "SKYQUORUM"

// Config represents the application's configuration structure.
type Config struct {
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Fetch struct {
		Timeout    time.Duration `fig:"timeout" default:"10s"`
		Sequential bool          `fig:"sequential"`
		Exclude    []string      `fig:"exclude"`
	} `fig:"fetch"`

	Credentials struct {
		WeatherAPI    string `fig:"weatherapi"`
		Weatherstack  string `fig:"weatherstack"`
		Meteosource   string `fig:"meteosource"`
		PirateWeather string `fig:"pirateweather"`
		TomorrowIO    string `fig:"tomorrowio"`
	} `fig:"credentials"`

	Server struct {
		Addr            string        `fig:"addr" default:":8080"`
		Cities          []string      `fig:"cities"`
		RefreshInterval time.Duration `fig:"refresh_interval" default:"15m"`
	} `fig:"server"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("invalid fetch timeout: %s", c.Fetch.Timeout)
	}
	if c.Server.RefreshInterval < time.Minute {
		return fmt.Errorf("refresh interval too short: %s", c.Server.RefreshInterval)
	}
	return nil
}

// Language returns the configured locale as a language tag, falling back to
// system locale detection and finally to English.
func (c *Config) Language() language.Tag {
	if c.Locale != "" {
		return language.Make(c.Locale)
	}
	tag, err := locale.Detect()
	if err != nil {
		return language.English
	}
	return tag
}
