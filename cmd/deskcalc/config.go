package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"fortio.org/log"
	"github.com/BurntSushi/toml"
)

// config holds settings from the configuration file. Command-line options
// override them.
type config struct {
	Prompt            string `toml:"prompt"`
	Intro             string `toml:"intro"`
	IntroFile         string `toml:"intro_file"`
	Color             bool   `toml:"color"`
	GroupDigits       bool   `toml:"group_digits"`
	Precision         int    `toml:"precision"`
	PhysicalConstants bool   `toml:"physical_constants"`
	KeepGoing         bool   `toml:"keep_going"`
	LogLevel          string `toml:"log_level"`
}

func defaultConfig() config {
	return config{
		Prompt:    "> ",
		Intro:     "deskcalc: type help for a list of commands",
		Color:     true,
		Precision: 12,
		LogLevel:  "info",
	}
}

// defaultConfigPath returns the config file used when -c is not given.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "deskcalc", "config.toml")
}

// loadConfig reads the config file at path over the defaults. If path is
// empty, the default location is used, and it is not an error for that file
// to be missing.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	for _, k := range md.Undecoded() {
		log.Warnf("%s: unknown setting %q", path, k.String())
	}
	log.LogVf("loaded config from %s", path)
	return cfg, nil
}

// intro returns the banner shown when the REPL starts.
func (cfg *config) intro() string {
	if cfg.IntroFile == "" {
		return cfg.Intro
	}
	b, err := os.ReadFile(cfg.IntroFile)
	if err != nil {
		log.Warnf("reading intro: %v", err)
		return cfg.Intro
	}
	return string(b)
}
