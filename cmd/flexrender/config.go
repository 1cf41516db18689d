package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"

	"github.com/benoitkugler/flexrender/logger"
)

type (
	// PageConfig provides default values for the page setup,
	// overridden by the @page rules of the document.
	PageConfig struct {
		// Size is a CSS "size" value, like "A5 landscape" or "100px 50px"
		Size     string `toml:"size"`
		Margin   string `toml:"margin"`
		FontSize string `toml:"font_size"`
	}

	Config struct {
		LogLevel string     `toml:"log_level"`
		Format   string     `toml:"format"`
		Page     PageConfig `toml:"page"`
	}
)

func defaultConfig() Config {
	return Config{LogLevel: "warn", Format: formatYAML}
}

// loadConfig reads the TOML file at path, on top of the default
// configuration. An empty path returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("unable to read configuration: %w", err)
	}
	// We want to use only fields we defined
	for _, key := range md.Undecoded() {
		err = multierr.Append(err, fmt.Errorf("unknown configuration key %q", key.String()))
	}
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.validate()
}

func (cfg Config) validate() (err error) {
	if _, er := logger.ParseLevel(cfg.LogLevel); er != nil {
		err = multierr.Append(err, fmt.Errorf("invalid log_level: %w", er))
	}
	if !isFormat(cfg.Format) {
		err = multierr.Append(err, fmt.Errorf("invalid format %q (supported formats: %s)", cfg.Format, strings.Join(formats, ", ")))
	}
	return err
}

// stylesheet returns a <style> element applying the page setup,
// to be inserted before the document, or an empty string.
func (p PageConfig) stylesheet() string {
	var page []string
	if p.Size != "" {
		page = append(page, "size: "+p.Size)
	}
	if p.Margin != "" {
		page = append(page, "margin: "+p.Margin)
	}
	var rules []string
	if len(page) != 0 {
		rules = append(rules, "@page { "+strings.Join(page, "; ")+" }")
	}
	if p.FontSize != "" {
		rules = append(rules, "html { font-size: "+p.FontSize+" }")
	}
	if len(rules) == 0 {
		return ""
	}
	return "<style>" + strings.Join(rules, " ") + "</style>"
}
