// Package config loads exporter settings from TOML.
//
//	optimize = true
//	log_level = "debug"
//
//	[[shapes]]
//	name = "geo.Point"
//	fields = ["X", "Y"]
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"value-exporter/exporter"
	"value-exporter/hydrate"
	"value-exporter/value"
)

// Config is the file form of exporter settings.
type Config struct {
	// Optimize enables the binding optimizer. Defaults to true.
	Optimize bool `toml:"optimize"`
	// LogLevel is one of debug, info, warn, error. Defaults to info.
	LogLevel string `toml:"log_level"`
	// Shapes declares record types used by documents.
	Shapes []Shape `toml:"shapes"`
}

// Shape declares one record type.
type Shape struct {
	Name   string   `toml:"name"`
	Fields []string `toml:"fields"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Optimize: true,
		LogLevel: "info",
	}
}

// LoadFile loads and validates the TOML file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes TOML data over the defaults and validates the result. Keys
// that do not belong to the configuration are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config TOML: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the log level and the declared shapes.
func (c *Config) Validate() error {
	var errs []error

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	seen := make(map[string]bool, len(c.Shapes))

	for i, s := range c.Shapes {
		switch {
		case s.Name == "":
			errs = append(errs, fmt.Errorf("shapes[%d]: name is required", i))
		case seen[s.Name]:
			errs = append(errs, fmt.Errorf("shapes[%d]: %s declared twice", i, s.Name))
		}

		seen[s.Name] = true

		for j, f := range s.Fields {
			if slices.Index(s.Fields, f) != j {
				errs = append(errs, fmt.Errorf("shapes[%d]: field %q listed twice", i, f))
			}
		}
	}

	return errors.Join(errs...)
}

// Level returns the parsed log level.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}

	return level
}

// Registry builds a registry of the declared shapes.
func (c *Config) Registry() (*hydrate.Registry, error) {
	shapes := make([]*value.Shape, len(c.Shapes))
	for i, s := range c.Shapes {
		shapes[i] = value.NewShape(s.Name, s.Fields...)
	}

	return hydrate.NewRegistry(shapes...)
}

// Exporter returns the exporter configuration, logging to logger.
func (c *Config) Exporter(logger *log.Logger) exporter.Config {
	return exporter.Config{
		Optimize: c.Optimize,
		Logger:   logger,
	}
}

// WriteShapes writes shapes as a [[shapes]] table that Parse accepts.
func WriteShapes(w io.Writer, shapes []*value.Shape) error {
	doc := struct {
		Shapes []Shape `toml:"shapes"`
	}{}

	for _, s := range shapes {
		doc.Shapes = append(doc.Shapes, Shape{Name: s.Name, Fields: s.Fields})
	}

	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode shapes: %w", err)
	}

	return nil
}
