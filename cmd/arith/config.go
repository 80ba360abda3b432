package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// config is the calculator configuration. It is read from a YAML file, then
// command-line options override it.
type config struct {
	// Type is the number representation, double or big.
	Type string `yaml:"type"`
	// Prec is the precision in bits for big.
	Prec uint `yaml:"prec"`
	// Format is the fmt verb for results.
	Format string `yaml:"format"`
	// Locale, if set, formats results for a language instead of with Format.
	Locale string `yaml:"locale"`
	// Constants binds pi and e before other variables.
	Constants bool `yaml:"constants"`
	// Vars maps variable names to numbers or expressions.
	Vars map[string]any `yaml:"vars"`

	// defs are the -d definitions, in order. They are applied after Vars.
	defs [][2]string
	echo bool
	repl bool
}

func defaultConfig() *config {
	return &config{
		Type:   "double",
		Prec:   64,
		Format: "%g",
	}
}

// loadConfig reads a YAML configuration over the defaults. Unknown fields are
// errors. An empty document gives the defaults.
func loadConfig(r io.Reader) (*config, error) {
	cfg := defaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// definitions returns the variable definitions from the config file in
// sorted order followed by those from the command line.
func (cfg *config) definitions() ([][2]string, error) {
	names := make([]string, 0, len(cfg.Vars))
	for k := range cfg.Vars {
		names = append(names, k)
	}
	sort.Strings(names)
	r := make([][2]string, 0, len(names)+len(cfg.defs))
	for _, name := range names {
		src, err := varText(cfg.Vars[name])
		if err != nil {
			return nil, fmt.Errorf("config: variable %s: %w", name, err)
		}
		r = append(r, [2]string{name, src})
	}
	return append(r, cfg.defs...), nil
}

// varText converts a YAML scalar to expression text.
func varText(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("value must be a number or expression, not %T", v)
	}
}
