package config

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix = "PHOMVA_"
	envFile   = envPrefix + "CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PHOMVA_CONFIG is set
//  3. env (prefix PHOMVA_, "__" separates nested keys)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(envFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// PHOMVA_LOG_LEVEL -> log_level, PHOMVA_MVA__USEVALUEMAPS -> mva.useValueMaps.
	// Env keys resolve to the same spelling the file uses so both layers
	// merge on one key. List values are comma separated.
	keys := canonicalKeys()
	envProvider := env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
		if key == "config" {
			return "", nil
		}
		key = strings.ReplaceAll(key, "__", ".")
		if canonical, ok := keys[key]; ok {
			key = canonical
		}
		if key == "mva.weightFileNames" {
			return key, splitList(value)
		}
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.MVA.MVATag == "" {
		return fmt.Errorf("%w: mva.mvaTag must not be empty", ErrInvalidConfig)
	}
	for _, l := range []string{c.MVA.PhoChargedIsolation, c.MVA.PhoPhotonIsolation, c.MVA.PhoWorstChargedIsolation, c.MVA.Rho} {
		if l == "" {
			return fmt.Errorf("%w: isolation and rho labels must not be empty", ErrInvalidConfig)
		}
	}
	return nil
}

// canonicalKeys maps every lowercased config path to its koanf tag spelling.
func canonicalKeys() map[string]string {
	out := make(map[string]string)
	collectKeys(reflect.TypeOf(Config{}), "", out)
	return out
}

func collectKeys(t reflect.Type, prefix string, out map[string]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, opts, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if opts == "squash" {
			collectKeys(f.Type, prefix, out)
			continue
		}
		if name == "" || name == "-" {
			continue
		}
		path := prefix + name
		if f.Type.Kind() == reflect.Struct {
			collectKeys(f.Type, path+".", out)
			continue
		}
		out[strings.ToLower(path)] = path
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
