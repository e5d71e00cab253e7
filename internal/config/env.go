package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. Every nested section is
// addressed through its envPrefix tag, so STORAGE_DB_DATABASE_URI lands in
// cfg.Storage.DB.DSN.
//
// Mode selectors are compared case-insensitively later on, so they are
// lower-cased here once. All conversion failures are reported together,
// each under the variable the operator set.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		var agg env.AggregateError
		if errors.As(err, &agg) {
			return fmt.Errorf("error getting env configs: %w", describeEnvErrors(cfg, agg.Errors))
		}
		return fmt.Errorf("error getting env configs: %w", err)
	}

	// режимы сравниваются без учёта регистра
	cfg.Storage.Mode = normalizeMode(cfg.Storage.Mode)
	cfg.Adapter.Email.Mode = normalizeMode(cfg.Adapter.Email.Mode)

	return nil
}

func normalizeMode(mode string) string {
	return strings.ToLower(strings.TrimSpace(mode))
}

// describeEnvErrors renames env.ParseError values, which only know the Go
// field name, after the environment variable behind the field.
func describeEnvErrors(cfg *StructuredConfig, errs []error) error {
	keys := envKeysByField(cfg)

	out := make([]error, 0, len(errs))
	for _, err := range errs {
		var pe env.ParseError
		if !errors.As(err, &pe) || len(keys[pe.Name]) == 0 {
			out = append(out, err)
			continue
		}
		out = append(out, fmt.Errorf("invalid value of %s: %w", strings.Join(setKeys(keys[pe.Name]), " or "), pe.Err))
	}
	return errors.Join(out...)
}

// envKeysByField maps a struct field name to the variables that fill it.
// Field names repeat across sections (Mode, RequestTimeout), hence the
// slice. Only keys known to env.GetFieldParams are kept.
func envKeysByField(cfg *StructuredConfig) map[string][]string {
	known := make(map[string]bool)
	if params, err := env.GetFieldParams(cfg); err == nil {
		for _, p := range params {
			known[p.Key] = true
		}
	}

	keys := make(map[string][]string)
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := range t.NumField() {
			f := t.Field(i)
			if tag, ok := f.Tag.Lookup("env"); ok {
				name, _, _ := strings.Cut(tag, ",")
				if key := prefix + name; len(known) == 0 || known[key] {
					keys[f.Name] = append(keys[f.Name], key)
				}
				continue
			}
			if f.Type.Kind() == reflect.Struct {
				walk(f.Type, prefix+f.Tag.Get("envPrefix"))
			}
		}
	}
	walk(reflect.TypeFor[StructuredConfig](), "")

	return keys
}

// setKeys narrows candidates to the variables present in the environment.
// A parse error comes from a set variable, so this usually leaves one.
func setKeys(candidates []string) []string {
	set := make([]string, 0, len(candidates))
	for _, key := range candidates {
		if _, ok := os.LookupEnv(key); ok {
			set = append(set, key)
		}
	}
	if len(set) == 0 {
		return candidates
	}
	return set
}
