package config

import (
	"errors"
	"fmt"
	"io/fs"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
)

// configBuilder collects config layers in priority order. Source errors are
// accumulated so a single startup run reports every broken source.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{configs: make([]*StructuredConfig, 0, 3)}
}

// push records a layer produced by a source, or the error it failed with.
func (b *configBuilder) push(cfg *StructuredConfig, err error) *configBuilder {
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, cfg)
	return b
}

// withDotEnv exports variables from .env files into the process environment
// before withEnv runs. Absent files are fine; set variables are never
// overwritten.
func (b *configBuilder) withDotEnv(paths ...string) *configBuilder {
	for _, path := range paths {
		err := godotenv.Load(path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		b.err = errors.Join(b.err, fmt.Errorf("error loading %s: %w", path, err))
	}
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	cfg := &StructuredConfig{}
	return b.push(cfg, parseEnv(cfg))
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	return b.push(ParseFlags(args))
}

// withJSON adds the JSON file named by the latest layer that names one.
func (b *configBuilder) withJSON() *configBuilder {
	path := b.jsonPath()
	if path == "" {
		return b
	}
	return b.push(parseJSON(path))
}

func (b *configBuilder) jsonPath() string {
	for i := len(b.configs) - 1; i >= 0; i-- {
		if p := b.configs[i].JSONFilePath; p != "" {
			return p
		}
	}
	return ""
}

// build merges the layers (earlier layers win), fills defaults and
// validates the result.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	merged := &StructuredConfig{}
	for i, layer := range b.configs {
		if err := mergo.Merge(merged, layer); err != nil {
			return nil, fmt.Errorf("error merging config layer %d: %w", i, err)
		}
	}

	if err := merged.applyDefaults(); err != nil {
		return nil, fmt.Errorf("error applying default configs: %w", err)
	}
	if err := merged.validate(); err != nil {
		return merged, err
	}
	return merged, nil
}
