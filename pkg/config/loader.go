package config

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Load reads a job file from path, picking the parser by file name:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
// - a bare .copytree file is tried as YAML first and HCL second
// The returned config has defaults applied and is validated.
func Load(ctx context.Context, path string) (*Config, error) {
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}
	cfg, err := parse(ctx, path, data)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating %q: %w", path, err)
	}
	return cfg, nil
}

func parse(ctx context.Context, path string, data []byte) (*Config, error) {
	if strings.HasSuffix(path, ".copytree") {
		cfg, err := (&YAMLParser{}).Parse(ctx, data)
		if err == nil {
			return cfg, nil
		}
		cfg, err = (&HCLParser{}).Parse(ctx, data)
		if err == nil {
			return cfg, nil
		}
		return nil, errors.Errorf("parsing %q as YAML or HCL: %w", path, err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing %q: %w", path, err)
	}
	return cfg, nil
}
