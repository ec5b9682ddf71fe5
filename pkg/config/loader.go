// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// fileRatios is the on-disk form of Ratios; nil fields keep the default.
type fileRatios struct {
	Train      *float64 `json:"train" yaml:"train" hcl:"train,optional"`
	Validation *float64 `json:"validation" yaml:"validation" hcl:"validation,optional"`
	Test       *float64 `json:"test" yaml:"test" hcl:"test,optional"`
}

// fileConfig is the on-disk form of Config; omitted fields keep the default.
type fileConfig struct {
	Root       *string     `json:"root" yaml:"root" hcl:"root,optional"`
	Classes    []string    `json:"classes" yaml:"classes" hcl:"classes,optional"`
	Partitions []string    `json:"partitions" yaml:"partitions" hcl:"partitions,optional"`
	Ratios     *fileRatios `json:"ratios" yaml:"ratios" hcl:"ratios,block"`
	Seed       *uint64     `json:"seed" yaml:"seed" hcl:"seed,optional"`
}

// LoadConfig loads a configuration file from the given path.
// The format is determined by the file extension:
// - .json for JSON
// - .yaml or .yml for YAML
// - .hcl for HCL
//
// Fields missing from the file fall back to Default. The result is validated.
func LoadConfig(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var fc *fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		fc, err = loadJSON(data)
	case ".yaml", ".yml":
		fc, err = loadYAML(data)
	case ".hcl":
		fc, err = loadHCL(data, path)
	default:
		return nil, errors.Errorf("unsupported file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	cfg := fc.apply(Default())
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	if !cfg.Ratios.Balanced() {
		logger.Warn().Float64("sum", cfg.Ratios.Sum()).Msg("ratios do not add up to 1.0")
	}

	return cfg, nil
}

// apply overlays the fields present in the file onto cfg.
func (fc *fileConfig) apply(cfg *Config) *Config {
	if fc.Root != nil {
		cfg.Root = *fc.Root
	}
	if fc.Classes != nil {
		cfg.Classes = fc.Classes
	}
	if fc.Partitions != nil {
		cfg.Partitions = fc.Partitions
	}
	if fc.Seed != nil {
		seed := *fc.Seed
		cfg.Seed = &seed
	}
	if r := fc.Ratios; r != nil {
		if r.Train != nil {
			cfg.Ratios.Train = *r.Train
		}
		if r.Validation != nil {
			cfg.Ratios.Validation = *r.Validation
		}
		if r.Test != nil {
			cfg.Ratios.Test = *r.Test
		}
	}
	return cfg
}

// loadJSON loads a configuration from JSON data
func loadJSON(data []byte) (*fileConfig, error) {
	var fc fileConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&fc); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	return &fc, nil
}

// loadYAML loads a configuration from YAML data
func loadYAML(data []byte) (*fileConfig, error) {
	var fc fileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil {
		// an empty document has no overrides
		if errors.Is(err, io.EOF) {
			return &fc, nil
		}
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &fc, nil
}

// loadHCL loads a configuration from HCL data
func loadHCL(data []byte, filename string) (*fileConfig, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(hclFile.Body, ctx, &fc)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	return &fc, nil
}
