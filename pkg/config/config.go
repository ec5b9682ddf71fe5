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
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.Base("invalid config")

// ratioTolerance is how far the ratio sum may drift from 1.0 before it counts as unbalanced
const ratioTolerance = 1e-6

// Partition indexes into Config.Partitions.
const (
	Train = iota
	Validation
	Test
)

// 📐 Ratios holds the fraction of each class assigned to each partition
type Ratios struct {
	Train      float64 `json:"train" yaml:"train"`
	Validation float64 `json:"validation" yaml:"validation"`
	Test       float64 `json:"test" yaml:"test"`
}

// Sum returns train + validation + test.
func (r Ratios) Sum() float64 {
	return r.Train + r.Validation + r.Test
}

// Balanced reports whether the ratios add up to 1.0.
func (r Ratios) Balanced() bool {
	return math.Abs(r.Sum()-1.0) <= ratioTolerance
}

// String formats the ratios as whole percentages, e.g. 70/15/15.
func (r Ratios) String() string {
	return fmt.Sprintf("%.0f/%.0f/%.0f", r.Train*100, r.Validation*100, r.Test*100)
}

// 📚 Config is the explicit configuration value handed to the partitioner and the verifier
type Config struct {
	Root       string   `json:"root" yaml:"root"`             // dataset root holding class and partition directories
	Classes    []string `json:"classes" yaml:"classes"`       // class labels, processed in order
	Partitions []string `json:"partitions" yaml:"partitions"` // train, validation and test directory names, in that order
	Ratios     Ratios   `json:"ratios" yaml:"ratios"`
	Seed       *uint64  `json:"seed,omitempty" yaml:"seed,omitempty"` // nil means a fresh random seed per run
}

// 🏭 Default returns the configuration the tool ships with
func Default() *Config {
	return &Config{
		Root:       "emotion_dataset",
		Classes:    []string{"angry", "happy", "neutral", "sad", "surprise"},
		Partitions: []string{"train", "validation", "test"},
		Ratios: Ratios{
			Train:      0.70,
			Validation: 0.15,
			Test:       0.15,
		},
	}
}

// PartitionPath returns <root>/<partition>.
func (cfg *Config) PartitionPath(partition string) string {
	return filepath.Join(cfg.Root, partition)
}

// ClassPath returns the source directory <root>/<class>.
func (cfg *Config) ClassPath(class string) string {
	return filepath.Join(cfg.Root, class)
}

// 🔍 Validate checks the configuration and normalizes the root path
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.Root) == "" {
		return errors.Errorf("%w: root is required", ErrInvalid)
	}
	cfg.Root = filepath.Clean(cfg.Root)

	if len(cfg.Classes) == 0 {
		return errors.Errorf("%w: at least one class is required", ErrInvalid)
	}
	classes := make(map[string]bool, len(cfg.Classes))
	for _, class := range cfg.Classes {
		if err := checkName("class", class); err != nil {
			return err
		}
		if classes[class] {
			return errors.Errorf("%w: duplicate class %q", ErrInvalid, class)
		}
		classes[class] = true
	}

	if len(cfg.Partitions) != 3 {
		return errors.Errorf("%w: exactly three partitions (train, validation, test) are required, got %d", ErrInvalid, len(cfg.Partitions))
	}
	seen := make(map[string]bool, len(cfg.Partitions))
	for _, partition := range cfg.Partitions {
		if err := checkName("partition", partition); err != nil {
			return err
		}
		if seen[partition] {
			return errors.Errorf("%w: duplicate partition %q", ErrInvalid, partition)
		}
		// resetting a partition that doubles as a class would wipe the source files
		if classes[partition] {
			return errors.Errorf("%w: partition %q is also a class", ErrInvalid, partition)
		}
		seen[partition] = true
	}

	for name, ratio := range map[string]float64{
		"train":      cfg.Ratios.Train,
		"validation": cfg.Ratios.Validation,
		"test":       cfg.Ratios.Test,
	} {
		if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
			return errors.Errorf("%w: %s ratio %v must be within [0, 1]", ErrInvalid, name, ratio)
		}
	}

	return nil
}

// checkName rejects names that would escape the dataset root.
func checkName(kind, name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.Errorf("%w: empty %s name", ErrInvalid, kind)
	case name == "." || name == "..":
		return errors.Errorf("%w: %s name %q is reserved", ErrInvalid, kind, name)
	case strings.ContainsAny(name, `/\`):
		return errors.Errorf("%w: %s name %q must not contain a path separator", ErrInvalid, kind, name)
	}
	return nil
}

// 📝 String returns a one line summary of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s [%s] -> %s (%s)",
		cfg.Root,
		strings.Join(cfg.Classes, ","),
		strings.Join(cfg.Partitions, ","),
		cfg.Ratios)
}
