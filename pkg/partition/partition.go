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

// Package partition moves each class's files into train, validation and test directories.
package partition

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/walteh/datasplit/pkg/config"
	"github.com/walteh/datasplit/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// ErrClassNotFound marks a configured class whose source directory is missing or not a directory.
var ErrClassNotFound = errors.Base("class directory not found")

// 🔧 Options contains configuration for the partitioner
type Options struct {
	// Config is the dataset layout and split ratios
	Config *config.Config
	// Rand overrides the shuffle source; when nil it is seeded from Config.Seed or at random
	Rand *rand.Rand
}

// 📦 ClassResult is what happened to one class
type ClassResult struct {
	Class string
	Total int
	// Files holds the moved file names per partition, indexed by config.Train, config.Validation, config.Test
	Files [3][]string
}

// Count returns how many files went to the partition at index i.
func (r ClassResult) Count(i int) int {
	return len(r.Files[i])
}

// ⏭️ SkippedClass is a class that contributed nothing to the split
type SkippedClass struct {
	Class string
	Err   error
}

// 📊 Result summarizes a split run
type Result struct {
	Classes []ClassResult
	Skipped []SkippedClass
	Moved   int
}

// 🎮 Partitioner performs the destructive partition-and-move
type Partitioner struct {
	cfg *config.Config
	rng *rand.Rand
}

// 🏭 New creates a partitioner with the given options
func New(opts Options) (*Partitioner, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	rng := opts.Rand
	if rng == nil {
		rng = newRand(opts.Config.Seed)
	}

	return &Partitioner{
		cfg: opts.Config,
		rng: rng,
	}, nil
}

func newRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// 🏃 Split resets the partition tree, then shuffles, splits and moves every configured class.
// A missing class is logged and skipped; any other filesystem error stops the run as is.
func (p *Partitioner) Split(ctx context.Context) (*Result, error) {
	logger := log.FromContext(ctx)
	logger.Header("splitting dataset " + p.cfg.Ratios.String())

	if err := p.Reset(ctx); err != nil {
		return nil, err
	}
	logger.Info("partition tree is clean and ready")

	result := &Result{}
	for _, class := range p.cfg.Classes {
		cr, err := p.splitClass(ctx, class)
		if errors.Is(err, ErrClassNotFound) {
			logger.Errorf("source directory for class %q not found, check %s", class, p.cfg.ClassPath(class))
			result.Skipped = append(result.Skipped, SkippedClass{Class: class, Err: err})
			continue
		}
		if err != nil {
			return nil, errors.Errorf("splitting class %s: %w", class, err)
		}

		counts := make([]int, len(cr.Files))
		for i := range cr.Files {
			counts[i] = cr.Count(i)
			result.Moved += counts[i]
		}
		logger.LogClassSplit(ctx, log.ClassSplit{
			Class:      class,
			Total:      cr.Total,
			Partitions: p.cfg.Partitions,
			Counts:     counts,
		})
		result.Classes = append(result.Classes, *cr)
	}

	logger.Successf("split complete, %d files moved", result.Moved)
	return result, nil
}

// splitClass moves the files of one class into the partition tree.
func (p *Partitioner) splitClass(ctx context.Context, class string) (*ClassResult, error) {
	logger := log.FromContext(ctx)
	src := p.cfg.ClassPath(class)

	files, err := listFiles(src)
	if err != nil {
		return nil, err
	}

	cr := &ClassResult{
		Class: class,
		Total: len(files),
		Files: Assign(files, p.cfg.Ratios, p.rng),
	}

	for i, names := range cr.Files {
		dest := filepath.Join(p.cfg.PartitionPath(p.cfg.Partitions[i]), class)
		for _, name := range names {
			if err := os.Rename(filepath.Join(src, name), filepath.Join(dest, name)); err != nil {
				return nil, errors.Errorf("moving %s: %w", name, err)
			}
			logger.Debug().
				Str("class", class).
				Str("partition", p.cfg.Partitions[i]).
				Str("file", name).
				Msg("moved file")
		}
	}

	return cr, nil
}

// listFiles returns the names of the files directly under dir, sorted by name.
func listFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%s: %w", dir, ErrClassNotFound)
		}
		return nil, errors.Errorf("checking class directory: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.Errorf("%s is not a directory: %w", dir, ErrClassNotFound)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Errorf("reading class directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if IsFile(dir, entry) {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// IsFile reports whether entry is a regular file, following symlinks. Directories and dangling links are not.
func IsFile(dir string, entry os.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}
