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

package partition

import (
	"context"
	"os"
	"path/filepath"

	"github.com/walteh/datasplit/pkg/config"
	"github.com/walteh/datasplit/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🧹 Reset deletes every partition directory and recreates it with one empty
// subdirectory per class. Irreversible and not atomic: a crash midway leaves a
// partially rebuilt tree, so rerun Reset (or Split) to recover.
func (p *Partitioner) Reset(ctx context.Context) error {
	return ResetTree(ctx, p.cfg)
}

// ResetTree is Reset without a Partitioner. Calling it twice yields the same tree.
func ResetTree(ctx context.Context, cfg *config.Config) error {
	logger := log.FromContext(ctx)

	for _, partition := range cfg.Partitions {
		path := cfg.PartitionPath(partition)

		if _, err := os.Lstat(path); err == nil {
			logger.Warningf("removing %s and everything in it", path)
			if err := os.RemoveAll(path); err != nil {
				return errors.Errorf("removing partition %s: %w", partition, err)
			}
		} else if !os.IsNotExist(err) {
			return errors.Errorf("checking partition %s: %w", partition, err)
		}

		if err := os.MkdirAll(path, 0o755); err != nil {
			return errors.Errorf("creating partition %s: %w", partition, err)
		}
		for _, class := range cfg.Classes {
			if err := os.MkdirAll(filepath.Join(path, class), 0o755); err != nil {
				return errors.Errorf("creating %s/%s: %w", partition, class, err)
			}
		}
		logger.Debug().Str("partition", partition).Int("classes", len(cfg.Classes)).Msg("partition recreated")
	}

	return nil
}
