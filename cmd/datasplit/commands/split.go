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

package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/datasplit/cmd/datasplit/opts"
	"github.com/walteh/datasplit/pkg/log"
	"github.com/walteh/datasplit/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewSplitCmd creates a new split command
func NewSplitCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split every class into train, validation and test",
		Long: `Split moves the files of each class directory into the partition tree.
It will:
1. Delete and recreate every partition directory (irreversible)
2. Shuffle each class and cut it by the configured ratios
3. Move the files, leaving the class directories empty
4. Count the result`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}

			logger := log.FromContext(ctx)
			if !cfg.Ratios.Balanced() {
				logger.Warningf("ratios %s add up to %.2f, the remainder goes to %s", cfg.Ratios, cfg.Ratios.Sum(), cfg.Partitions[2])
			}

			split, err := operation.NewSplitOperation(operation.Options{Config: cfg})
			if err != nil {
				return errors.Errorf("creating split operation: %w", err)
			}
			count, err := operation.NewCountOperation(operation.Options{Config: cfg})
			if err != nil {
				return errors.Errorf("creating count operation: %w", err)
			}

			return operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, split, count)
		},
	}

	return cmd
}
