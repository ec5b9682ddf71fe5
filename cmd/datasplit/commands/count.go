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
	"github.com/walteh/datasplit/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCountCmd creates a new count command
func NewCountCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count the files in every partition",
		Long: `Count reports the number of files per class in each partition,
the subtotal of each partition and the grand total. It never modifies the dataset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}

			count, err := operation.NewCountOperation(operation.Options{Config: cfg})
			if err != nil {
				return errors.Errorf("creating count operation: %w", err)
			}

			return operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, count)
		},
	}

	return cmd
}
