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

// NewResetCmd creates a new reset command
func NewResetCmd(opts *opts.RootOpts) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete and recreate the partition directories",
		Long: `Reset removes every partition directory with all of its contents and
recreates it with one empty subdirectory per class. Files already moved into the
partitions are lost; class directories are not touched. This cannot be undone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.Errorf("refusing to reset without --yes")
			}
			ctx := cmd.Context()

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return err
			}

			reset, err := operation.NewResetOperation(operation.Options{Config: cfg})
			if err != nil {
				return errors.Errorf("creating reset operation: %w", err)
			}

			return operation.NewRunner(zerolog.Ctx(ctx)).Run(ctx, reset)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the irreversible reset")

	return cmd
}
