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

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/walteh/datasplit/cmd/datasplit/commands"
	"github.com/walteh/datasplit/cmd/datasplit/opts"
)

// newRootCmd builds the command tree; human readable output goes to console
func newRootCmd(console io.Writer) *cobra.Command {
	rootOpts := &opts.RootOpts{Console: console}
	var seed uint64

	cmd := &cobra.Command{
		Use:   "datasplit",
		Short: "Split a labeled image dataset into train, validation and test",
		Long: `datasplit reorganizes a dataset root holding one directory per class into
train, validation and test partitions, each with one directory per class.
Files are moved, not copied.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if f := cmd.Flag("seed"); f != nil && f.Changed {
				rootOpts.Seed = &seed
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(rootOpts.Context(ctx))
			return nil
		},
	}

	cmd.SetOut(console)
	addRootFlags(cmd, rootOpts, &seed)

	cmd.AddCommand(
		commands.NewSplitCmd(rootOpts),
		commands.NewCountCmd(rootOpts),
		commands.NewResetCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, rootOpts *opts.RootOpts, seed *uint64) {
	cmd.PersistentFlags().StringVarP(&rootOpts.ConfigFile, "config", "c", "", "config file path (.yaml, .json or .hcl); built-in defaults when empty")
	cmd.PersistentFlags().StringVarP(&rootOpts.Root, "root", "r", "", "override the dataset root")
	cmd.PersistentFlags().Uint64Var(seed, "seed", 0, "shuffle seed for a reproducible split")
	cmd.PersistentFlags().BoolVarP(&rootOpts.Debug, "debug", "d", false, "enable debug logging")
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), FormatVersion())
		},
	}
}
