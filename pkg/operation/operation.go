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

package operation

import (
	"context"

	"github.com/walteh/datasplit/pkg/config"
	"github.com/walteh/datasplit/pkg/log"
	"github.com/walteh/datasplit/pkg/partition"
	"github.com/walteh/datasplit/pkg/verify"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation is one step of a run
type Operation interface {
	// Name identifies the operation in errors and logs
	Name() string
	// Execute performs the operation
	Execute(ctx context.Context) error
}

// 🔧 Options contains what the operations need
type Options struct {
	// Config is the dataset layout
	Config *config.Config
	// Partitioner performs reset and split; built from Config when nil
	Partitioner *partition.Partitioner
}

func (opts Options) partitioner() (*partition.Partitioner, error) {
	if opts.Partitioner != nil {
		return opts.Partitioner, nil
	}
	return partition.New(partition.Options{Config: opts.Config})
}

// 📦 SplitOperation resets the partition tree and moves every class into it
type SplitOperation struct {
	partitioner *partition.Partitioner
	// Result is set after a successful Execute
	Result *partition.Result
}

// 🏭 NewSplitOperation creates a new split operation
func NewSplitOperation(opts Options) (*SplitOperation, error) {
	p, err := opts.partitioner()
	if err != nil {
		return nil, errors.Errorf("creating partitioner: %w", err)
	}
	return &SplitOperation{partitioner: p}, nil
}

func (op *SplitOperation) Name() string { return "split" }

// 🏃 Execute runs the split
func (op *SplitOperation) Execute(ctx context.Context) error {
	result, err := op.partitioner.Split(ctx)
	if err != nil {
		return err
	}
	op.Result = result

	if n := len(result.Skipped); n > 0 {
		log.FromContext(ctx).Warningf("%d class(es) skipped, see errors above", n)
	}
	return nil
}

// 🔍 CountOperation verifies the partition tree
type CountOperation struct {
	cfg *config.Config
	// Report is set after a successful Execute
	Report *verify.Report
}

// 🏭 NewCountOperation creates a new count operation
func NewCountOperation(opts Options) (*CountOperation, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	return &CountOperation{cfg: opts.Config}, nil
}

func (op *CountOperation) Name() string { return "count" }

// 🏃 Execute counts every partition/class directory and prints the summary table
func (op *CountOperation) Execute(ctx context.Context) error {
	report, err := verify.Count(ctx, op.cfg)
	if err != nil {
		return err
	}
	op.Report = report

	if err := log.FromContext(ctx).Table(report.Table()); err != nil {
		return errors.Errorf("rendering summary table: %w", err)
	}
	return nil
}

// 🧹 ResetOperation wipes and recreates the partition tree
type ResetOperation struct {
	partitioner *partition.Partitioner
}

// 🏭 NewResetOperation creates a new reset operation
func NewResetOperation(opts Options) (*ResetOperation, error) {
	p, err := opts.partitioner()
	if err != nil {
		return nil, errors.Errorf("creating partitioner: %w", err)
	}
	return &ResetOperation{partitioner: p}, nil
}

func (op *ResetOperation) Name() string { return "reset" }

// 🏃 Execute runs the reset
func (op *ResetOperation) Execute(ctx context.Context) error {
	if err := op.partitioner.Reset(ctx); err != nil {
		return err
	}
	log.FromContext(ctx).Success("partition tree reset")
	return nil
}
