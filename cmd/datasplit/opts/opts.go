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

package opts

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/datasplit/pkg/config"
	"github.com/walteh/datasplit/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string    // config file; empty means the built-in defaults
	Root       string    // overrides the dataset root when set
	Seed       *uint64   // overrides the shuffle seed when set
	Debug      bool      // enables structured debug events on stderr
	Console    io.Writer // where human readable output goes
}

// Context attaches a zerolog logger and a console logger to ctx.
func (o *RootOpts) Context(ctx context.Context) context.Context {
	level := zerolog.Disabled
	if o.Debug {
		level = zerolog.DebugLevel
	}
	console := o.Console
	if console == nil {
		console = os.Stdout
	}

	return log.New(console, level).WithContext(ctx)
}

// LoadConfig builds the run configuration: defaults, then the config file, then flag overrides.
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	cfg := config.Default()
	if o.ConfigFile != "" {
		loaded, err := config.LoadConfig(ctx, o.ConfigFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	if o.Root != "" {
		cfg.Root = o.Root
	}
	if o.Seed != nil {
		seed := *o.Seed
		cfg.Seed = &seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}
