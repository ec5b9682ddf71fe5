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

package verify

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/datasplit/pkg/config"
	"github.com/walteh/datasplit/pkg/log"
	"github.com/walteh/datasplit/pkg/partition"
)

func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	buf := &bytes.Buffer{}
	logger := log.NewWithZerolog(buf, zerolog.New(zerolog.NewTestWriter(t)))
	return log.NewContext(context.Background(), logger), buf
}

func writeFiles(t *testing.T, dir string, n int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for i := 0; i < n; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("img_%03d.png", i)), nil, 0o644))
	}
}

func TestCount(t *testing.T) {
	ctx, buf := testContext(t)
	root := t.TempDir()

	writeFiles(t, filepath.Join(root, "train", "happy"), 7)
	writeFiles(t, filepath.Join(root, "validation", "happy"), 1)
	writeFiles(t, filepath.Join(root, "test", "happy"), 2)
	writeFiles(t, filepath.Join(root, "train", "sad"), 3)
	// subdirectories are not files
	require.NoError(t, os.MkdirAll(filepath.Join(root, "train", "sad", "nested"), 0o755))

	cfg := config.Default()
	cfg.Root = root
	cfg.Classes = []string{"happy", "sad"}

	report, err := Count(ctx, cfg)
	require.NoError(t, err)

	require.Len(t, report.Partitions, 3)
	assert.Equal(t, []string{"train", "validation", "test"}, []string{
		report.Partitions[0].Name, report.Partitions[1].Name, report.Partitions[2].Name,
	})
	assert.Equal(t, 10, report.Partitions[0].Total)
	assert.Equal(t, 1, report.Partitions[1].Total)
	assert.Equal(t, 2, report.Partitions[2].Total)
	assert.Equal(t, 13, report.GrandTotal)

	n, found := report.Lookup("train", "sad")
	assert.True(t, found)
	assert.Equal(t, 3, n)

	n, found = report.Lookup("validation", "sad")
	assert.False(t, found, "validation/sad was never created")
	assert.Zero(t, n)

	out := buf.String()
	assert.Contains(t, out, "PARTITION TRAIN")
	assert.Contains(t, out, "Happy")
	assert.Contains(t, out, "directory not found")
	assert.Contains(t, out, "total in TRAIN: 10")
	assert.Contains(t, out, "grand total: 13")
}

func TestCountMissingRoot(t *testing.T) {
	ctx, _ := testContext(t)

	cfg := config.Default()
	cfg.Root = filepath.Join(t.TempDir(), "does-not-exist")

	report, err := Count(ctx, cfg)
	require.NoError(t, err, "missing directories never abort")
	assert.Zero(t, report.GrandTotal)
	for _, p := range report.Partitions {
		require.Len(t, p.Classes, len(cfg.Classes))
		for _, c := range p.Classes {
			assert.False(t, c.Found)
		}
	}
}

func TestCountFollowsSymlinks(t *testing.T) {
	ctx, _ := testContext(t)
	root := t.TempDir()
	dir := filepath.Join(root, "train", "happy")
	writeFiles(t, dir, 2)

	outside := t.TempDir()
	writeFiles(t, outside, 1)
	require.NoError(t, os.Symlink(filepath.Join(outside, "img_000.png"), filepath.Join(dir, "linked.png")))
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "linked_dir")))

	cfg := config.Default()
	cfg.Root = root
	cfg.Classes = []string{"happy"}

	report, err := Count(ctx, cfg)
	require.NoError(t, err)

	n, found := report.Lookup("train", "happy")
	assert.True(t, found)
	assert.Equal(t, 3, n, "a link to a file counts, a link to a directory does not")
}

func TestCountDoesNotMutate(t *testing.T) {
	ctx, _ := testContext(t)
	root := t.TempDir()
	writeFiles(t, filepath.Join(root, "train", "happy"), 2)

	cfg := config.Default()
	cfg.Root = root
	cfg.Classes = []string{"happy"}

	_, err := Count(ctx, cfg)
	require.NoError(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1, "count must not create partition directories")
	assert.Equal(t, "train", entries[0].Name())
}

func TestCountMatchesSplit(t *testing.T) {
	ctx, _ := testContext(t)
	root := t.TempDir()

	sizes := map[string]int{"angry": 17, "happy": 10, "neutral": 0}
	for class, n := range sizes {
		writeFiles(t, filepath.Join(root, class), n)
	}

	cfg := config.Default()
	cfg.Root = root
	// "sad" has no source directory
	cfg.Classes = []string{"angry", "happy", "neutral", "sad"}

	p, err := partition.New(partition.Options{Config: cfg})
	require.NoError(t, err)
	result, err := p.Split(ctx)
	require.NoError(t, err)

	report, err := Count(ctx, cfg)
	require.NoError(t, err)

	for _, cr := range result.Classes {
		for i, name := range cfg.Partitions {
			n, found := report.Lookup(name, cr.Class)
			assert.True(t, found, "%s/%s", name, cr.Class)
			assert.Equal(t, cr.Count(i), n, "%s/%s", name, cr.Class)
		}
	}

	for _, name := range cfg.Partitions {
		n, found := report.Lookup(name, "sad")
		assert.True(t, found, "skipped classes still get empty directories")
		assert.Zero(t, n)
	}

	assert.Equal(t, result.Moved, report.GrandTotal)
	assert.Equal(t, 27, report.GrandTotal)
}

func TestReportTable(t *testing.T) {
	report := &Report{
		Partitions: []PartitionCount{
			{Name: "train", Total: 7, Classes: []ClassCount{{Class: "happy", Label: "Happy", Count: 7, Found: true}, {Class: "sad", Label: "Sad"}}},
			{Name: "test", Total: 2, Classes: []ClassCount{{Class: "happy", Label: "Happy", Count: 2, Found: true}, {Class: "sad", Label: "Sad", Found: true}}},
		},
		GrandTotal: 9,
	}

	assert.Equal(t, [][]string{
		{"class", "train", "test"},
		{"Happy", "7", "2"},
		{"Sad", "-", "0"},
		{"total", "7", "2"},
	}, report.Table())
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"angry":    "Angry",
		"surprise": "Surprise",
		"Happy":    "Happy",
		"sad face": "Sad face",
		"NEUTRAL":  "Neutral",
		"":         "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Label(in), in)
	}
}
