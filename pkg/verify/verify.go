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

// Package verify counts the files in a partitioned dataset without touching it.
package verify

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/walteh/datasplit/pkg/config"
	"github.com/walteh/datasplit/pkg/log"
	"github.com/walteh/datasplit/pkg/partition"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ClassCount is the file count of <root>/<partition>/<class>.
type ClassCount struct {
	Class string
	Label string
	Count int
	Found bool
}

// PartitionCount holds the per-class counts of one partition.
type PartitionCount struct {
	Name    string
	Classes []ClassCount
	Total   int
}

// 📊 Report is the outcome of a verification pass
type Report struct {
	Partitions []PartitionCount
	GrandTotal int
}

// Lookup returns the count for a partition/class pair and whether the directory was found.
func (r *Report) Lookup(partition, class string) (int, bool) {
	for _, p := range r.Partitions {
		if p.Name != partition {
			continue
		}
		for _, c := range p.Classes {
			if c.Class == class {
				return c.Count, c.Found
			}
		}
	}
	return 0, false
}

// Table lays the report out as rows of class label by partition, header first, totals last.
func (r *Report) Table() [][]string {
	header := []string{"class"}
	for _, p := range r.Partitions {
		header = append(header, p.Name)
	}
	rows := [][]string{header}

	if len(r.Partitions) > 0 {
		for i, c := range r.Partitions[0].Classes {
			row := []string{c.Label}
			for _, p := range r.Partitions {
				row = append(row, cell(p.Classes[i]))
			}
			rows = append(rows, row)
		}
	}

	totals := []string{"total"}
	for _, p := range r.Partitions {
		totals = append(totals, strconv.Itoa(p.Total))
	}
	return append(rows, totals)
}

func cell(c ClassCount) string {
	if !c.Found {
		return "-"
	}
	return strconv.Itoa(c.Count)
}

// Label capitalizes a class name for display: the first letter is title cased and
// the rest lowered, so "angry" becomes "Angry" and "sad FACE" becomes "Sad face".
func Label(class string) string {
	_, size := utf8.DecodeRuneInString(class)
	if size == 0 {
		return class
	}
	return cases.Title(language.Und).String(class[:size]) + cases.Lower(language.Und).String(class[size:])
}

// 🔍 Count walks every partition and class in configured order, logging each count.
// Missing directories count as zero and are reported as not found.
func Count(ctx context.Context, cfg *config.Config) (*Report, error) {
	logger := log.FromContext(ctx)
	logger.Header("verifying final counts (" + strings.Join(cfg.Partitions, ", ") + ")")

	report := &Report{}
	for _, partition := range cfg.Partitions {
		logger.Section("PARTITION " + strings.ToUpper(partition))

		pc := PartitionCount{Name: partition}
		for _, class := range cfg.Classes {
			n, found, err := countFiles(filepath.Join(cfg.PartitionPath(partition), class))
			if err != nil {
				return nil, errors.Errorf("counting %s/%s: %w", partition, class, err)
			}

			cc := ClassCount{Class: class, Label: Label(class), Count: n, Found: found}
			logger.LogClassCount(ctx, log.ClassCount{
				Partition: partition,
				Label:     cc.Label,
				Count:     cc.Count,
				Found:     cc.Found,
			})
			pc.Classes = append(pc.Classes, cc)
			pc.Total += n
		}

		logger.LogPartitionTotal(ctx, partition, pc.Total)
		report.Partitions = append(report.Partitions, pc)
		report.GrandTotal += pc.Total
	}

	logger.LogNewline()
	logger.Successf("count finished, grand total: %d", report.GrandTotal)
	return report, nil
}

// countFiles counts files directly under dir, following symlinks. A missing or non-directory path is not found.
func countFiles(dir string) (int, bool, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return 0, false, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, true, err
	}

	n := 0
	for _, entry := range entries {
		if partition.IsFile(dir, entry) {
			n++
		}
	}
	return n, true, nil
}
