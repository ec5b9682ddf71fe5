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
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/datasplit/pkg/config"
)

func TestBounds(t *testing.T) {
	defaults := config.Ratios{Train: 0.70, Validation: 0.15, Test: 0.15}

	tests := []struct {
		name         string
		n            int
		ratios       config.Ratios
		wantTrainEnd int
		wantValEnd   int
	}{
		{name: "ten_files", n: 10, ratios: defaults, wantTrainEnd: 7, wantValEnd: 8},
		{name: "no_files", n: 0, ratios: defaults, wantTrainEnd: 0, wantValEnd: 0},
		{name: "one_file_goes_to_test", n: 1, ratios: defaults, wantTrainEnd: 0, wantValEnd: 0},
		{name: "seven_files", n: 7, ratios: defaults, wantTrainEnd: 4, wantValEnd: 5},
		{name: "hundred_files", n: 100, ratios: defaults, wantTrainEnd: 70, wantValEnd: 85},
		{name: "all_train", n: 5, ratios: config.Ratios{Train: 1}, wantTrainEnd: 5, wantValEnd: 5},
		{name: "all_test", n: 5, ratios: config.Ratios{Test: 1}, wantTrainEnd: 0, wantValEnd: 0},
		{name: "over_allocated_is_clamped", n: 4, ratios: config.Ratios{Train: 1, Validation: 1}, wantTrainEnd: 4, wantValEnd: 4},
		{name: "under_allocated_rest_is_test", n: 10, ratios: config.Ratios{Train: 0.5, Validation: 0.1}, wantTrainEnd: 5, wantValEnd: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trainEnd, valEnd := Bounds(tt.n, tt.ratios)
			assert.Equal(t, tt.wantTrainEnd, trainEnd, "train end")
			assert.Equal(t, tt.wantValEnd, valEnd, "validation end")
		})
	}
}

func TestBoundsCounts(t *testing.T) {
	ratioSets := []config.Ratios{
		{Train: 0.70, Validation: 0.15, Test: 0.15},
		{Train: 0.80, Validation: 0.10, Test: 0.10},
		{Train: 0.60, Validation: 0.20, Test: 0.20},
		{Train: 0.33, Validation: 0.33, Test: 0.34},
	}

	for _, ratios := range ratioSets {
		t.Run(fmt.Sprintf("train_%.2f_validation_%.2f", ratios.Train, ratios.Validation), func(t *testing.T) {
			for n := 0; n <= 250; n++ {
				trainEnd, valEnd := Bounds(n, ratios)

				train := trainEnd
				validation := valEnd - trainEnd
				test := n - valEnd

				assert.Equal(t, int(math.Floor(float64(n)*ratios.Train)), train, "n=%d train", n)
				assert.Equal(t, int(math.Floor(float64(n)*ratios.Validation)), validation, "n=%d validation", n)
				assert.Equal(t, n-train-validation, test, "n=%d test", n)
				assert.Equal(t, n, train+validation+test, "n=%d sum", n)
			}
		})
	}
}

func TestAssign(t *testing.T) {
	files := make([]string, 20)
	for i := range files {
		files[i] = fmt.Sprintf("img_%02d.jpg", i)
	}
	original := append([]string(nil), files...)

	ratios := config.Ratios{Train: 0.70, Validation: 0.15, Test: 0.15}
	got := Assign(files, ratios, rand.New(rand.NewPCG(1, 2)))

	require.Len(t, got[config.Train], 14)
	require.Len(t, got[config.Validation], 3)
	require.Len(t, got[config.Test], 3)

	var all []string
	for _, part := range got {
		all = append(all, part...)
	}
	assert.ElementsMatch(t, original, all, "every file is assigned exactly once")

	again := append([]string(nil), original...)
	assert.Equal(t, got, Assign(again, ratios, rand.New(rand.NewPCG(1, 2))), "same seed gives the same assignment")
}

func TestAssignEmpty(t *testing.T) {
	got := Assign(nil, config.Ratios{Train: 0.7, Validation: 0.15, Test: 0.15}, rand.New(rand.NewPCG(0, 0)))
	for _, part := range got {
		assert.Empty(t, part)
	}
}
