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
	"math/rand/v2"

	"github.com/walteh/datasplit/pkg/config"
)

// Bounds returns the cutoffs for n shuffled files: [0, trainEnd) goes to
// train, [trainEnd, valEnd) to validation and [valEnd, n) to test. Both
// products are truncated, so any remainder lands in test.
func Bounds(n int, ratios config.Ratios) (trainEnd, valEnd int) {
	if n <= 0 {
		return 0, 0
	}
	trainEnd = clamp(int(float64(n)*ratios.Train), 0, n)
	valEnd = clamp(trainEnd+int(float64(n)*ratios.Validation), trainEnd, n)
	return trainEnd, valEnd
}

// Assign shuffles files in place and splits them by ratio into
// train, validation and test.
func Assign(files []string, ratios config.Ratios, rng *rand.Rand) [3][]string {
	rng.Shuffle(len(files), func(i, j int) {
		files[i], files[j] = files[j], files[i]
	})

	trainEnd, valEnd := Bounds(len(files), ratios)
	return [3][]string{
		config.Train:      files[:trainEnd],
		config.Validation: files[trainEnd:valEnd],
		config.Test:       files[valEnd:],
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
