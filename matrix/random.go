// Copyright 2021-2022
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matrix

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	shortSaleMin = -10.0
	shortSaleMax = 10.0
)

// RandomWeights generates a rows×cols matrix where every row is a portfolio
// weight vector summing to 1. Each row draws cols independent samples from a
// uniform distribution on [0,1), or [-10,10) when short sales are allowed, and
// divides them by the row sum. The generator is seeded explicitly so the same
// seed and shape always produce the same matrix.
func RandomWeights(rows, cols int, seed uint64, allowShortSales bool) (*Matrix, error) {
	if rows <= 0 {
		return nil, fmt.Errorf("random weights need at least 1 row, got %d: %w", rows, ErrInvalidArgument)
	}

	if cols <= 1 {
		return nil, fmt.Errorf("random weights need at least 2 columns, got %d: %w", cols, ErrInvalidArgument)
	}

	dist := distuv.Uniform{
		Min: 0,
		Max: 1,
		Src: rand.NewSource(seed),
	}

	if allowShortSales {
		dist.Min = shortSaleMin
		dist.Max = shortSaleMax
	}

	vals := zeros(rows, cols)
	for _, row := range vals {
		sum := 0.0
		for colIdx := range row {
			row[colIdx] = dist.Rand()
			sum += row[colIdx]
		}

		for colIdx := range row {
			row[colIdx] /= sum
		}
	}

	return &Matrix{
		rows: rows,
		cols: cols,
		vals: vals,
	}, nil
}
