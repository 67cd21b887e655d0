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

package stats

import (
	"fmt"
	"math"

	"github.com/penny-vault/pv-mpt/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ReturnRates converts a K×N price matrix into a (K-1)×N matrix of simple
// returns where result[i][j] = prices[i+1][j] / prices[i][j] - 1. Adjacent
// rows are treated as consecutive time steps.
func ReturnRates(prices *matrix.Matrix) (*matrix.Matrix, error) {
	if err := prices.Validate(); err != nil {
		return nil, err
	}

	rows, cols := prices.Dim()
	if rows < 2 {
		return nil, fmt.Errorf("return rates need at least 2 price points, got %d: %w", rows, matrix.ErrInvalidArgument)
	}

	rr := make([][]float64, rows-1)
	prev := prices.Row(0)
	for rowIdx := 1; rowIdx < rows; rowIdx++ {
		curr := prices.Row(rowIdx)
		rr[rowIdx-1] = make([]float64, cols)
		for colIdx := range curr {
			if prev[colIdx] == 0 || math.IsNaN(prev[colIdx]) || math.IsNaN(curr[colIdx]) {
				return nil, fmt.Errorf("cannot compute return from price %f to %f at row %d column %d: %w",
					prev[colIdx], curr[colIdx], rowIdx, colIdx, matrix.ErrInvalidArgument)
			}
			rr[rowIdx-1][colIdx] = curr[colIdx]/prev[colIdx] - 1
		}
		prev = curr
	}

	return matrix.New(rows-1, cols, rr)
}

// Mean computes the arithmetic mean of each column and returns an N×1 matrix
func Mean(m *matrix.Matrix) (*matrix.Matrix, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	_, cols := m.Dim()
	mu := make([]float64, cols)
	for colIdx := range mu {
		mu[colIdx] = stat.Mean(m.Col(colIdx), nil)
	}

	return matrix.ColVector(mu)
}

// Covariance computes the N×N covariance matrix of the columns of m. The
// sum of cross products is divided by rows when population is true and by
// rows-1 otherwise. Only the lower triangle is computed and then mirrored so
// the result is exactly symmetric.
func Covariance(m *matrix.Matrix, population bool) (*matrix.Matrix, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	rows, cols := m.Dim()
	denom := float64(rows - 1)
	if population {
		denom = float64(rows)
	}

	if denom <= 0 {
		return nil, fmt.Errorf("sample covariance needs at least 2 observations, got %d: %w", rows, matrix.ErrInvalidArgument)
	}

	mu := make([]float64, cols)
	centered := make([][]float64, cols)
	for colIdx := range centered {
		col := m.Col(colIdx)
		mu[colIdx] = stat.Mean(col, nil)
		floats.AddConst(-mu[colIdx], col)
		centered[colIdx] = col
	}

	cov := make([][]float64, cols)
	for jj := range cov {
		cov[jj] = make([]float64, cols)
	}

	for jj := 0; jj < cols; jj++ {
		for kk := 0; kk <= jj; kk++ {
			cov[jj][kk] = floats.Dot(centered[jj], centered[kk]) / denom
			cov[kk][jj] = cov[jj][kk]
		}
	}

	return matrix.New(cols, cols, cov)
}

// PortfolioStdDev computes sqrt(w · Σ · wᵗ) for a 1×N weight row vector and
// an N×N covariance matrix
func PortfolioStdDev(weights, covariance *matrix.Matrix) (float64, error) {
	if err := weights.Validate(); err != nil {
		return 0, err
	}

	if weights.Rows() != 1 {
		return 0, fmt.Errorf("weights must be a row vector, got %dx%d: %w", weights.Rows(), weights.Cols(), matrix.ErrDimensionMismatch)
	}

	wc, err := matrix.Multiply(weights, covariance)
	if err != nil {
		return 0, err
	}

	variance, err := matrix.Multiply(wc, weights.Transpose())
	if err != nil {
		return 0, err
	}

	v, err := variance.Scalar()
	if err != nil {
		return 0, err
	}

	// rounding can leave the variance of a riskless combination slightly negative
	return math.Sqrt(math.Max(v, 0)), nil
}

// PortfolioReturn computes the expected return w · μ for a 1×N weight row
// vector and an N×1 expected return vector
func PortfolioReturn(weights, expected *matrix.Matrix) (float64, error) {
	if err := weights.Validate(); err != nil {
		return 0, err
	}
	if err := expected.Validate(); err != nil {
		return 0, err
	}

	if weights.Rows() != 1 || expected.Cols() != 1 {
		return 0, fmt.Errorf("expected 1xN weights and Nx1 returns, got %dx%d and %dx%d: %w",
			weights.Rows(), weights.Cols(), expected.Rows(), expected.Cols(), matrix.ErrDimensionMismatch)
	}

	if weights.Cols() != expected.Rows() {
		return 0, fmt.Errorf("%d weights for %d returns: %w", weights.Cols(), expected.Rows(), matrix.ErrDimensionMismatch)
	}

	return floats.Dot(weights.Row(0), expected.Col(0)), nil
}
