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

package portfolio

import (
	"fmt"
	"math"

	"github.com/penny-vault/pv-mpt/matrix"
	"github.com/penny-vault/pv-mpt/stats"
	"gonum.org/v1/gonum/floats"
)

// flatTolerance is the spread of expected returns below which every fully
// invested portfolio is considered to earn the same return
const flatTolerance = 1e-12

// GlobalMinimumVariance finds the portfolio that minimizes wᵗΣw subject to
// Σw = 1 by solving the (N+1)×(N+1) Lagrangian system
//
//	| 2Σ  1 | |w| = |0|
//	| 1ᵗ  0 | |λ|   |1|
//
// Short sales are not restricted; weights may be negative.
func GlobalMinimumVariance(rr *stats.ReturnRateStats) (*Stats, error) {
	if err := rr.Validate(); err != nil {
		return nil, err
	}

	n := rr.Assets()
	a := kktBlock(rr.Covariance, n+1)
	for ii := 0; ii < n; ii++ {
		a[ii][n] = 1
		a[n][ii] = 1
	}

	b := make([]float64, n+1)
	b[n] = 1

	weights, err := solveWeights(a, b, n)
	if err != nil {
		return nil, fmt.Errorf("global minimum variance: %w", err)
	}

	return statsFromWeights(weights, rr)
}

// Tangency computes the maximum Sharpe ratio portfolio for the risk-free rate
//
//	w = Σ⁻¹(μ - rf·1) / (1ᵗΣ⁻¹(μ - rf·1))
//
// The covariance matrix must be invertible; if it is not ErrNotInvertible is
// returned and callers should fall back to Simulate.
func Tangency(rr *stats.ReturnRateStats, riskFree float64) (*Stats, error) {
	if err := rr.Validate(); err != nil {
		return nil, err
	}

	if riskFree < 0 || math.IsNaN(riskFree) || math.IsInf(riskFree, 0) {
		return nil, fmt.Errorf("risk-free rate must be a non-negative number, got %f: %w", riskFree, ErrInvalidArgument)
	}

	if !rr.Covariance.IsInvertible() {
		return nil, fmt.Errorf("tangency portfolio needs an invertible covariance matrix: %w", ErrNotInvertible)
	}

	inv, err := rr.Covariance.Inverse()
	if err != nil {
		return nil, err
	}

	n := rr.Assets()
	excessVals := rr.ExpectedReturns.Col(0)
	for idx := range excessVals {
		excessVals[idx] -= riskFree
	}

	excess, err := matrix.ColVector(excessVals)
	if err != nil {
		return nil, err
	}

	z, err := matrix.Multiply(inv, excess)
	if err != nil {
		return nil, err
	}

	ones, err := matrix.Fill(1, n, 1)
	if err != nil {
		return nil, err
	}

	denomMatrix, err := matrix.Multiply(ones, z)
	if err != nil {
		return nil, err
	}

	denom, err := denomMatrix.Scalar()
	if err != nil {
		return nil, err
	}

	// the risk-free rate equals the return of the minimum variance portfolio;
	// the tangent line is parallel to the frontier asymptote
	if denom == 0 || math.IsNaN(denom) || math.IsInf(denom, 0) {
		return nil, fmt.Errorf("tangency portfolio undefined for risk-free rate %f: %w", riskFree, ErrInvalidArgument)
	}

	weights := z.Col(0)
	for idx := range weights {
		weights[idx] /= denom
	}

	return statsFromWeights(weights, rr)
}

// TargetReturn finds the minimum variance portfolio whose expected return is
// exactly target by solving the (N+2)×(N+2) system
//
//	| 2Σ  μ  1 | |w |   |0|
//	| μᵗ  0  0 | |λ1| = |r|
//	| 1ᵗ  0  0 | |λ2|   |1|
//
// When every instrument has the same expected return the system is singular
// and the only attainable target is that return, which is met by the GMV
// portfolio. Any other target fails with ErrInvalidArgument.
func TargetReturn(rr *stats.ReturnRateStats, target float64) (*Stats, error) {
	if err := rr.Validate(); err != nil {
		return nil, err
	}

	if math.IsNaN(target) || math.IsInf(target, 0) {
		return nil, fmt.Errorf("target return must be finite: %w", ErrInvalidArgument)
	}

	n := rr.Assets()
	mu := rr.ExpectedReturns.Col(0)
	if floats.Max(mu)-floats.Min(mu) <= flatTolerance {
		if math.Abs(target-mu[0]) > flatTolerance {
			return nil, fmt.Errorf("target return %f is unattainable, every instrument returns %f: %w", target, mu[0], ErrInvalidArgument)
		}

		gmv, err := GlobalMinimumVariance(rr)
		if err != nil {
			return nil, fmt.Errorf("target return %f: %w", target, err)
		}
		return gmv, nil
	}

	a := kktBlock(rr.Covariance, n+2)
	for ii := 0; ii < n; ii++ {
		a[ii][n] = mu[ii]
		a[n][ii] = mu[ii]
		a[ii][n+1] = 1
		a[n+1][ii] = 1
	}

	b := make([]float64, n+2)
	b[n] = target
	b[n+1] = 1

	weights, err := solveWeights(a, b, n)
	if err != nil {
		return nil, fmt.Errorf("target return %f: %w", target, err)
	}

	return statsFromWeights(weights, rr)
}

// kktBlock allocates a size×size system whose top-left block is 2Σ
func kktBlock(cov *matrix.Matrix, size int) [][]float64 {
	n := cov.Rows()
	a := make([][]float64, size)
	for ii := range a {
		a[ii] = make([]float64, size)
		if ii < n {
			for jj, val := range cov.Row(ii) {
				a[ii][jj] = 2 * val
			}
		}
	}
	return a
}

// solveWeights solves a·z = b and returns the first n components of z;
// the remaining components are Lagrange multipliers
func solveWeights(a [][]float64, b []float64, n int) ([]float64, error) {
	am, err := matrix.FromRows(a)
	if err != nil {
		return nil, err
	}

	bm, err := matrix.ColVector(b)
	if err != nil {
		return nil, err
	}

	z, err := matrix.Solve(am, bm)
	if err != nil {
		return nil, err
	}

	return z.Col(0)[:n], nil
}
