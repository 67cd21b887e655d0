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
)

// Stats describes a solved or sampled portfolio: one weight per instrument
// (negative when short), its standard deviation and its expected return
// rate. Stats are created once per solve or sample and never modified.
type Stats struct {
	Weights        []float64 `json:"weights"`
	StdDev         float64   `json:"stdDev"`
	ExpectedReturn float64   `json:"expectedReturnRate"`
}

// NewStats computes the standard deviation and expected return of a 1×N
// weight vector against the supplied return rate statistics
func NewStats(weights *matrix.Matrix, rr *stats.ReturnRateStats) (*Stats, error) {
	if err := rr.Validate(); err != nil {
		return nil, err
	}

	if err := weights.Validate(); err != nil {
		return nil, err
	}

	if weights.Rows() != 1 || weights.Cols() != rr.Assets() {
		return nil, fmt.Errorf("expected 1x%d weights, got %dx%d: %w", rr.Assets(), weights.Rows(), weights.Cols(), ErrDimensionMismatch)
	}

	stdDev, err := stats.PortfolioStdDev(weights, rr.Covariance)
	if err != nil {
		return nil, err
	}

	expected, err := stats.PortfolioReturn(weights, rr.ExpectedReturns)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Weights:        weights.Row(0),
		StdDev:         stdDev,
		ExpectedReturn: expected,
	}, nil
}

// statsFromWeights is a convenience wrapper for solvers that produce a slice
func statsFromWeights(weights []float64, rr *stats.ReturnRateStats) (*Stats, error) {
	w, err := matrix.RowVector(weights)
	if err != nil {
		return nil, err
	}
	return NewStats(w, rr)
}

// Sharpe computes (ExpectedReturn - riskFree) / StdDev; NaN for a riskless portfolio
func (s *Stats) Sharpe(riskFree float64) float64 {
	if s.StdDev == 0 {
		return math.NaN()
	}
	return (s.ExpectedReturn - riskFree) / s.StdDev
}

// WeightSum returns the sum of the portfolio weights
func (s *Stats) WeightSum() float64 {
	sum := 0.0
	for _, w := range s.Weights {
		sum += w
	}
	return sum
}
