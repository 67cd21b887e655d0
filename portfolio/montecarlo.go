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

// SimulationOptions configures the Monte Carlo simulator. Count must be at
// least MinCount (DefaultMinSimulations when zero).
type SimulationOptions struct {
	Count           int
	MinCount        int
	Seed            uint64
	AllowShortSales bool
	RiskFreeRate    float64
}

func DefaultSimulationOptions() SimulationOptions {
	return SimulationOptions{
		Count:    DefaultSimulationCount,
		MinCount: DefaultMinSimulations,
		Seed:     DefaultSimulationSeed,
	}
}

// Simulation holds every sampled portfolio together with the empirical
// stand-ins for the minimum variance and tangency portfolios
type Simulation struct {
	Portfolios   []*Stats `json:"portfolios"`
	MinStdDev    *Stats   `json:"minStdDev"`
	MaxSharpe    *Stats   `json:"maxSharpe"`
	RiskFreeRate float64  `json:"riskFreeRate"`
}

// Simulate draws Count random weight vectors with matrix.RandomWeights and
// evaluates each against rr. It does not require an invertible covariance
// matrix and is the fallback when Tangency fails with ErrNotInvertible.
// The same options always produce the same simulation.
func Simulate(rr *stats.ReturnRateStats, opts SimulationOptions) (*Simulation, error) {
	if err := rr.Validate(); err != nil {
		return nil, err
	}

	minCount := opts.MinCount
	if minCount <= 0 {
		minCount = DefaultMinSimulations
	}

	if opts.Count < minCount {
		return nil, fmt.Errorf("need at least %d simulations, got %d: %w", minCount, opts.Count, ErrInvalidArgument)
	}

	if opts.RiskFreeRate < 0 || math.IsNaN(opts.RiskFreeRate) {
		return nil, fmt.Errorf("risk-free rate must be a non-negative number, got %f: %w", opts.RiskFreeRate, ErrInvalidArgument)
	}

	weights, err := sampleWeights(rr.Assets(), opts)
	if err != nil {
		return nil, err
	}

	sim := &Simulation{
		Portfolios:   make([]*Stats, 0, opts.Count),
		RiskFreeRate: opts.RiskFreeRate,
	}

	bestSharpe := math.Inf(-1)
	for rowIdx := 0; rowIdx < weights.Rows(); rowIdx++ {
		s, err := statsFromWeights(weights.Row(rowIdx), rr)
		if err != nil {
			return nil, err
		}
		sim.Portfolios = append(sim.Portfolios, s)

		if sim.MinStdDev == nil || s.StdDev < sim.MinStdDev.StdDev {
			sim.MinStdDev = s
		}

		if sharpe := s.Sharpe(opts.RiskFreeRate); !math.IsNaN(sharpe) && sharpe > bestSharpe {
			bestSharpe = sharpe
			sim.MaxSharpe = s
		}
	}

	return sim, nil
}

// sampleWeights draws the simulated weight vectors. A single instrument has
// only one fully invested portfolio, so every sample holds all of it.
func sampleWeights(assets int, opts SimulationOptions) (*matrix.Matrix, error) {
	if assets == 1 {
		return matrix.Fill(opts.Count, 1, 1)
	}
	return matrix.RandomWeights(opts.Count, assets, opts.Seed, opts.AllowShortSales)
}
