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

package analysis

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"
	"github.com/zeebo/blake3"

	"github.com/penny-vault/pv-mpt/data"
	"github.com/penny-vault/pv-mpt/matrix"
	"github.com/penny-vault/pv-mpt/portfolio"
	"github.com/penny-vault/pv-mpt/stats"
)

// Analyzer runs the full portfolio analysis pipeline: build the price
// matrix, derive return rate statistics and solve for the GMV, tangency,
// target and frontier portfolios. It is safe for concurrent use.
type Analyzer struct {
	cfg   Config
	log   zerolog.Logger
	cache *lru.Cache
}

// New creates an analyzer. Pass zerolog.Nop() to disable logging.
func New(cfg Config, logger zerolog.Logger) (*Analyzer, error) {
	a := &Analyzer{
		cfg: cfg,
		log: logger.With().Str("Component", "analysis").Logger(),
	}

	if cfg.CacheSize > 0 {
		cache, err := lru.New(cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		a.cache = cache
	}

	return a, nil
}

// Config returns the configuration the analyzer was created with
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Analyze computes every portfolio for req. When the GMV or tangency system
// is singular that portfolio is replaced by the matching sample of a Monte
// Carlo simulation and GMVFallback or TangencyFallback is set. A frontier
// that cannot be anchored is left empty.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	symbols := data.Symbols(req.Symbols...)
	if symbols.Len() == 0 {
		return nil, data.ErrNoSymbols
	}

	riskFree := a.cfg.RiskFreeRate
	if req.RiskFreeRate != nil {
		riskFree = *req.RiskFreeRate
	}

	if riskFree < 0 || math.IsNaN(riskFree) || math.IsInf(riskFree, 0) {
		return nil, fmt.Errorf("risk-free rate must be a non-negative number, got %f: %w", riskFree, portfolio.ErrInvalidArgument)
	}

	series := req.Series
	if len(series) == 0 {
		if req.Provider == nil {
			return nil, data.ErrNoPrices
		}

		var err error
		series, err = data.FetchAll(ctx, req.Provider, symbols, a.cfg.Concurrency)
		if err != nil {
			return nil, err
		}
	}

	prices, err := data.BuildPriceMatrix(symbols, series)
	if err != nil {
		return nil, err
	}

	rr, err := a.returnRateStats(prices)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Symbols:         symbols.Values(),
		RiskFreeRate:    riskFree,
		ExpectedReturns: rr.ExpectedReturns.Col(0),
		Covariance:      rr.Covariance.Values(),
	}

	result.GMV, err = portfolio.GlobalMinimumVariance(rr)
	switch {
	case errors.Is(err, portfolio.ErrNotInvertible):
		a.log.Warn().Err(err).Strs("Symbols", result.Symbols).Msg("minimum variance system is singular; estimating GMV portfolio with monte carlo simulation")
		result.GMVFallback = true
	case err != nil:
		return nil, err
	}

	result.Tangency, err = portfolio.Tangency(rr, riskFree)
	switch {
	case errors.Is(err, portfolio.ErrNotInvertible):
		a.log.Warn().Err(err).Strs("Symbols", result.Symbols).Msg("covariance matrix is not invertible; estimating tangency portfolio with monte carlo simulation")
		result.TangencyFallback = true
	case err != nil:
		return nil, err
	}

	frontierOpts := a.cfg.Frontier
	if req.FrontierPoints > 0 {
		frontierOpts.Points = req.FrontierPoints
	}

	result.Frontier, err = portfolio.EfficientFrontier(rr, frontierOpts)
	switch {
	case errors.Is(err, portfolio.ErrNotInvertible):
		a.log.Warn().Err(err).Strs("Symbols", result.Symbols).Msg("efficient frontier is undefined for these instruments")
		result.Frontier = []*portfolio.Stats{}
	case err != nil:
		return nil, err
	}

	if req.TargetReturn != nil {
		if result.Target, err = portfolio.TargetReturn(rr, *req.TargetReturn); err != nil {
			return nil, err
		}
	}

	if req.TargetRisk != nil {
		if result.TargetRisk, err = portfolio.TargetRisk(rr, *req.TargetRisk); err != nil {
			return nil, err
		}
	}

	if result.GMVFallback || result.TangencyFallback || a.cfg.AlwaysSimulate || req.Simulation != nil {
		simOpts := a.simulationOptions(req, riskFree)
		if result.Simulation, err = portfolio.Simulate(rr, simOpts); err != nil {
			return nil, err
		}

		if result.GMVFallback {
			result.GMV = result.Simulation.MinStdDev
		}
		if result.TangencyFallback {
			result.Tangency = result.Simulation.MaxSharpe
		}

		a.log.Debug().Object("Simulation", result.Simulation).Msg("monte carlo simulation complete")
	}

	a.log.Info().Strs("Symbols", result.Symbols).Object("GMV", result.GMV).Object("Tangency", result.Tangency).Msg("analysis complete")

	return result, nil
}

func (a *Analyzer) simulationOptions(req Request, riskFree float64) portfolio.SimulationOptions {
	opts := a.cfg.Simulation
	if req.Simulation != nil {
		opts = *req.Simulation
		if opts.MinCount == 0 {
			opts.MinCount = a.cfg.Simulation.MinCount
		}
	}
	opts.RiskFreeRate = riskFree
	return opts
}

// returnRateStats derives the statistics for prices, reusing a previous
// computation for identical price matrices
func (a *Analyzer) returnRateStats(prices *matrix.Matrix) (*stats.ReturnRateStats, error) {
	var key [32]byte
	if a.cache != nil {
		key = digest(prices, a.cfg.Population)
		if cached, ok := a.cache.Get(key); ok {
			a.log.Debug().Hex("Key", key[:]).Msg("return rate statistics cache hit")
			return cached.(*stats.ReturnRateStats), nil
		}
	}

	rr, err := stats.NewReturnRateStats(prices, a.cfg.Population)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		a.cache.Add(key, rr)
	}

	return rr, nil
}

// digest identifies a price matrix by the blake3 hash of its shape and values
func digest(prices *matrix.Matrix, population bool) [32]byte {
	hasher := blake3.New()
	buf := make([]byte, 8)

	rows, cols := prices.Dim()
	binary.LittleEndian.PutUint64(buf, uint64(rows))
	_, _ = hasher.Write(buf)
	binary.LittleEndian.PutUint64(buf, uint64(cols))
	_, _ = hasher.Write(buf)

	if population {
		_, _ = hasher.Write([]byte{1})
	} else {
		_, _ = hasher.Write([]byte{0})
	}

	for ii := 0; ii < rows; ii++ {
		for _, val := range prices.Row(ii) {
			binary.LittleEndian.PutUint64(buf, math.Float64bits(val))
			_, _ = hasher.Write(buf)
		}
	}

	var key [32]byte
	copy(key[:], hasher.Sum(nil))
	return key
}
