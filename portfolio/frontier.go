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

	"github.com/penny-vault/pv-mpt/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// FrontierOptions controls how densely the efficient frontier is sampled.
// Points portfolios are produced with alpha stepping evenly from AlphaStart
// to AlphaEnd, where alpha is the weight given to the minimum variance
// portfolio and 1-alpha the weight given to the max-return portfolio.
type FrontierOptions struct {
	Points     int
	AlphaStart float64
	AlphaEnd   float64
}

// DefaultFrontierOptions samples 21 points with alpha from 1 down to -1
func DefaultFrontierOptions() FrontierOptions {
	return FrontierOptions{
		Points:     DefaultFrontierPoints,
		AlphaStart: DefaultFrontierAlphaMax,
		AlphaEnd:   DefaultFrontierAlphaMin,
	}
}

func (opts FrontierOptions) validate() error {
	if opts.Points < 2 {
		return fmt.Errorf("frontier needs at least 2 points, got %d: %w", opts.Points, ErrInvalidArgument)
	}

	if math.IsNaN(opts.AlphaStart) || math.IsInf(opts.AlphaStart, 0) ||
		math.IsNaN(opts.AlphaEnd) || math.IsInf(opts.AlphaEnd, 0) {
		return fmt.Errorf("frontier alpha range must be finite: %w", ErrInvalidArgument)
	}

	return nil
}

// EfficientFrontier samples the frontier by two-fund separation between the
// global minimum variance portfolio and the minimum variance portfolio that
// targets the largest expected return of any single instrument. With the
// default options the first point is the GMV portfolio.
func EfficientFrontier(rr *stats.ReturnRateStats, opts FrontierOptions) ([]*Stats, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	gmv, maxReturn, err := frontierAnchors(rr)
	if err != nil {
		return nil, err
	}

	step := (opts.AlphaEnd - opts.AlphaStart) / float64(opts.Points-1)
	frontier := make([]*Stats, 0, opts.Points)
	for ii := 0; ii < opts.Points; ii++ {
		alpha := opts.AlphaStart + float64(ii)*step
		s, err := statsFromWeights(combine(alpha, gmv.Weights, maxReturn.Weights), rr)
		if err != nil {
			return nil, err
		}
		frontier = append(frontier, s)
	}

	return frontier, nil
}

// riskTolerance is how close a requested standard deviation must be to the
// only attainable one on a degenerate frontier
const riskTolerance = 1e-9

// TargetRisk finds the efficient portfolio on the upper branch of the
// frontier whose standard deviation equals target. target must be at least
// the standard deviation of the global minimum variance portfolio.
func TargetRisk(rr *stats.ReturnRateStats, target float64) (*Stats, error) {
	if math.IsNaN(target) || math.IsInf(target, 0) || target < 0 {
		return nil, fmt.Errorf("target risk must be a non-negative number: %w", ErrInvalidArgument)
	}

	gmv, maxReturn, err := frontierAnchors(rr)
	if err != nil {
		return nil, err
	}

	if target < gmv.StdDev {
		return nil, fmt.Errorf("target risk %f is below the minimum attainable %f: %w", target, gmv.StdDev, ErrInvalidArgument)
	}

	// w(α) = m + α·d with d = g - m; the variance along the line is
	// A·α² + B·α + C and is smallest at the GMV portfolio (α = 1)
	d := make([]float64, len(gmv.Weights))
	floats.SubTo(d, gmv.Weights, maxReturn.Weights)

	sigmaD := mulVec(rr, d)
	a := floats.Dot(d, sigmaD)
	b := 2 * floats.Dot(maxReturn.Weights, sigmaD)
	c := floats.Dot(maxReturn.Weights, mulVec(rr, maxReturn.Weights)) - target*target

	if a <= flatTolerance {
		// both anchors are the same portfolio; only the GMV risk is attainable
		if math.Abs(target-gmv.StdDev) > riskTolerance {
			return nil, fmt.Errorf("target risk %f is unattainable, the frontier is the single point %f: %w", target, gmv.StdDev, ErrInvalidArgument)
		}
		return gmv, nil
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		disc = 0
	}

	alpha := (-b - math.Sqrt(disc)) / (2 * a)
	return statsFromWeights(combine(alpha, gmv.Weights, maxReturn.Weights), rr)
}

func frontierAnchors(rr *stats.ReturnRateStats) (*Stats, *Stats, error) {
	if err := rr.Validate(); err != nil {
		return nil, nil, err
	}

	gmv, err := GlobalMinimumVariance(rr)
	if err != nil {
		return nil, nil, err
	}

	maxReturn, err := TargetReturn(rr, rr.MaxExpectedReturn())
	if err != nil {
		return nil, nil, err
	}

	return gmv, maxReturn, nil
}

// combine returns alpha·x + (1-alpha)·y
func combine(alpha float64, x, y []float64) []float64 {
	dst := make([]float64, len(x))
	floats.ScaleTo(dst, alpha, x)
	floats.AddScaled(dst, 1-alpha, y)
	return dst
}

// mulVec returns Σw
func mulVec(rr *stats.ReturnRateStats, w []float64) []float64 {
	n := rr.Assets()
	cov := mat.NewDense(n, n, nil)
	for ii := 0; ii < n; ii++ {
		cov.SetRow(ii, rr.Covariance.Row(ii))
	}

	var res mat.VecDense
	res.MulVec(cov, mat.NewVecDense(n, append([]float64{}, w...)))
	return res.RawVector().Data
}
