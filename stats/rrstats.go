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

	"github.com/penny-vault/pv-mpt/matrix"
	"gonum.org/v1/gonum/floats"
)

// ReturnRateStats holds the sufficient statistics consumed by every solver.
// It is derived once per analysis so that GMV, Tangency and frontier results
// for the same request are consistent.
type ReturnRateStats struct {
	ExpectedReturns *matrix.Matrix // N×1
	Covariance      *matrix.Matrix // N×N
}

// NewReturnRateStats derives expected returns and the return covariance from
// a K×N price matrix
func NewReturnRateStats(prices *matrix.Matrix, population bool) (*ReturnRateStats, error) {
	rr, err := ReturnRates(prices)
	if err != nil {
		return nil, err
	}

	expected, err := Mean(rr)
	if err != nil {
		return nil, err
	}

	cov, err := Covariance(rr, population)
	if err != nil {
		return nil, err
	}

	return &ReturnRateStats{
		ExpectedReturns: expected,
		Covariance:      cov,
	}, nil
}

// FromMoments wraps precomputed expected returns (N×1) and covariance (N×N)
func FromMoments(expected, covariance *matrix.Matrix) (*ReturnRateStats, error) {
	rr := &ReturnRateStats{
		ExpectedReturns: expected,
		Covariance:      covariance,
	}

	if err := rr.Validate(); err != nil {
		return nil, err
	}

	return rr, nil
}

// Validate checks that the expected returns and covariance agree in shape
func (rr *ReturnRateStats) Validate() error {
	if rr == nil || rr.ExpectedReturns == nil || rr.Covariance == nil {
		return fmt.Errorf("missing return rate statistics: %w", matrix.ErrInvalidArgument)
	}

	if err := rr.ExpectedReturns.Validate(); err != nil {
		return err
	}

	if err := rr.Covariance.Validate(); err != nil {
		return err
	}

	n := rr.ExpectedReturns.Rows()
	if rr.ExpectedReturns.Cols() != 1 || rr.Covariance.Rows() != n || rr.Covariance.Cols() != n {
		return fmt.Errorf("expected returns %dx%d do not match covariance %dx%d: %w",
			rr.ExpectedReturns.Rows(), rr.ExpectedReturns.Cols(), rr.Covariance.Rows(), rr.Covariance.Cols(),
			matrix.ErrDimensionMismatch)
	}

	return nil
}

// Assets returns the number of instruments
func (rr *ReturnRateStats) Assets() int {
	return rr.ExpectedReturns.Rows()
}

// MaxExpectedReturn returns the largest expected return among all instruments
func (rr *ReturnRateStats) MaxExpectedReturn() float64 {
	return floats.Max(rr.ExpectedReturns.Col(0))
}
