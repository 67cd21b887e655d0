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

package stats_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-mpt/matrix"
	"github.com/penny-vault/pv-mpt/stats"
)

var _ = Describe("Stats", func() {
	var (
		prices *matrix.Matrix
	)

	BeforeEach(func() {
		var err error
		prices, err = matrix.FromRows([][]float64{
			{100.0, 50.0},
			{110.0, 55.0},
			{99.0, 66.0},
			{108.9, 59.4},
		})
		Expect(err).To(BeNil())
	})

	Describe("when computing return rates", func() {
		It("yields one fewer row than the price matrix", func() {
			rr, err := stats.ReturnRates(prices)
			Expect(err).To(BeNil())
			Expect(rr.Rows()).To(Equal(3))
			Expect(rr.Cols()).To(Equal(2))
		})

		It("computes simple returns between adjacent rows", func() {
			rr, err := stats.ReturnRates(prices)
			Expect(err).To(BeNil())

			expected := [][]float64{{0.1, 0.1}, {-0.1, 0.2}, {0.1, -0.1}}
			for ii, row := range expected {
				for jj, val := range row {
					Expect(rr.At(ii, jj)).To(BeNumerically("~", val, 1e-12))
				}
			}
		})

		It("fails with fewer than 2 price points", func() {
			single, err := matrix.FromRows([][]float64{{100.0, 50.0}})
			Expect(err).To(BeNil())

			_, err = stats.ReturnRates(single)
			Expect(err).To(MatchError(matrix.ErrInvalidArgument))
		})

		It("fails on a zero price", func() {
			bad, err := matrix.FromRows([][]float64{{100.0, 0.0}, {101.0, 1.0}})
			Expect(err).To(BeNil())

			_, err = stats.ReturnRates(bad)
			Expect(err).To(MatchError(matrix.ErrInvalidArgument))
		})
	})

	Describe("when computing the mean", func() {
		It("returns an Nx1 column of column means", func() {
			rr, err := stats.ReturnRates(prices)
			Expect(err).To(BeNil())

			mu, err := stats.Mean(rr)
			Expect(err).To(BeNil())
			Expect(mu.Rows()).To(Equal(2))
			Expect(mu.Cols()).To(Equal(1))
			Expect(mu.At(0, 0)).To(BeNumerically("~", 0.1/3, 1e-12))
			Expect(mu.At(1, 0)).To(BeNumerically("~", 0.2/3, 1e-12))
		})
	})

	Describe("when computing the covariance", func() {
		var rr *matrix.Matrix

		BeforeEach(func() {
			var err error
			rr, err = stats.ReturnRates(prices)
			Expect(err).To(BeNil())
		})

		It("uses the sample denominator by default", func() {
			cov, err := stats.Covariance(rr, false)
			Expect(err).To(BeNil())
			Expect(cov.At(0, 0)).To(BeNumerically("~", 0.04/3, 1e-12))
			Expect(cov.At(1, 1)).To(BeNumerically("~", 0.07/3, 1e-12))
			Expect(cov.At(0, 1)).To(BeNumerically("~", -0.04/3, 1e-12))
		})

		It("uses the population denominator when asked", func() {
			cov, err := stats.Covariance(rr, true)
			Expect(err).To(BeNil())
			Expect(cov.At(0, 0)).To(BeNumerically("~", 0.08/9, 1e-12))
		})

		It("is exactly symmetric", func() {
			wide, err := matrix.FromRows([][]float64{
				{0.013, -0.021, 0.007, 0.0301},
				{-0.004, 0.017, 0.0112, -0.019},
				{0.0211, 0.0033, -0.0171, 0.0042},
				{0.0071, -0.0093, 0.0024, 0.0118},
				{-0.0156, 0.0127, 0.0089, -0.0061},
			})
			Expect(err).To(BeNil())

			cov, err := stats.Covariance(wide, false)
			Expect(err).To(BeNil())
			for jj := 0; jj < 4; jj++ {
				for kk := 0; kk < 4; kk++ {
					Expect(cov.At(jj, kk)).To(Equal(cov.At(kk, jj)))
				}
			}
		})

		It("needs two observations for the sample estimate", func() {
			single, err := matrix.FromRows([][]float64{{0.1, 0.2}})
			Expect(err).To(BeNil())

			_, err = stats.Covariance(single, false)
			Expect(err).To(MatchError(matrix.ErrInvalidArgument))

			_, err = stats.Covariance(single, true)
			Expect(err).To(BeNil())
		})
	})

	Describe("when computing portfolio moments", func() {
		var cov *matrix.Matrix

		BeforeEach(func() {
			var err error
			cov, err = matrix.FromRows([][]float64{
				{0.0100, 0.0018, 0.0011},
				{0.0018, 0.0109, 0.0026},
				{0.0011, 0.0026, 0.0199},
			})
			Expect(err).To(BeNil())
		})

		It("computes the standard deviation of a single asset portfolio", func() {
			w, err := matrix.RowVector([]float64{1, 0, 0})
			Expect(err).To(BeNil())

			sd, err := stats.PortfolioStdDev(w, cov)
			Expect(err).To(BeNil())
			Expect(sd).To(BeNumerically("~", 0.1, 1e-12))
		})

		It("computes the standard deviation of the minimum variance weights", func() {
			w, err := matrix.RowVector([]float64{0.44110926, 0.36562630, 0.19326444})
			Expect(err).To(BeNil())

			sd, err := stats.PortfolioStdDev(w, cov)
			Expect(err).To(BeNil())
			Expect(sd).To(BeNumerically("~", 0.07268, 1e-5))
		})

		It("rejects column vector weights", func() {
			w, err := matrix.ColVector([]float64{1, 0, 0})
			Expect(err).To(BeNil())

			_, err = stats.PortfolioStdDev(w, cov)
			Expect(err).To(MatchError(matrix.ErrDimensionMismatch))
		})

		It("computes the expected return", func() {
			w, err := matrix.RowVector([]float64{0.5, 0.5, 0})
			Expect(err).To(BeNil())
			mu, err := matrix.ColVector([]float64{0.0427, 0.0015, 0.0285})
			Expect(err).To(BeNil())

			r, err := stats.PortfolioReturn(w, mu)
			Expect(err).To(BeNil())
			Expect(r).To(BeNumerically("~", 0.0221, 1e-12))
		})
	})

	Describe("when deriving return rate statistics", func() {
		It("builds expected returns and covariance from prices", func() {
			rr, err := stats.NewReturnRateStats(prices, false)
			Expect(err).To(BeNil())
			Expect(rr.Assets()).To(Equal(2))
			Expect(rr.ExpectedReturns.Rows()).To(Equal(2))
			Expect(rr.Covariance.Rows()).To(Equal(2))
			Expect(rr.MaxExpectedReturn()).To(BeNumerically("~", 0.2/3, 1e-12))
		})

		It("rejects moments that disagree in shape", func() {
			mu, err := matrix.ColVector([]float64{0.01, 0.02, 0.03})
			Expect(err).To(BeNil())
			cov, err := matrix.FromRows([][]float64{{1, 0}, {0, 1}})
			Expect(err).To(BeNil())

			_, err = stats.FromMoments(mu, cov)
			Expect(err).To(MatchError(matrix.ErrDimensionMismatch))
		})

		It("does not produce NaN for constant prices", func() {
			flat, err := matrix.FromRows([][]float64{{10, 20}, {10, 20}, {10, 20}})
			Expect(err).To(BeNil())

			rr, err := stats.NewReturnRateStats(flat, false)
			Expect(err).To(BeNil())
			Expect(math.IsNaN(rr.Covariance.At(0, 0))).To(BeFalse())
		})
	})
})
