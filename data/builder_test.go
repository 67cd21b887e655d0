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

package data_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penny-vault/pv-mpt/data"
	"github.com/penny-vault/pv-mpt/matrix"
)

var _ = Describe("Price matrix builder", func() {
	var (
		nyx  data.SymbolPrices
		intc data.SymbolPrices
	)

	BeforeEach(func() {
		nyx = data.NewSymbolPrices("NYX", []float64{30.1, 30.4, 29.8, 31.0})
		intc = data.NewSymbolPrices("INTC", []float64{20.5, 20.7, 21.3, 21.1})
	})

	It("transposes histories into a KxN matrix in request order", func() {
		m, err := data.BuildPriceMatrix(data.Symbols("NYX", "INTC"), []data.SymbolPrices{nyx, intc})
		Expect(err).To(BeNil())

		rows, cols := m.Dim()
		Expect(rows).To(Equal(4))
		Expect(cols).To(Equal(2))
		Expect(m.Row(0)).To(Equal([]float64{30.1, 20.5}))
		Expect(m.Col(1)).To(Equal([]float64{20.5, 20.7, 21.3, 21.1}))
	})

	It("fails when histories come back in a different order", func() {
		_, err := data.BuildPriceMatrix(data.Symbols("NYX", "INTC"), []data.SymbolPrices{intc, nyx})
		Expect(err).To(MatchError(data.ErrSymbolOrderMismatch))

		var buildErr *data.BuildError
		Expect(errors.As(err, &buildErr)).To(BeTrue())
		Expect(buildErr.Symbols).To(Equal([]string{"INTC", "NYX"}))
	})

	It("fails when a symbol is missing", func() {
		_, err := data.BuildPriceMatrix(data.Symbols("NYX", "INTC"), []data.SymbolPrices{nyx})
		Expect(err).To(MatchError(data.ErrSymbolOrderMismatch))

		var buildErr *data.BuildError
		Expect(errors.As(err, &buildErr)).To(BeTrue())
		Expect(buildErr.Symbols).To(ConsistOf("INTC"))
	})

	It("fails when an instrument is missing trading days", func() {
		short := data.NewSymbolPrices("VFINX", []float64{300.0, 301.0, 299.5})
		_, err := data.BuildPriceMatrix(data.Symbols("NYX", "INTC", "VFINX"), []data.SymbolPrices{nyx, intc, short})
		Expect(err).To(MatchError(data.ErrPriceLengthMismatch))
		Expect(err).To(MatchError(matrix.ErrDimensionMismatch))

		var buildErr *data.BuildError
		Expect(errors.As(err, &buildErr)).To(BeTrue())
		Expect(buildErr.Symbols).To(Equal([]string{"VFINX"}))
		Expect(err.Error()).To(ContainSubstring("VFINX"))
	})

	It("fails for an empty symbol list", func() {
		_, err := data.BuildPriceMatrix(data.Symbols(), nil)
		Expect(err).To(MatchError(matrix.ErrInvalidArgument))
	})

	It("fails when every history is empty", func() {
		_, err := data.BuildPriceMatrix(data.Symbols("NYX"), []data.SymbolPrices{data.NewSymbolPrices("NYX", nil)})
		Expect(err).To(MatchError(data.ErrNoPrices))
	})

	It("upper cases requested symbols", func() {
		m, err := data.BuildPriceMatrix(data.Symbols("nyx", " intc"), []data.SymbolPrices{nyx, intc})
		Expect(err).To(BeNil())
		Expect(m.Cols()).To(Equal(2))
	})

	It("matches tickers regardless of case", func() {
		lower := data.SymbolPrices{Symbol: "nyx", Prices: matrix.VectorOf(30.1, 30.4, 29.8, 31.0)}
		m, err := data.BuildPriceMatrix(matrix.VectorOf("nyx", "INTC"), []data.SymbolPrices{lower, intc})
		Expect(err).To(BeNil())
		Expect(m.Col(0)).To(Equal([]float64{30.1, 30.4, 29.8, 31.0}))

		m, err = data.BuildPriceMatrix(matrix.VectorOf("nyx"), []data.SymbolPrices{data.NewSymbolPrices("nyx", []float64{1.0, 2.0})})
		Expect(err).To(BeNil())
		Expect(m.Rows()).To(Equal(2))
	})

	It("still rejects different tickers", func() {
		_, err := data.BuildPriceMatrix(matrix.VectorOf("nyse"), []data.SymbolPrices{nyx})
		Expect(err).To(MatchError(data.ErrSymbolOrderMismatch))
	})
})
