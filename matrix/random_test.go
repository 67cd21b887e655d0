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

package matrix_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/penny-vault/pv-mpt/matrix"
	"gonum.org/v1/gonum/floats"
)

var _ = Describe("Random weights", func() {
	DescribeTable("every row sums to one",
		func(rows, cols int, allowShortSales bool) {
			m, err := matrix.RandomWeights(rows, cols, 42, allowShortSales)
			Expect(err).To(BeNil())
			Expect(m.Rows()).To(Equal(rows))
			Expect(m.Cols()).To(Equal(cols))

			for rowIdx := 0; rowIdx < rows; rowIdx++ {
				Expect(floats.Sum(m.Row(rowIdx))).To(BeNumerically("~", 1.0, 1e-9))
			}
		},
		Entry("long only, 2 instruments", 50, 2, false),
		Entry("long only, 5 instruments", 200, 5, false),
		Entry("short sales, 3 instruments", 100, 3, true),
	)

	It("keeps weights in [0,1] when short sales are disallowed", func() {
		m, err := matrix.RandomWeights(500, 4, 7, false)
		Expect(err).To(BeNil())
		for rowIdx := 0; rowIdx < m.Rows(); rowIdx++ {
			for _, w := range m.Row(rowIdx) {
				Expect(w).To(BeNumerically(">=", 0.0))
				Expect(w).To(BeNumerically("<=", 1.0))
			}
		}
	})

	It("produces negative weights when short sales are allowed", func() {
		m, err := matrix.RandomWeights(100, 4, 7, true)
		Expect(err).To(BeNil())

		negative := false
		for rowIdx := 0; rowIdx < m.Rows(); rowIdx++ {
			if floats.Min(m.Row(rowIdx)) < 0 {
				negative = true
			}
		}
		Expect(negative).To(BeTrue())
	})

	It("is deterministic for the same seed", func() {
		m1, err := matrix.RandomWeights(20, 3, 1234, false)
		Expect(err).To(BeNil())
		m2, err := matrix.RandomWeights(20, 3, 1234, false)
		Expect(err).To(BeNil())
		Expect(m1.Values()).To(Equal(m2.Values()))
	})

	It("differs for different seeds", func() {
		m1, err := matrix.RandomWeights(20, 3, 1234, false)
		Expect(err).To(BeNil())
		m2, err := matrix.RandomWeights(20, 3, 4321, false)
		Expect(err).To(BeNil())
		Expect(m1.Values()).ToNot(Equal(m2.Values()))
	})

	DescribeTable("rejects invalid shapes",
		func(rows, cols int) {
			_, err := matrix.RandomWeights(rows, cols, 42, false)
			Expect(err).To(MatchError(matrix.ErrInvalidArgument))
		},
		Entry("zero rows", 0, 3),
		Entry("negative rows", -1, 3),
		Entry("single column", 10, 1),
		Entry("zero columns", 10, 0),
	)
})
