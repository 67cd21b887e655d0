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

package matrix

// Matrix is an immutable, row-major M×N grid of values. The declared
// dimensions are stored alongside the data and checked at every
// construction boundary, e.g.,
//
//	VFINX  PRIDX
//	1      4
//	2      5
//	3      6
//
// At(0, 1) = 4
// Columns are semantically meaningful: one column is one instrument.
type Matrix struct {
	rows int
	cols int
	vals [][]float64
}

// Vector is an ordered sequence of N elements, used for symbol lists and
// price series.
type Vector[T any] struct {
	n    int
	vals []T
}
