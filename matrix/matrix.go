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

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// New creates a rows×cols matrix from vals. vals is copied; the call fails
// with ErrDimensionMismatch if vals is not rectangular or does not match
// the declared dimensions.
func New(rows, cols int, vals [][]float64) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("matrix shape %dx%d: %w", rows, cols, ErrInvalidArgument)
	}

	m := &Matrix{
		rows: rows,
		cols: cols,
		vals: make([][]float64, len(vals)),
	}

	for idx, row := range vals {
		m.vals[idx] = make([]float64, len(row))
		copy(m.vals[idx], row)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// FromRows creates a matrix whose dimensions are taken from vals
func FromRows(vals [][]float64) (*Matrix, error) {
	if len(vals) == 0 {
		return nil, fmt.Errorf("no rows: %w", ErrInvalidArgument)
	}
	return New(len(vals), len(vals[0]), vals)
}

// Zeros returns a rows×cols matrix of zeros
func Zeros(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("matrix shape %dx%d: %w", rows, cols, ErrInvalidArgument)
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		vals: zeros(rows, cols),
	}, nil
}

// Fill returns a rows×cols matrix with every element set to val
func Fill(rows, cols int, val float64) (*Matrix, error) {
	m, err := Zeros(rows, cols)
	if err != nil {
		return nil, err
	}

	for _, row := range m.vals {
		for colIdx := range row {
			row[colIdx] = val
		}
	}
	return m, nil
}

// RowVector creates a 1×N matrix
func RowVector(vals []float64) (*Matrix, error) {
	return New(1, len(vals), [][]float64{vals})
}

// ColVector creates an N×1 matrix
func ColVector(vals []float64) (*Matrix, error) {
	rows := make([][]float64, len(vals))
	for idx, val := range vals {
		rows[idx] = []float64{val}
	}
	return New(len(vals), 1, rows)
}

// Validate checks that the stored values are rectangular and agree with the
// declared dimensions
func (m *Matrix) Validate() error {
	if m == nil {
		return fmt.Errorf("nil matrix: %w", ErrInvalidArgument)
	}

	if len(m.vals) != m.rows {
		return fmt.Errorf("declared %d rows but have %d: %w", m.rows, len(m.vals), ErrDimensionMismatch)
	}

	for rowIdx, row := range m.vals {
		if len(row) != m.cols {
			return fmt.Errorf("row %d has %d columns, expected %d: %w", rowIdx, len(row), m.cols, ErrDimensionMismatch)
		}
	}

	return nil
}

// Dim returns the number of rows and columns
func (m *Matrix) Dim() (int, int) {
	return m.rows, m.cols
}

func (m *Matrix) Rows() int {
	return m.rows
}

func (m *Matrix) Cols() int {
	return m.cols
}

// At returns the value at row i, column j; panics if the index is out of range
func (m *Matrix) At(i, j int) float64 {
	return m.vals[i][j]
}

// Row returns a copy of row i
func (m *Matrix) Row(i int) []float64 {
	row := make([]float64, m.cols)
	copy(row, m.vals[i])
	return row
}

// Col returns a copy of column j
func (m *Matrix) Col(j int) []float64 {
	col := make([]float64, m.rows)
	for rowIdx, row := range m.vals {
		col[rowIdx] = row[j]
	}
	return col
}

// Values returns a deep copy of the underlying rows
func (m *Matrix) Values() [][]float64 {
	vals := make([][]float64, m.rows)
	for idx := range m.vals {
		vals[idx] = m.Row(idx)
	}
	return vals
}

// IsSquare reports whether the matrix has as many rows as columns
func (m *Matrix) IsSquare() bool {
	return m.rows == m.cols
}

// IsFinite reports whether every element is neither NaN nor ±Inf
func (m *Matrix) IsFinite() bool {
	for _, row := range m.vals {
		for _, val := range row {
			if math.IsNaN(val) || math.IsInf(val, 0) {
				return false
			}
		}
	}
	return true
}

// Transpose returns a new N×M matrix
func (m *Matrix) Transpose() *Matrix {
	return fromDense(m.dense().T())
}

// Multiply computes a·b; fails with ErrDimensionMismatch if a.Cols() != b.Rows()
func Multiply(a, b *Matrix) (*Matrix, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if a.cols != b.rows {
		return nil, fmt.Errorf("multiply %dx%d by %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}

	var c mat.Dense
	c.Mul(a.dense(), b.dense())
	return fromDense(&c), nil
}

// Scale multiplies every element by scalar and returns a new matrix
func (m *Matrix) Scale(scalar float64) *Matrix {
	res := &Matrix{
		rows: m.rows,
		cols: m.cols,
		vals: m.Values(),
	}

	for _, row := range res.vals {
		for colIdx := range row {
			row[colIdx] *= scalar
		}
	}
	return res
}

// Scalar returns the single value of a 1×1 matrix
func (m *Matrix) Scalar() (float64, error) {
	if m.rows != 1 || m.cols != 1 {
		return 0, fmt.Errorf("scalar of %dx%d matrix: %w", m.rows, m.cols, ErrDimensionMismatch)
	}
	return m.vals[0][0], nil
}

func zeros(rows, cols int) [][]float64 {
	vals := make([][]float64, rows)
	for idx := range vals {
		vals[idx] = make([]float64, cols)
	}
	return vals
}
