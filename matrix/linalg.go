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
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Det computes the determinant of a square matrix
func (m *Matrix) Det() (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}

	if !m.IsSquare() {
		return 0, fmt.Errorf("determinant of %dx%d matrix: %w", m.rows, m.cols, ErrDimensionMismatch)
	}

	return mat.Det(m.dense()), nil
}

// IsInvertible reports whether m is square with a non-zero determinant. The
// determinant is evaluated in log space so that large, well conditioned
// covariance matrices do not underflow to zero; matrices whose LU condition
// number exceeds mat.ConditionTolerance are numerically singular and also
// reported as not invertible.
func (m *Matrix) IsInvertible() bool {
	if m.Validate() != nil || !m.IsSquare() {
		return false
	}

	var lu mat.LU
	lu.Factorize(m.dense())

	logDet, sign := lu.LogDet()
	if sign == 0 || math.IsNaN(logDet) || math.IsInf(logDet, 0) {
		return false
	}

	return lu.Cond() <= mat.ConditionTolerance
}

// Inverse returns the general inverse of m. Fails with ErrDimensionMismatch
// if m is not square and ErrNotInvertible if it is singular.
func (m *Matrix) Inverse() (*Matrix, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if !m.IsSquare() {
		return nil, fmt.Errorf("inverse of %dx%d matrix: %w", m.rows, m.cols, ErrDimensionMismatch)
	}

	if !m.IsInvertible() {
		return nil, fmt.Errorf("inverse of %dx%d matrix: %w", m.rows, m.cols, ErrNotInvertible)
	}

	var inv mat.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, fmt.Errorf("inverse: %s: %w", err.Error(), ErrNotInvertible)
		}
	}

	res := fromDense(&inv)
	if !res.IsFinite() {
		return nil, fmt.Errorf("inverse has non-finite elements: %w", ErrNotInvertible)
	}

	return res, nil
}

// Solve finds x such that a·x = b using an LU factorization of a. a must be
// square and share its row count with b. Ill-conditioned systems are accepted
// as long as the solution is finite.
func Solve(a, b *Matrix) (*Matrix, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if !a.IsSquare() {
		return nil, fmt.Errorf("solve with %dx%d coefficient matrix: %w", a.rows, a.cols, ErrDimensionMismatch)
	}

	if a.rows != b.rows {
		return nil, fmt.Errorf("solve %dx%d system with %dx%d right-hand side: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}

	var x mat.Dense
	if err := x.Solve(a.dense(), b.dense()); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, fmt.Errorf("solve: %s: %w", err.Error(), ErrNotInvertible)
		}
	}

	res := fromDense(&x)
	if res.rows != a.cols || res.cols != b.cols || !res.IsFinite() {
		return nil, fmt.Errorf("solution has non-finite elements: %w", ErrNotInvertible)
	}

	return res, nil
}

// dense converts m into a gonum matrix
func (m *Matrix) dense() *mat.Dense {
	data := make([]float64, 0, m.rows*m.cols)
	for _, row := range m.vals {
		data = append(data, row...)
	}
	return mat.NewDense(m.rows, m.cols, data)
}

func fromDense(d mat.Matrix) *Matrix {
	rows, cols := d.Dims()
	res := &Matrix{
		rows: rows,
		cols: cols,
		vals: zeros(rows, cols),
	}

	for ii := 0; ii < rows; ii++ {
		for jj := 0; jj < cols; jj++ {
			res.vals[ii][jj] = d.At(ii, jj)
		}
	}
	return res
}
