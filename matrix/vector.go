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

import "fmt"

// NewVector creates a vector of n elements; vals is copied
func NewVector[T any](n int, vals []T) (Vector[T], error) {
	if len(vals) != n {
		return Vector[T]{}, fmt.Errorf("declared %d elements but have %d: %w", n, len(vals), ErrDimensionMismatch)
	}

	v := Vector[T]{
		n:    n,
		vals: make([]T, n),
	}
	copy(v.vals, vals)
	return v, nil
}

// VectorOf creates a vector whose length is taken from vals
func VectorOf[T any](vals ...T) Vector[T] {
	v, _ := NewVector(len(vals), vals)
	return v
}

// Validate checks that the declared length agrees with the stored values
func (v Vector[T]) Validate() error {
	if len(v.vals) != v.n {
		return fmt.Errorf("declared %d elements but have %d: %w", v.n, len(v.vals), ErrDimensionMismatch)
	}
	return nil
}

// Len returns the number of elements
func (v Vector[T]) Len() int {
	return v.n
}

// At returns element i
func (v Vector[T]) At(i int) T {
	return v.vals[i]
}

// Values returns a copy of the elements
func (v Vector[T]) Values() []T {
	vals := make([]T, len(v.vals))
	copy(vals, v.vals)
	return vals
}
