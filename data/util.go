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

package data

// partition splits the indices [0, n) into consecutive chunks of at most chunkSize
func partition(n int, chunkSize int) [][]int {
	if n == 0 {
		return nil
	}

	divided := make([][]int, 0, (n+chunkSize-1)/chunkSize)
	for prev := 0; prev < n; prev += chunkSize {
		next := prev + chunkSize
		if next > n {
			next = n
		}

		chunk := make([]int, 0, next-prev)
		for idx := prev; idx < next; idx++ {
			chunk = append(chunk, idx)
		}
		divided = append(divided, chunk)
	}
	return divided
}

type quoteResult struct {
	Index  int
	Ticker string
	Prices []float64
	Err    error
}
