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

import (
	"strings"

	"github.com/penny-vault/pv-mpt/matrix"
)

// SymbolPrices is one instrument's price history. Prices are ordered oldest
// to newest; the ordering must be consistent across every instrument in a
// request.
type SymbolPrices struct {
	Symbol string
	Prices matrix.Vector[float64]
}

// NewSymbolPrices creates a price history for symbol; the ticker is upper cased
func NewSymbolPrices(symbol string, prices []float64) SymbolPrices {
	return SymbolPrices{
		Symbol: strings.ToUpper(symbol),
		Prices: matrix.VectorOf(prices...),
	}
}

// Symbols converts a list of tickers into an upper cased symbol vector
func Symbols(tickers ...string) matrix.Vector[string] {
	upper := make([]string, len(tickers))
	for idx, ticker := range tickers {
		upper[idx] = strings.ToUpper(strings.TrimSpace(ticker))
	}
	return matrix.VectorOf(upper...)
}
