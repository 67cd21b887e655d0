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
	"fmt"
	"strings"

	"github.com/penny-vault/pv-mpt/matrix"
)

// BuildPriceMatrix aligns per-symbol price histories into a K×N matrix with
// one column per symbol in the order given by symbols. The histories must
// come back in exactly the requested order and all have the same length K;
// neither condition is corrected silently. Tickers are compared without
// regard to case or surrounding space.
func BuildPriceMatrix(symbols matrix.Vector[string], series []SymbolPrices) (*matrix.Matrix, error) {
	if err := symbols.Validate(); err != nil {
		return nil, err
	}

	if symbols.Len() == 0 {
		return nil, ErrNoSymbols
	}

	if err := checkSymbolOrder(symbols, series); err != nil {
		return nil, err
	}

	k, err := checkPriceLengths(series)
	if err != nil {
		return nil, err
	}

	// series arrive N×K (one history per symbol); the result is K×N
	vals := make([][]float64, k)
	for rowIdx := range vals {
		vals[rowIdx] = make([]float64, len(series))
		for colIdx, sp := range series {
			vals[rowIdx][colIdx] = sp.Prices.At(rowIdx)
		}
	}

	return matrix.New(k, len(series), vals)
}

func checkSymbolOrder(symbols matrix.Vector[string], series []SymbolPrices) error {
	offending := make([]string, 0)

	n := symbols.Len()
	if len(series) > n {
		n = len(series)
	}

	for idx := 0; idx < n; idx++ {
		switch {
		case idx >= len(series):
			offending = append(offending, symbols.At(idx))
		case idx >= symbols.Len():
			offending = append(offending, series[idx].Symbol)
		case !sameSymbol(series[idx].Symbol, symbols.At(idx)):
			offending = append(offending, series[idx].Symbol)
		}
	}

	if len(offending) != 0 {
		return &BuildError{
			Kind:    ErrSymbolOrderMismatch,
			Symbols: offending,
		}
	}

	return nil
}

// sameSymbol compares tickers the way Symbols and NewSymbolPrices normalize them
func sameSymbol(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// checkPriceLengths returns the common history length. When lengths differ
// the symbols that disagree with the most common length are reported.
func checkPriceLengths(series []SymbolPrices) (int, error) {
	counts := make(map[int]int)
	modal := -1
	for _, sp := range series {
		if err := sp.Prices.Validate(); err != nil {
			return 0, fmt.Errorf("%s: %w", sp.Symbol, err)
		}

		l := sp.Prices.Len()
		counts[l]++
		if modal == -1 || counts[l] > counts[modal] {
			modal = l
		}
	}

	offending := make([]string, 0)
	for _, sp := range series {
		if sp.Prices.Len() != modal {
			offending = append(offending, sp.Symbol)
		}
	}

	if len(offending) != 0 {
		return 0, &BuildError{
			Kind:    ErrPriceLengthMismatch,
			Symbols: offending,
		}
	}

	if modal == 0 {
		syms := make([]string, len(series))
		for idx, sp := range series {
			syms[idx] = sp.Symbol
		}
		return 0, &BuildError{
			Kind:    ErrNoPrices,
			Symbols: syms,
		}
	}

	return modal, nil
}
