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
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/penny-vault/pv-mpt/matrix"
	"github.com/rs/zerolog/log"
)

// Provider supplies the price history of a single symbol, oldest to newest
type Provider interface {
	Prices(ctx context.Context, symbol string) ([]float64, error)
}

// MemoryProvider serves price histories from memory, keyed by upper cased ticker
type MemoryProvider map[string][]float64

func (p MemoryProvider) Prices(ctx context.Context, symbol string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prices, ok := p[strings.ToUpper(symbol)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNotFound)
	}

	res := make([]float64, len(prices))
	copy(res, prices)
	return res, nil
}

// LoadJSON reads a document of the form {"VFINX": [1.0, 2.0, ...], ...}
func LoadJSON(r io.Reader) (MemoryProvider, error) {
	var doc map[string][]float64
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		log.Error().Err(err).Msg("could not decode price history document")
		return nil, err
	}

	p := make(MemoryProvider, len(doc))
	for symbol, prices := range doc {
		p[strings.ToUpper(symbol)] = prices
	}
	return p, nil
}

// FetchAll downloads the history of every symbol using up to concurrency
// simultaneous requests. Results are returned in request order regardless of
// the order in which downloads complete. The first error aborts the fetch.
func FetchAll(ctx context.Context, provider Provider, symbols matrix.Vector[string], concurrency int) ([]SymbolPrices, error) {
	if err := symbols.Validate(); err != nil {
		return nil, err
	}

	if concurrency <= 0 {
		concurrency = 1
	}

	res := make([]SymbolPrices, symbols.Len())
	ch := make(chan quoteResult)

	for _, chunk := range partition(symbols.Len(), concurrency) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, idx := range chunk {
			go downloadWorker(ctx, ch, provider, idx, symbols.At(idx))
		}

		var firstErr error
		for range chunk {
			v := <-ch
			if v.Err != nil {
				log.Warn().Err(v.Err).Str("Ticker", v.Ticker).Msg("cannot download ticker data")
				if firstErr == nil {
					firstErr = v.Err
				}
				continue
			}
			res[v.Index] = NewSymbolPrices(v.Ticker, v.Prices)
		}

		if firstErr != nil {
			return nil, firstErr
		}
	}

	return res, nil
}

func downloadWorker(ctx context.Context, result chan<- quoteResult, provider Provider, idx int, symbol string) {
	prices, err := provider.Prices(ctx, symbol)
	result <- quoteResult{
		Index:  idx,
		Ticker: symbol,
		Prices: prices,
		Err:    err,
	}
}
