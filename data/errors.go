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
	"errors"
	"fmt"
	"strings"

	"github.com/penny-vault/pv-mpt/matrix"
)

var (
	ErrNotFound            = errors.New("security not found")
	ErrNoSymbols           = fmt.Errorf("no symbols requested: %w", matrix.ErrInvalidArgument)
	ErrNoPrices            = fmt.Errorf("no price history: %w", matrix.ErrInvalidArgument)
	ErrSymbolOrderMismatch = errors.New("symbol order does not match request")
	ErrPriceLengthMismatch = fmt.Errorf("price histories have different lengths: %w", matrix.ErrDimensionMismatch)
)

// BuildError reports a price matrix assembly failure and the symbols that
// caused it. It unwraps to one of the package errors so callers can match
// the kind with errors.Is.
type BuildError struct {
	Kind    error
	Symbols []string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.Error(), strings.Join(e.Symbols, ", "))
}

func (e *BuildError) Unwrap() error {
	return e.Kind
}
