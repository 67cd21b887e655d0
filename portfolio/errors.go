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

package portfolio

import "github.com/penny-vault/pv-mpt/matrix"

const (
	DefaultFrontierPoints   = 21
	DefaultMinSimulations   = 100
	DefaultSimulationCount  = 1000
	DefaultSimulationSeed   = 42
	DefaultFrontierAlphaMax = 1.0
	DefaultFrontierAlphaMin = -1.0
)

var (
	ErrInvalidArgument   = matrix.ErrInvalidArgument
	ErrDimensionMismatch = matrix.ErrDimensionMismatch
	ErrNotInvertible     = matrix.ErrNotInvertible
)
