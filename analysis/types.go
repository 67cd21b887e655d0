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

package analysis

import (
	"github.com/penny-vault/pv-mpt/data"
	"github.com/penny-vault/pv-mpt/portfolio"
)

// Request describes a single analysis. Price histories are taken from Series
// when present, otherwise they are fetched from Provider. Nil overrides fall
// back to the analyzer configuration.
type Request struct {
	Symbols  []string
	Series   []data.SymbolPrices
	Provider data.Provider

	RiskFreeRate   *float64
	TargetReturn   *float64
	TargetRisk     *float64
	FrontierPoints int
	Simulation     *portfolio.SimulationOptions
}

// Result collects every portfolio computed for a request. Weights in each
// portfolio follow the order of Symbols.
type Result struct {
	Symbols         []string    `json:"symbols"`
	RiskFreeRate    float64     `json:"riskFreeRate"`
	ExpectedReturns []float64   `json:"expectedReturns"`
	Covariance      [][]float64 `json:"covariance"`

	GMV              *portfolio.Stats      `json:"gmv"`
	GMVFallback      bool                  `json:"gmvFallback"`
	Tangency         *portfolio.Stats      `json:"tangency"`
	TangencyFallback bool                  `json:"tangencyFallback"`
	Target           *portfolio.Stats      `json:"target,omitempty"`
	TargetRisk       *portfolio.Stats      `json:"targetRisk,omitempty"`
	Frontier         []*portfolio.Stats    `json:"frontier"`
	Simulation       *portfolio.Simulation `json:"simulation,omitempty"`
}
