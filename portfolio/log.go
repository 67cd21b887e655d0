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

import (
	"github.com/rs/zerolog"
)

func (s *Stats) MarshalZerologObject(e *zerolog.Event) {
	if s == nil {
		return
	}
	e.Floats64("Weights", s.Weights).
		Float64("StdDev", s.StdDev).
		Float64("ExpectedReturn", s.ExpectedReturn)
}

func (sim *Simulation) MarshalZerologObject(e *zerolog.Event) {
	if sim == nil {
		return
	}
	e.Int("NumPortfolios", len(sim.Portfolios)).
		Float64("RiskFreeRate", sim.RiskFreeRate)
	if sim.MinStdDev != nil {
		e.Object("MinStdDev", sim.MinStdDev)
	}
	if sim.MaxSharpe != nil {
		e.Object("MaxSharpe", sim.MaxSharpe)
	}
}
