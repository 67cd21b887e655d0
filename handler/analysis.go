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

package handler

import (
	"errors"
	"strings"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/penny-vault/pv-mpt/analysis"
	"github.com/penny-vault/pv-mpt/data"
	"github.com/penny-vault/pv-mpt/portfolio"
)

type SimulationRequest struct {
	Count           int     `json:"count"`
	Seed            *uint64 `json:"seed"`
	AllowShortSales bool    `json:"allowShortSales"`
}

// AnalysisRequest is the body of POST /v1/analysis. Prices maps each symbol
// to its price history, oldest first.
type AnalysisRequest struct {
	Symbols        []string             `json:"symbols"`
	Prices         map[string][]float64 `json:"prices"`
	RiskFreeRate   *float64             `json:"riskFreeRate"`
	TargetReturn   *float64             `json:"targetReturn"`
	TargetRisk     *float64             `json:"targetRisk"`
	FrontierPoints int                  `json:"frontierPoints"`
	Simulation     *SimulationRequest   `json:"simulation"`
}

// Analyze returns a handler that runs the request through analyzer
func Analyze(analyzer *analysis.Analyzer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AnalysisRequest
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			log.Warn().Err(err).Msg("could not parse analysis request body")
			return sendError(c, fiber.StatusBadRequest, err)
		}

		prices := make(data.MemoryProvider, len(body.Prices))
		for symbol, history := range body.Prices {
			prices[strings.ToUpper(symbol)] = history
		}

		req := analysis.Request{
			Symbols:        body.Symbols,
			Provider:       prices,
			RiskFreeRate:   body.RiskFreeRate,
			TargetReturn:   body.TargetReturn,
			TargetRisk:     body.TargetRisk,
			FrontierPoints: body.FrontierPoints,
		}

		if body.Simulation != nil {
			opts := analyzer.Config().Simulation
			if body.Simulation.Count > 0 {
				opts.Count = body.Simulation.Count
			}
			if body.Simulation.Seed != nil {
				opts.Seed = *body.Simulation.Seed
			}
			opts.AllowShortSales = body.Simulation.AllowShortSales
			req.Simulation = &opts
		}

		result, err := analyzer.Analyze(c.UserContext(), req)
		if err != nil {
			status := statusForError(err)
			log.Warn().Err(err).Strs("Symbols", body.Symbols).Int("StatusCode", status).Msg("analysis failed")
			return sendError(c, status, err)
		}

		return c.JSON(result)
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, portfolio.ErrNotInvertible):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, portfolio.ErrInvalidArgument),
		errors.Is(err, portfolio.ErrDimensionMismatch),
		errors.Is(err, data.ErrSymbolOrderMismatch),
		errors.Is(err, data.ErrNotFound):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
