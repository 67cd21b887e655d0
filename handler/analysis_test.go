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

package handler_test

import (
	"bytes"
	"io"
	"net/http/httptest"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/penny-vault/pv-mpt/analysis"
	"github.com/penny-vault/pv-mpt/handler"
)

var _ = Describe("Analysis handler", func() {
	var (
		app *fiber.App
	)

	BeforeEach(func() {
		analyzer, err := analysis.New(analysis.DefaultConfig(), zerolog.Nop())
		Expect(err).To(BeNil())

		app = fiber.New(fiber.Config{
			JSONEncoder: json.Marshal,
		})
		app.Get("/v1/", handler.Ping)
		app.Post("/v1/analysis", handler.Analyze(analyzer))
	})

	post := func(body string) (int, []byte) {
		req := httptest.NewRequest("POST", "/v1/analysis", bytes.NewBufferString(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req, -1)
		Expect(err).To(BeNil())
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		Expect(err).To(BeNil())
		return resp.StatusCode, respBody
	}

	It("responds to ping", func() {
		resp, err := app.Test(httptest.NewRequest("GET", "/v1/", nil), -1)
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

		var ping handler.PingResponse
		Expect(json.NewDecoder(resp.Body).Decode(&ping)).To(Succeed())
		Expect(ping.Status).To(Equal("success"))
	})

	It("returns the analyzed portfolios", func() {
		status, body := post(`{
			"symbols": ["vfinx", "vustx", "pridx"],
			"prices": {
				"VFINX": [100.0, 102.0, 101.0, 105.0, 104.0, 108.0, 107.5],
				"vustx": [50.0, 50.5, 51.5, 51.0, 52.0, 51.8, 52.6],
				"PRIDX": [20.0, 21.0, 20.4, 21.5, 22.8, 22.1, 23.0]
			},
			"riskFreeRate": 0.001,
			"targetReturn": 0.01,
			"frontierPoints": 7
		}`)
		Expect(status).To(Equal(fiber.StatusOK))

		var result analysis.Result
		Expect(json.Unmarshal(body, &result)).To(Succeed())
		Expect(result.Symbols).To(Equal([]string{"VFINX", "VUSTX", "PRIDX"}))
		Expect(result.GMV.Weights).To(HaveLen(3))
		Expect(result.Tangency).ToNot(BeNil())
		Expect(result.TangencyFallback).To(BeFalse())
		Expect(result.Target.ExpectedReturn).To(BeNumerically("~", 0.01, 1e-9))
		Expect(result.Frontier).To(HaveLen(7))
		Expect(result.Simulation).To(BeNil())
	})

	It("runs a requested simulation", func() {
		status, body := post(`{
			"symbols": ["VFINX", "VUSTX"],
			"prices": {
				"VFINX": [100.0, 102.0, 101.0, 105.0, 104.0],
				"VUSTX": [50.0, 50.5, 51.5, 51.0, 52.0]
			},
			"simulation": {"count": 150, "seed": 3}
		}`)
		Expect(status).To(Equal(fiber.StatusOK))

		var result analysis.Result
		Expect(json.Unmarshal(body, &result)).To(Succeed())
		Expect(result.Simulation).ToNot(BeNil())
		Expect(result.Simulation.Portfolios).To(HaveLen(150))
	})

	DescribeTable("maps errors to status codes",
		func(body string, expected int) {
			status, respBody := post(body)
			Expect(status).To(Equal(expected))

			var errResp handler.ErrorResponse
			Expect(json.Unmarshal(respBody, &errResp)).To(Succeed())
			Expect(errResp.Status).To(Equal("error"))
			Expect(errResp.Message).ToNot(BeEmpty())
		},
		Entry("malformed json", `{"symbols": [`, fiber.StatusBadRequest),
		Entry("no symbols", `{"symbols": [], "prices": {"VFINX": [1.0, 2.0]}}`, fiber.StatusBadRequest),
		Entry("unknown symbol", `{"symbols": ["VFINX", "SPY"], "prices": {"VFINX": [1.0, 2.0, 3.0]}}`, fiber.StatusBadRequest),
		Entry("different history lengths", `{"symbols": ["VFINX", "VUSTX"], "prices": {"VFINX": [1.0, 2.0, 3.0], "VUSTX": [1.0, 2.0]}}`, fiber.StatusBadRequest),
		Entry("negative risk-free rate", `{"symbols": ["VFINX", "VUSTX"], "prices": {"VFINX": [1.0, 2.0, 3.0, 2.5], "VUSTX": [1.0, 1.5, 1.2, 1.3]}, "riskFreeRate": -1}`, fiber.StatusBadRequest),
		Entry("target risk on identical instruments", `{"symbols": ["VFINX", "VFIAX"], "prices": {"VFINX": [1.0, 2.0, 3.0, 2.5], "VFIAX": [1.0, 2.0, 3.0, 2.5]}, "targetRisk": 0.5}`, fiber.StatusUnprocessableEntity),
	)

	It("simulates the portfolios of identical instruments", func() {
		status, body := post(`{"symbols": ["VFINX", "VFIAX"], "prices": {"VFINX": [1.0, 2.0, 3.0, 2.5], "VFIAX": [1.0, 2.0, 3.0, 2.5]}}`)
		Expect(status).To(Equal(fiber.StatusOK))

		var result analysis.Result
		Expect(json.Unmarshal(body, &result)).To(Succeed())
		Expect(result.GMVFallback).To(BeTrue())
		Expect(result.TangencyFallback).To(BeTrue())
		Expect(result.Simulation).ToNot(BeNil())
		Expect(result.Frontier).To(BeEmpty())
	})
})
