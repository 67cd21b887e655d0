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

package middleware_test

import (
	"bytes"
	"net/http/httptest"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/penny-vault/pv-mpt/middleware"
)

var _ = Describe("Logger", func() {
	var (
		app    *fiber.App
		buf    *bytes.Buffer
		prev   zerolog.Logger
		events []map[string]interface{}
	)

	BeforeEach(func() {
		prev = log.Logger
		buf = &bytes.Buffer{}
		log.Logger = zerolog.New(buf)

		app = fiber.New()
		app.Use(middleware.NewLogger())
		app.Get("/ok", func(c *fiber.Ctx) error {
			return c.SendString("ok")
		})
		app.Get("/fail", func(c *fiber.Ctx) error {
			return fiber.ErrBadRequest
		})
	})

	AfterEach(func() {
		log.Logger = prev
	})

	parse := func() {
		events = nil
		dec := json.NewDecoder(buf)
		for dec.More() {
			var event map[string]interface{}
			Expect(dec.Decode(&event)).To(Succeed())
			events = append(events, event)
		}
	}

	It("logs successful requests at info", func() {
		resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil), -1)
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

		parse()
		Expect(events).To(HaveLen(1))
		Expect(events[0]).To(HaveKeyWithValue("level", "info"))
		Expect(events[0]).To(HaveKeyWithValue("Path", "/ok"))
		Expect(events[0]).To(HaveKeyWithValue("StatusCode", BeNumerically("==", 200)))
	})

	It("assigns a request id", func() {
		resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil), -1)
		Expect(err).To(BeNil())

		requestID := resp.Header.Get(fiber.HeaderXRequestID)
		Expect(requestID).To(HaveLen(36))

		parse()
		Expect(events[0]).To(HaveKeyWithValue("RequestID", requestID))
	})

	It("keeps the caller's request id", func() {
		req := httptest.NewRequest("GET", "/ok", nil)
		req.Header.Set(fiber.HeaderXRequestID, "abc-123")

		resp, err := app.Test(req, -1)
		Expect(err).To(BeNil())
		Expect(resp.Header.Get(fiber.HeaderXRequestID)).To(Equal("abc-123"))

		parse()
		Expect(events[0]).To(HaveKeyWithValue("RequestID", "abc-123"))
	})

	It("logs handler errors as bad requests", func() {
		resp, err := app.Test(httptest.NewRequest("GET", "/fail", nil), -1)
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))

		parse()
		Expect(events).To(HaveLen(1))
		Expect(events[0]).To(HaveKeyWithValue("level", "warn"))
		Expect(events[0]).To(HaveKeyWithValue("message", "Bad HTTP request"))
	})
})
