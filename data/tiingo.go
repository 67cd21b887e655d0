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
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

var tiingoAPI = "https://api.tiingo.com"

type tiingoJSONResponse struct {
	Date        string  `json:"date"`
	Close       float64 `json:"close"`
	AdjClose    float64 `json:"adjClose"`
	DivCash     float64 `json:"divCash"`
	SplitFactor float64 `json:"splitFactor"`
}

// Tiingo downloads split and dividend adjusted closing prices from the
// tiingo end-of-day API
type Tiingo struct {
	apikey    string
	Begin     time.Time
	End       time.Time
	Frequency string
	Client    *http.Client
}

// NewTiingo creates a provider for monthly prices between begin and end
func NewTiingo(key string, begin, end time.Time) *Tiingo {
	return &Tiingo{
		apikey:    key,
		Begin:     begin,
		End:       end,
		Frequency: "monthly",
		Client:    http.DefaultClient,
	}
}

func (t *Tiingo) Prices(ctx context.Context, symbol string) ([]float64, error) {
	symbol = strings.ToUpper(symbol)
	subLog := log.With().Str("Symbol", symbol).Str("Frequency", t.Frequency).Logger()

	query := url.Values{}
	query.Set("startDate", t.Begin.Format("2006-01-02"))
	query.Set("endDate", t.End.Format("2006-01-02"))
	query.Set("resampleFreq", t.Frequency)
	query.Set("token", t.apikey)
	endpoint := fmt.Sprintf("%s/tiingo/daily/%s/prices?%s", tiingoAPI, url.PathEscape(symbol), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := t.Client.Do(req)
	if err != nil {
		subLog.Error().Err(err).Msg("tiingo http request failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNotFound)
	}

	if resp.StatusCode >= 400 {
		subLog.Error().Int("HTTPResponseStatusCode", resp.StatusCode).Msg("tiingo returned invalid response code")
		return nil, fmt.Errorf("HTTP request returned invalid status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		subLog.Error().Err(err).Msg("could not read tiingo body")
		return nil, err
	}

	jsonResp := []tiingoJSONResponse{}
	if err := json.Unmarshal(body, &jsonResp); err != nil {
		subLog.Error().Err(err).Bytes("Body", body).Msg("could not unmarshal json")
		return nil, err
	}

	if len(jsonResp) == 0 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrNoPrices)
	}

	prices := make([]float64, len(jsonResp))
	for idx, quote := range jsonResp {
		prices[idx] = quote.AdjClose
	}

	subLog.Debug().Int("NumPrices", len(prices)).Msg("downloaded prices from tiingo")
	return prices, nil
}
