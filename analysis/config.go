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
	"github.com/penny-vault/pv-mpt/portfolio"
	"github.com/spf13/viper"
)

const (
	DefaultCacheSize   = 128
	DefaultConcurrency = 4
)

// Config holds the defaults applied to every analysis request
type Config struct {
	RiskFreeRate float64
	Population   bool

	Frontier       portfolio.FrontierOptions
	Simulation     portfolio.SimulationOptions
	AlwaysSimulate bool

	// CacheSize is the number of return rate statistics kept in memory; 0 disables the cache
	CacheSize   int
	Concurrency int
}

func DefaultConfig() Config {
	return Config{
		Frontier:    portfolio.DefaultFrontierOptions(),
		Simulation:  portfolio.DefaultSimulationOptions(),
		CacheSize:   DefaultCacheSize,
		Concurrency: DefaultConcurrency,
	}
}

// ConfigFromViper reads analysis settings from viper; keys that are not set
// keep their default value
func ConfigFromViper() Config {
	cfg := DefaultConfig()

	if viper.IsSet("analysis.risk_free_rate") {
		cfg.RiskFreeRate = viper.GetFloat64("analysis.risk_free_rate")
	}
	if viper.IsSet("analysis.population") {
		cfg.Population = viper.GetBool("analysis.population")
	}
	if viper.IsSet("analysis.concurrency") {
		cfg.Concurrency = viper.GetInt("analysis.concurrency")
	}

	if viper.IsSet("frontier.points") {
		cfg.Frontier.Points = viper.GetInt("frontier.points")
	}
	if viper.IsSet("frontier.alpha_start") {
		cfg.Frontier.AlphaStart = viper.GetFloat64("frontier.alpha_start")
	}
	if viper.IsSet("frontier.alpha_end") {
		cfg.Frontier.AlphaEnd = viper.GetFloat64("frontier.alpha_end")
	}

	if viper.IsSet("simulation.count") {
		cfg.Simulation.Count = viper.GetInt("simulation.count")
	}
	if viper.IsSet("simulation.min_count") {
		cfg.Simulation.MinCount = viper.GetInt("simulation.min_count")
	}
	if viper.IsSet("simulation.seed") {
		cfg.Simulation.Seed = viper.GetUint64("simulation.seed")
	}
	if viper.IsSet("simulation.allow_short_sales") {
		cfg.Simulation.AllowShortSales = viper.GetBool("simulation.allow_short_sales")
	}
	if viper.IsSet("simulation.always") {
		cfg.AlwaysSimulate = viper.GetBool("simulation.always")
	}

	if viper.IsSet("cache.local_size") {
		cfg.CacheSize = viper.GetInt("cache.local_size")
	}

	return cfg
}
