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

package cmd

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/pv-mpt/analysis"
)

type analysisSettings struct {
	RiskFreeRate float64 `toml:"risk_free_rate"`
	Population   bool    `toml:"population"`
	Concurrency  int     `toml:"concurrency"`
}

type frontierSettings struct {
	Points     int     `toml:"points"`
	AlphaStart float64 `toml:"alpha_start"`
	AlphaEnd   float64 `toml:"alpha_end"`
}

type simulationSettings struct {
	Count           int    `toml:"count"`
	MinCount        int    `toml:"min_count"`
	Seed            uint64 `toml:"seed"`
	AllowShortSales bool   `toml:"allow_short_sales"`
	Always          bool   `toml:"always"`
}

type cacheSettings struct {
	LocalSize int `toml:"local_size"`
}

type serverSettings struct {
	Port int `toml:"port"`
}

// settings mirrors the layout of config.toml
type settings struct {
	Analysis   analysisSettings   `toml:"analysis"`
	Frontier   frontierSettings   `toml:"frontier"`
	Simulation simulationSettings `toml:"simulation"`
	Cache      cacheSettings      `toml:"cache"`
	Server     serverSettings     `toml:"server"`
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Long:  `Print the configuration after merging config.toml, environment variables and flags`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := toml.Marshal(effectiveSettings(analysis.ConfigFromViper()))
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
		return err
	},
}

func effectiveSettings(cfg analysis.Config) settings {
	port := 3000
	if viper.IsSet("server.port") {
		port = viper.GetInt("server.port")
	}

	return settings{
		Analysis: analysisSettings{
			RiskFreeRate: cfg.RiskFreeRate,
			Population:   cfg.Population,
			Concurrency:  cfg.Concurrency,
		},
		Frontier: frontierSettings{
			Points:     cfg.Frontier.Points,
			AlphaStart: cfg.Frontier.AlphaStart,
			AlphaEnd:   cfg.Frontier.AlphaEnd,
		},
		Simulation: simulationSettings{
			Count:           cfg.Simulation.Count,
			MinCount:        cfg.Simulation.MinCount,
			Seed:            cfg.Simulation.Seed,
			AllowShortSales: cfg.Simulation.AllowShortSales,
			Always:          cfg.AlwaysSimulate,
		},
		Cache: cacheSettings{
			LocalSize: cfg.CacheSize,
		},
		Server: serverSettings{
			Port: port,
		},
	}
}
