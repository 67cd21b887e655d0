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
	"context"
	"fmt"
	"os"

	"github.com/penny-vault/pv-mpt/common"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Profile bool
var Trace bool

func init() {
	// Logging configuration
	viper.BindEnv("log.level", "PV_MPT_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.BindEnv("log.report_caller", "PV_MPT_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	viper.BindEnv("log.output", "PV_MPT_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stderr", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	viper.BindEnv("log.pretty", "PV_MPT_LOG_PRETTY")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "Write human readable logs instead of json")
	viper.BindPFlag("log.pretty", rootCmd.PersistentFlags().Lookup("log-pretty"))

	// Analysis defaults
	viper.BindEnv("analysis.risk_free_rate", "PV_MPT_RISK_FREE_RATE")
	rootCmd.PersistentFlags().Float64("risk-free", 0, "Risk-free rate per period used for the tangency portfolio")
	viper.BindPFlag("analysis.risk_free_rate", rootCmd.PersistentFlags().Lookup("risk-free"))

	viper.BindEnv("analysis.population", "PV_MPT_POPULATION")
	rootCmd.PersistentFlags().Bool("population", false, "Use population rather than sample covariance")
	viper.BindPFlag("analysis.population", rootCmd.PersistentFlags().Lookup("population"))

	viper.BindEnv("frontier.points", "PV_MPT_FRONTIER_POINTS")
	rootCmd.PersistentFlags().Int("frontier-points", 21, "Number of points sampled on the efficient frontier")
	viper.BindPFlag("frontier.points", rootCmd.PersistentFlags().Lookup("frontier-points"))

	viper.BindEnv("simulation.count", "PV_MPT_SIMULATION_COUNT")
	rootCmd.PersistentFlags().Int("simulations", 1000, "Number of monte carlo portfolios")
	viper.BindPFlag("simulation.count", rootCmd.PersistentFlags().Lookup("simulations"))

	viper.BindEnv("simulation.seed", "PV_MPT_SIMULATION_SEED")
	rootCmd.PersistentFlags().Uint64("seed", 42, "Seed for the monte carlo random number generator")
	viper.BindPFlag("simulation.seed", rootCmd.PersistentFlags().Lookup("seed"))

	viper.BindEnv("simulation.allow_short_sales", "PV_MPT_ALLOW_SHORT_SALES")
	rootCmd.PersistentFlags().Bool("allow-short-sales", false, "Allow negative weights in monte carlo portfolios")
	viper.BindPFlag("simulation.allow_short_sales", rootCmd.PersistentFlags().Lookup("allow-short-sales"))

	viper.BindEnv("simulation.always", "PV_MPT_SIMULATE")
	rootCmd.PersistentFlags().Bool("simulate", false, "Run the monte carlo simulation even when the tangency portfolio can be solved")
	viper.BindPFlag("simulation.always", rootCmd.PersistentFlags().Lookup("simulate"))

	viper.BindEnv("cache.local_size", "PV_MPT_CACHE_SIZE")
	rootCmd.PersistentFlags().Int("cache-size", 128, "Number of return rate statistics to keep in memory, 0 disables")
	viper.BindPFlag("cache.local_size", rootCmd.PersistentFlags().Lookup("cache-size"))

	rootCmd.PersistentFlags().BoolVar(&Profile, "cpu-profile", false, "Run pprof and save in profile.out")
	rootCmd.PersistentFlags().BoolVar(&Trace, "trace", false, "Trace program execution and save in trace.out")
}

var rootCmd = &cobra.Command{
	Use:     "pv-mpt",
	Version: common.CurrentVersion.String(),
	Short:   "Modern portfolio theory statistics",
	Long:    `Compute minimum variance, tangency and efficient frontier portfolios from instrument price histories.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
