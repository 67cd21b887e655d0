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
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/penny-vault/pv-mpt/analysis"
	"github.com/penny-vault/pv-mpt/common"
	"github.com/penny-vault/pv-mpt/data"
	"github.com/penny-vault/pv-mpt/matrix"
	"github.com/penny-vault/pv-mpt/portfolio"
)

var (
	analyzePricesFile string
	analyzeSymbols    string
	analyzeTarget     float64
	analyzeRisk       float64
	analyzeJSON       bool
	analyzeStart      string
	analyzeEnd        string
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzePricesFile, "prices", "", "JSON document mapping each symbol to its price history, use - for stdin")
	analyzeCmd.Flags().StringVar(&analyzeSymbols, "symbols", "", "Comma separated list of symbols to analyze; defaults to every symbol in the price file")
	analyzeCmd.Flags().Float64Var(&analyzeTarget, "target", 0, "Also solve for the minimum variance portfolio with this expected return")
	analyzeCmd.Flags().Float64Var(&analyzeRisk, "risk", 0, "Also solve for the efficient portfolio with this standard deviation")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the result as JSON")
	analyzeCmd.Flags().StringVar(&analyzeStart, "start", "", "First date (YYYY-MM-DD) of prices downloaded from tiingo; defaults to 5 years ago")
	analyzeCmd.Flags().StringVar(&analyzeEnd, "end", "", "Last date (YYYY-MM-DD) of prices downloaded from tiingo; defaults to today")

	viper.BindEnv("tiingo.token", "TIINGO_TOKEN")
	analyzeCmd.Flags().String("tiingo-token", "", "tiingo API token used when no price file is given")
	viper.BindPFlag("tiingo.token", analyzeCmd.Flags().Lookup("tiingo-token"))

	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute GMV, tangency and efficient frontier portfolios",
	Long: `Reads price histories from a JSON document of the form {"SYMBOL": [p0, p1, ...]}, or downloads
monthly prices from tiingo when no document is given, and prints the resulting portfolios`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		symbols := common.SplitTickers(analyzeSymbols)

		var provider data.Provider
		if analyzePricesFile != "" {
			prices, err := loadPrices(analyzePricesFile)
			if err != nil {
				return err
			}

			if len(symbols) == 0 {
				for symbol := range prices {
					symbols = append(symbols, symbol)
				}
				sort.Strings(symbols)
			}
			provider = prices
		} else {
			tiingo, err := tiingoProvider()
			if err != nil {
				return err
			}
			provider = tiingo
		}

		analyzer, err := analysis.New(analysis.ConfigFromViper(), log.Logger)
		if err != nil {
			return err
		}

		req := analysis.Request{
			Symbols:  symbols,
			Provider: provider,
		}
		if cmd.Flags().Changed("target") {
			req.TargetReturn = &analyzeTarget
		}
		if cmd.Flags().Changed("risk") {
			req.TargetRisk = &analyzeRisk
		}

		result, err := analyzer.Analyze(cmd.Context(), req)
		if err != nil {
			log.Error().Err(err).Strs("Symbols", symbols).Msg("analysis failed")
			return err
		}

		if analyzeJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		return printResult(cmd.OutOrStdout(), result)
	},
}

func tiingoProvider() (*data.Tiingo, error) {
	token := viper.GetString("tiingo.token")
	if token == "" {
		return nil, errors.New("either --prices or a tiingo token is required")
	}

	end := time.Now()
	if analyzeEnd != "" {
		var err error
		if end, err = time.Parse("2006-01-02", analyzeEnd); err != nil {
			return nil, fmt.Errorf("invalid end date %q: %w", analyzeEnd, err)
		}
	}

	begin := end.AddDate(-5, 0, 0)
	if analyzeStart != "" {
		var err error
		if begin, err = time.Parse("2006-01-02", analyzeStart); err != nil {
			return nil, fmt.Errorf("invalid start date %q: %w", analyzeStart, err)
		}
	}

	return data.NewTiingo(token, begin, end), nil
}

func loadPrices(fn string) (data.MemoryProvider, error) {
	if fn == "-" {
		return data.LoadJSON(os.Stdin)
	}

	fh, err := os.Open(fn)
	if err != nil {
		log.Error().Err(err).Str("FileName", fn).Msg("could not open price file")
		return nil, err
	}
	defer fh.Close()

	return data.LoadJSON(fh)
}

// printResult writes one table per group of portfolios; each row holds the
// weights followed by the standard deviation and expected return
func printResult(w io.Writer, result *analysis.Result) error {
	cols := append(append([]string{}, result.Symbols...), "Std Dev", "Return")

	names := []string{"GMV"}
	if result.GMVFallback {
		names[0] = "GMV (simulated)"
	}
	named := []*portfolio.Stats{result.GMV}
	if result.Tangency != nil {
		name := "Tangency"
		if result.TangencyFallback {
			name = "Tangency (simulated)"
		}
		names = append(names, name)
		named = append(named, result.Tangency)
	}
	if result.Target != nil {
		names = append(names, "Target")
		named = append(named, result.Target)
	}
	if result.TargetRisk != nil {
		names = append(names, "Target Risk")
		named = append(named, result.TargetRisk)
	}

	fmt.Fprintf(w, "Risk-free rate: %.6f\n\n", result.RiskFreeRate)

	if err := printTable(w, "Portfolios", named, cols, names); err != nil {
		return err
	}

	frontierNames := make([]string, len(result.Frontier))
	for idx := range result.Frontier {
		frontierNames[idx] = fmt.Sprintf("%d", idx+1)
	}
	if err := printTable(w, "Efficient Frontier", result.Frontier, cols, frontierNames); err != nil {
		return err
	}

	cov, err := matrix.FromRows(result.Covariance)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Covariance\n%s\n", cov.Table(result.Symbols, result.Symbols))

	if sim := result.Simulation; sim != nil {
		simNames := []string{"Min Std Dev", "Max Sharpe"}
		simStats := []*portfolio.Stats{sim.MinStdDev, sim.MaxSharpe}
		if err := printTable(w, fmt.Sprintf("Monte Carlo (%d portfolios)", len(sim.Portfolios)), simStats, cols, simNames); err != nil {
			return err
		}
	}

	return nil
}

func printTable(w io.Writer, title string, rows []*portfolio.Stats, cols, names []string) error {
	vals := make([][]float64, 0, len(rows))
	for _, s := range rows {
		if s == nil {
			continue
		}
		row := append(append([]float64{}, s.Weights...), s.StdDev, s.ExpectedReturn)
		vals = append(vals, row)
	}

	if len(vals) == 0 {
		_, err := fmt.Fprintf(w, "%s\n<NO DATA>\n\n", title)
		return err
	}

	m, err := matrix.FromRows(vals)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n%s\n", title, m.Table(cols, names))
	return err
}
