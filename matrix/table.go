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

package matrix

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Table renders the matrix as an ASCII table. colNames labels the columns and
// rowNames the rows; either may be nil in which case positional labels are used.
func (m *Matrix) Table(colNames, rowNames []string) string {
	if m == nil || m.rows == 0 {
		return "<NO DATA>"
	}

	header := make([]string, 0, m.cols+1)
	header = append(header, "")
	for colIdx := 0; colIdx < m.cols; colIdx++ {
		if colIdx < len(colNames) {
			header = append(header, colNames[colIdx])
		} else {
			header = append(header, fmt.Sprintf("%d", colIdx))
		}
	}

	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader(header)
	table.SetBorder(false)

	for rowIdx, row := range m.vals {
		line := make([]string, 0, len(row)+1)
		if rowIdx < len(rowNames) {
			line = append(line, rowNames[rowIdx])
		} else {
			line = append(line, fmt.Sprintf("%d", rowIdx))
		}

		for _, val := range row {
			line = append(line, fmt.Sprintf("%.6f", val))
		}
		table.Append(line)
	}

	table.Render()
	return s.String()
}
