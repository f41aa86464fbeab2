package reporting

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// tableHeader is repeated every HeaderEvery data rows.
var tableHeader = []string{"Season", "Gini", "Corr.", "Teams", "Total Payroll", "Mean Payroll"}

// rightAligned marks columns padded on the left.
var rightAligned = []bool{true, false, false, false, false, false}

// TableOptions controls text table layout.
type TableOptions struct {
	HeaderEvery int // data rows between header rows; <= 0 uses DefaultHeaderEvery
}

// RenderTable renders the report as a monospace text table:
// title, two subtitle lines, then header and season rows.
// Column widths are the widest rendered cell including headers.
func RenderTable(r *Report, opts TableOptions) string {
	every := opts.HeaderEvery
	if every <= 0 {
		every = DefaultHeaderEvery
	}

	var rows [][]string
	for i, s := range r.Seasons {
		if i%every == 0 {
			rows = append(rows, tableHeader)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.Season),
			fmt.Sprintf("%.4f ", s.Gini),
			fmt.Sprintf("%.4f ", s.Correlation),
			fmt.Sprintf("%d", s.Teams),
			formatCurrency(float64(s.TotalPayroll)) + " ",
			formatCurrency(s.MeanPayroll) + " ",
		})
	}

	widths := columnWidths(rows)

	var sb strings.Builder
	sb.WriteString(TableTitle + "\n")
	sb.WriteString(fmt.Sprintf("1 - Gini Coefficient -> Payroll-Win%% Correlation r-Value: %.4f\n", r.CrossSeason.R))
	sb.WriteString(fmt.Sprintf("1 - Gini Coefficient -> Payroll-Win%% Correlation p-Value: %.4f\n", r.CrossSeason.PValue))

	for _, row := range rows {
		for col, cell := range row {
			if col > 0 {
				sb.WriteByte(' ')
			}
			if rightAligned[col] {
				sb.WriteString(fmt.Sprintf("%*s", widths[col], cell))
			} else {
				sb.WriteString(fmt.Sprintf("%-*s", widths[col], cell))
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// columnWidths returns the maximum rune width per column.
func columnWidths(rows [][]string) []int {
	widths := make([]int, len(tableHeader))
	for i, h := range tableHeader {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := len([]rune(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// formatCurrency renders v rounded half-to-even to whole units with thousands separators.
// 1234567.5 becomes "$1,234,568".
func formatCurrency(v float64) string {
	return "$" + humanize.Comma(int64(math.RoundToEven(v)))
}
