package reporting

import (
	"fmt"
	"strings"
)

// RenderCSV renders season summaries as CSV string.
func RenderCSV(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("season,gini,correlation,p_value,teams,total_payroll,mean_payroll\n")

	// Rows
	for _, s := range r.Seasons {
		sb.WriteString(fmt.Sprintf("%d,%.6f,%.6f,%.6f,%d,%d,%.2f\n",
			s.Season,
			s.Gini,
			s.Correlation,
			s.PValue,
			s.Teams,
			s.TotalPayroll,
			s.MeanPayroll,
		))
	}

	return sb.String()
}
