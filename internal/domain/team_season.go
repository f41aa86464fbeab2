package domain

// TeamSeasonRecord represents one team's season as read from the input file.
// Payroll is a whole-currency amount; WinPct is wins / (wins + losses).
type TeamSeasonRecord struct {
	Season  int     // season year
	Payroll int64   // team payroll, whole currency units
	WinPct  float64 // winning percentage in [0, 1]
}

// Input column names resolved from the CSV header.
const (
	ColumnSeason  = "year"
	ColumnPayroll = "team payroll"
	ColumnWins    = "w"
	ColumnLosses  = "l"
)
