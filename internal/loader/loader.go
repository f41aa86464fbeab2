// Package loader reads team-season CSV files into typed records.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	textunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"payroll-gini/internal/domain"
)

// Loader errors.
var (
	// ErrColumnNotFound is returned when a required header name is absent.
	ErrColumnNotFound = errors.New("required column not found")

	// ErrNumericParse is returned when a cell has no usable digits.
	ErrNumericParse = errors.New("numeric parse error")

	// ErrZeroDecisions is returned when a row has wins + losses == 0.
	ErrZeroDecisions = errors.New("division by zero: team has no decisions")
)

// columns holds resolved header indexes for the required fields.
type columns struct {
	season  int
	payroll int
	wins    int
	losses  int
}

// LoadFile opens path and parses it with Load.
// The file is closed on every return path.
func LoadFile(path string) ([]domain.TeamSeasonRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	records, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return records, nil
}

// Load parses a UTF-8 CSV stream (leading BOM tolerated) with a header row.
// Required columns are resolved before any data row is read.
// Records are returned in file order.
func Load(r io.Reader) ([]domain.TeamSeasonRecord, error) {
	decoded := transform.NewReader(r, textunicode.BOMOverride(textunicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input has no header row", ErrColumnNotFound)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	var records []domain.TeamSeasonRecord
	rowNum := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rowNum++

		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// resolveColumns maps required header names to indexes.
// Names are matched exactly; the first occurrence wins.
func resolveColumns(header []string) (columns, error) {
	index := func(name string) (int, error) {
		for i, h := range header {
			if h == name {
				return i, nil
			}
		}
		return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}

	var (
		cols columns
		err  error
	)
	if cols.season, err = index(domain.ColumnSeason); err != nil {
		return columns{}, err
	}
	if cols.payroll, err = index(domain.ColumnPayroll); err != nil {
		return columns{}, err
	}
	if cols.wins, err = index(domain.ColumnWins); err != nil {
		return columns{}, err
	}
	if cols.losses, err = index(domain.ColumnLosses); err != nil {
		return columns{}, err
	}
	return cols, nil
}

// parseRow converts one data row into a TeamSeasonRecord.
func parseRow(row []string, cols columns) (domain.TeamSeasonRecord, error) {
	season, err := digitsField(row, cols.season, domain.ColumnSeason)
	if err != nil {
		return domain.TeamSeasonRecord{}, err
	}
	payroll, err := digitsField(row, cols.payroll, domain.ColumnPayroll)
	if err != nil {
		return domain.TeamSeasonRecord{}, err
	}
	wins, err := digitsField(row, cols.wins, domain.ColumnWins)
	if err != nil {
		return domain.TeamSeasonRecord{}, err
	}
	losses, err := digitsField(row, cols.losses, domain.ColumnLosses)
	if err != nil {
		return domain.TeamSeasonRecord{}, err
	}

	decisions := wins + losses
	if decisions == 0 {
		return domain.TeamSeasonRecord{}, ErrZeroDecisions
	}

	return domain.TeamSeasonRecord{
		Season:  int(season),
		Payroll: payroll,
		WinPct:  float64(wins) / float64(decisions),
	}, nil
}

// digitsField extracts the integer value of row[idx] after removing every non-digit rune.
func digitsField(row []string, idx int, name string) (int64, error) {
	if idx >= len(row) {
		return 0, fmt.Errorf("%w: column %q missing from row", ErrNumericParse, name)
	}

	digits := StripNonDigits(row[idx])
	if digits == "" {
		return 0, fmt.Errorf("%w: column %q value %q has no digits", ErrNumericParse, name, row[idx])
	}

	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: column %q value %q: %v", ErrNumericParse, name, row[idx], err)
	}
	return v, nil
}

// StripNonDigits returns s with every non-digit rune removed.
// "$1,234,567" becomes "1234567".
func StripNonDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
