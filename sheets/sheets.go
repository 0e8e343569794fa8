package sheets

//go:generate mockgen -source=sheets.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Spreadsheet is the read/write capability the batch run depends on.
type Spreadsheet interface {
	// ReadRange returns the rows of the range, trailing empty rows and cells omitted.
	ReadRange(ctx context.Context, area string) ([][]any, error)

	// WriteRange writes the column vectors to the range and returns the number
	// of cells updated.
	WriteRange(ctx context.Context, area string, columns [][]any) (int64, error)
}

// Appender is implemented by spreadsheets that can append rows after the last
// row of a table.
type Appender interface {
	AppendRows(ctx context.Context, area string, rows [][]any) error
}

// SpreadsheetAccessError wraps a failed request to the spreadsheet service.
type SpreadsheetAccessError struct {
	Op    string
	Range string
	Err   error
}

func (e *SpreadsheetAccessError) Error() string {
	return fmt.Sprintf("spreadsheet %v %v failed (%v)", e.Op, e.Range, e.Err)
}

func (e *SpreadsheetAccessError) Unwrap() error {
	return e.Err
}

var urlRegex = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)

// SpreadsheetID extracts the spreadsheet ID from a Google Sheets URL. Anything
// that is not a URL is taken to be the ID itself.
func SpreadsheetID(s string) (string, error) {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "https://") {
		match := urlRegex.FindStringSubmatch(s)
		if len(match) < 2 || match[1] == "" {
			return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
		}

		return match[1], nil
	}

	if s == "" || strings.ContainsAny(s, " /") {
		return "", fmt.Errorf("invalid spreadsheet ID '%v'", s)
	}

	return s, nil
}

var boundedRegex = regexp.MustCompile(`(?:^|!)[A-Za-z]+([0-9]+):[A-Za-z]+([0-9]+)$`)

// RangeRows returns the number of rows spanned by a bounded A1 range such as
// 'G4:H27' or 'Turma A!G4:H27'.
func RangeRows(area string) (int, error) {
	match := boundedRegex.FindStringSubmatch(strings.TrimSpace(area))
	if len(match) < 3 {
		return 0, fmt.Errorf("range '%v' does not have a fixed number of rows", area)
	}

	top, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, fmt.Errorf("invalid range '%v' (%v)", area, err)
	}

	bottom, err := strconv.Atoi(match[2])
	if err != nil {
		return 0, fmt.Errorf("invalid range '%v' (%v)", area, err)
	}

	if top < 1 || bottom < top {
		return 0, fmt.Errorf("invalid range '%v'", area)
	}

	return bottom - top + 1, nil
}
