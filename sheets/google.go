package sheets

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	SCOPE = "https://www.googleapis.com/auth/spreadsheets"

	RAW          = "RAW"
	USER_ENTERED = "USER_ENTERED"
)

// Google implements Spreadsheet over the Google Sheets v4 API.
type Google struct {
	service          *sheets.Service
	spreadsheetID    string
	valueInputOption string
}

func NewGoogle(ctx context.Context, client *http.Client, spreadsheetID string, opts ...option.ClientOption) (*Google, error) {
	opts = append(opts, option.WithHTTPClient(client))

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%v)", err)
	}

	return &Google{
		service:          service,
		spreadsheetID:    spreadsheetID,
		valueInputOption: RAW,
	}, nil
}

// WithValueInputOption selects how written values are interpreted: RAW (the
// default) or USER_ENTERED.
func (g *Google) WithValueInputOption(v string) *Google {
	if v != "" {
		g.valueInputOption = v
	}

	return g
}

func (g *Google) ReadRange(ctx context.Context, area string) ([][]any, error) {
	response, err := g.service.Spreadsheets.Values.Get(g.spreadsheetID, area).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, &SpreadsheetAccessError{Op: "read", Range: area, Err: err}
	}

	return response.Values, nil
}

func (g *Google) WriteRange(ctx context.Context, area string, columns [][]any) (int64, error) {
	rq := sheets.BatchUpdateValuesRequest{
		ValueInputOption: g.valueInputOption,
		Data: []*sheets.ValueRange{
			{
				Range:          area,
				MajorDimension: "COLUMNS",
				Values:         columns,
			},
		},
	}

	response, err := g.service.Spreadsheets.Values.BatchUpdate(g.spreadsheetID, &rq).Context(ctx).Do()
	if err != nil {
		return 0, &SpreadsheetAccessError{Op: "write", Range: area, Err: err}
	}

	return response.TotalUpdatedCells, nil
}

func (g *Google) AppendRows(ctx context.Context, area string, rows [][]any) error {
	vr := sheets.ValueRange{
		Values: rows,
	}

	if _, err := g.service.Spreadsheets.Values.Append(g.spreadsheetID, area, &vr).
		ValueInputOption(RAW).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do(); err != nil {
		return &SpreadsheetAccessError{Op: "append", Range: area, Err: err}
	}

	return nil
}
