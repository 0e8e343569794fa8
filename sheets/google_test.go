package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const spreadsheetID = "1qXksRkrkK1CRrwUNEnatiWzxr05IZR79r9LZcGa9VP4"

func newGoogle(t *testing.T, handler http.HandlerFunc) *Google {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	google, err := NewGoogle(context.Background(), srv.Client(), spreadsheetID, option.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("Unexpected error creating Google spreadsheet (%v)", err)
	}

	return google
}

func TestGoogleReadRange(t *testing.T) {
	expected := [][]any{
		{"Ana", 2.0, 80.0, 90.0, 70.5},
		{"Bruno", 16.0, 60.0, 70.0, 65.0},
	}

	google := newGoogle(t, func(w http.ResponseWriter, rq *http.Request) {
		if rq.Method != http.MethodGet || !strings.HasPrefix(rq.URL.Path, "/v4/spreadsheets/"+spreadsheetID+"/values/") {
			http.NotFound(w, rq)
			return
		}

		if !strings.HasSuffix(rq.URL.Path, "B4:F27") {
			t.Errorf("Incorrect range in request path %v", rq.URL.Path)
		}

		if render := rq.URL.Query().Get("valueRenderOption"); render != "UNFORMATTED_VALUE" {
			t.Errorf("Incorrect value render option - expected:UNFORMATTED_VALUE, got:%v", render)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"range":"Sheet1!B4:F5","majorDimension":"ROWS","values":[["Ana",2,80,90,70.5],["Bruno",16,60,70,65]]}`))
	})

	rows, err := google.ReadRange(context.Background(), "B4:F27")
	if err != nil {
		t.Fatalf("Unexpected error reading range (%v)", err)
	}

	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("Incorrect rows\n   expected: %v\n   got:      %v", expected, rows)
	}
}

func TestGoogleReadEmptyRange(t *testing.T) {
	google := newGoogle(t, func(w http.ResponseWriter, rq *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"range":"Sheet1!B4:F27","majorDimension":"ROWS"}`))
	})

	rows, err := google.ReadRange(context.Background(), "B4:F27")
	if err != nil {
		t.Fatalf("Unexpected error reading range (%v)", err)
	}

	if len(rows) != 0 {
		t.Errorf("Expected no rows, got %v", rows)
	}
}

func TestGoogleReadRangeWithAccessError(t *testing.T) {
	google := newGoogle(t, func(w http.ResponseWriter, rq *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
	})

	_, err := google.ReadRange(context.Background(), "B4:F27")

	var access *SpreadsheetAccessError
	if !errors.As(err, &access) {
		t.Fatalf("Expected SpreadsheetAccessError, got %v", err)
	}

	if access.Op != "read" || access.Range != "B4:F27" {
		t.Errorf("Incorrect access error %+v", access)
	}

	var apierr *googleapi.Error
	if !errors.As(err, &apierr) || apierr.Code != http.StatusForbidden {
		t.Errorf("Expected wrapped googleapi 403 error, got %v", err)
	}
}

func TestGoogleWriteRange(t *testing.T) {
	var request struct {
		ValueInputOption string `json:"valueInputOption"`
		Data             []struct {
			Range          string  `json:"range"`
			MajorDimension string  `json:"majorDimension"`
			Values         [][]any `json:"values"`
		} `json:"data"`
	}

	google := newGoogle(t, func(w http.ResponseWriter, rq *http.Request) {
		if rq.Method != http.MethodPost || rq.URL.Path != "/v4/spreadsheets/"+spreadsheetID+"/values:batchUpdate" {
			http.NotFound(w, rq)
			return
		}

		body, _ := io.ReadAll(rq.Body)
		if err := json.Unmarshal(body, &request); err != nil {
			t.Errorf("Invalid batchUpdate request body (%v)", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"spreadsheetId":"` + spreadsheetID + `","totalUpdatedCells":4}`))
	})

	columns := [][]any{
		{"Aprovado", "Exame final"},
		{0, 35},
	}

	updated, err := google.WriteRange(context.Background(), "G4:H27", columns)
	if err != nil {
		t.Fatalf("Unexpected error writing range (%v)", err)
	}

	if updated != 4 {
		t.Errorf("Incorrect updated cell count - expected:4, got:%v", updated)
	}

	if request.ValueInputOption != "RAW" {
		t.Errorf("Incorrect value input option - expected:RAW, got:%v", request.ValueInputOption)
	}

	if len(request.Data) != 1 {
		t.Fatalf("Expected 1 value range, got %v", len(request.Data))
	}

	if request.Data[0].Range != "G4:H27" || request.Data[0].MajorDimension != "COLUMNS" {
		t.Errorf("Incorrect value range %+v", request.Data[0])
	}

	expected := [][]any{
		{"Aprovado", "Exame final"},
		{0.0, 35.0},
	}

	if !reflect.DeepEqual(request.Data[0].Values, expected) {
		t.Errorf("Incorrect values\n   expected: %v\n   got:      %v", expected, request.Data[0].Values)
	}
}

func TestGoogleWriteRangeWithAccessError(t *testing.T) {
	google := newGoogle(t, func(w http.ResponseWriter, rq *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"Requested writing within range [G4:H27], but tried writing to column [I]","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := google.WriteRange(context.Background(), "G4:H27", [][]any{{"Aprovado"}, {0}})

	var access *SpreadsheetAccessError
	if !errors.As(err, &access) || access.Op != "write" {
		t.Fatalf("Expected write SpreadsheetAccessError, got %v", err)
	}
}

func TestGoogleAppendRows(t *testing.T) {
	var query string
	var request struct {
		Values [][]any `json:"values"`
	}

	google := newGoogle(t, func(w http.ResponseWriter, rq *http.Request) {
		if rq.Method != http.MethodPost || !strings.HasSuffix(rq.URL.Path, ":append") {
			http.NotFound(w, rq)
			return
		}

		query = rq.URL.RawQuery
		json.NewDecoder(rq.Body).Decode(&request)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"spreadsheetId":"` + spreadsheetID + `"}`))
	})

	rows := [][]any{{"2026-10-19 09:15:00", "run", 24}}
	if err := google.AppendRows(context.Background(), "Log!A1:H", rows); err != nil {
		t.Fatalf("Unexpected error appending rows (%v)", err)
	}

	if !strings.Contains(query, "valueInputOption=RAW") || !strings.Contains(query, "insertDataOption=INSERT_ROWS") {
		t.Errorf("Incorrect append query %v", query)
	}

	if len(request.Values) != 1 || len(request.Values[0]) != 3 {
		t.Errorf("Incorrect appended values %v", request.Values)
	}
}

func TestSpreadsheetID(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{"https://docs.google.com/spreadsheets/d/1qXksRkrkK1CRrwUNEnatiWzxr05IZR79r9LZcGa9VP4/edit#gid=0", spreadsheetID},
		{"https://docs.google.com/spreadsheets/d/1qXksRkrkK1CRrwUNEnatiWzxr05IZR79r9LZcGa9VP4", spreadsheetID},
		{" 1qXksRkrkK1CRrwUNEnatiWzxr05IZR79r9LZcGa9VP4 ", spreadsheetID},
	}

	for _, test := range tests {
		id, err := SpreadsheetID(test.value)
		if err != nil {
			t.Errorf("Unexpected error extracting spreadsheet ID from %v (%v)", test.value, err)
		} else if id != test.expected {
			t.Errorf("Incorrect spreadsheet ID - expected:%v, got:%v", test.expected, id)
		}
	}
}

func TestSpreadsheetIDWithInvalidValues(t *testing.T) {
	for _, v := range []string{"", "https://example.com/spreadsheets/d/xyz", "not an id"} {
		if _, err := SpreadsheetID(v); err == nil {
			t.Errorf("Expected error extracting spreadsheet ID from '%v'", v)
		}
	}
}

func TestRangeRows(t *testing.T) {
	tests := []struct {
		area     string
		expected int
	}{
		{"G4:H27", 24},
		{"Turma A!G4:H27", 24},
		{"'Turma B'!G4:H4", 1},
	}

	for _, test := range tests {
		rows, err := RangeRows(test.area)
		if err != nil {
			t.Errorf("Unexpected error for range %v (%v)", test.area, err)
		} else if rows != test.expected {
			t.Errorf("Incorrect rows for range %v - expected:%v, got:%v", test.area, test.expected, rows)
		}
	}
}

func TestRangeRowsWithOpenRanges(t *testing.T) {
	for _, area := range []string{"G4:H", "G:H", "Log!A1", "G27:H4", ""} {
		if _, err := RangeRows(area); err == nil {
			t.Errorf("Expected error for range '%v'", area)
		}
	}
}
