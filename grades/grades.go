package grades

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Status is the outcome category for a student.
type Status int

const (
	Approved Status = iota
	FinalExamRequired
	FailedByScore
	FailedByAbsence
)

// Statuses lists every status in declaration order.
var Statuses = []Status{Approved, FinalExamRequired, FailedByScore, FailedByAbsence}

var labels = map[Status]string{
	Approved:          "Aprovado",
	FinalExamRequired: "Exame final",
	FailedByScore:     "Reprovado por Nota",
	FailedByAbsence:   "Reprovado por Falta",
}

// String returns the label written to the spreadsheet.
func (s Status) String() string {
	if label, ok := labels[s]; ok {
		return label
	}

	return fmt.Sprintf("Status(%d)", int(s))
}

// Record is one student row.
type Record struct {
	Name     string
	Absences int
	Scores   [3]decimal.Decimal
}

// Result is the evaluation of a single Record. MinimumFinalScore is 0 unless
// Status is FinalExamRequired.
type Result struct {
	Average           int
	Status            Status
	MinimumFinalScore int
}

// Rules holds the grading thresholds. The precedence of the checks in Evaluate is
// fixed: absences first, then the fail and pass thresholds.
type Rules struct {
	AbsenceLimit int
	FailBelow    int
	PassAt       int
	ExamTarget   int
}

var DefaultRules = Rules{
	AbsenceLimit: 15,
	FailBelow:    50,
	PassAt:       70,
	ExamTarget:   100,
}

// Average is the ceiling of the mean of the three scores. Rounds towards
// positive infinity, never to nearest. The sum and division are exact, so
// one-decimal scores that sum to a multiple of 3 are never pushed up.
func Average(scores [3]decimal.Decimal) int {
	sum := scores[0].Add(scores[1]).Add(scores[2])

	q, r := sum.QuoRem(three, 0)
	if r.IsPositive() {
		q = q.Add(decimal.NewFromInt(1))
	}

	return int(q.IntPart())
}

func (r Rules) Evaluate(record Record) Result {
	average := Average(record.Scores)

	switch {
	case record.Absences > r.AbsenceLimit:
		return Result{Average: average, Status: FailedByAbsence}

	case average < r.FailBelow:
		return Result{Average: average, Status: FailedByScore}

	case average < r.PassAt:
		return Result{Average: average, Status: FinalExamRequired, MinimumFinalScore: r.ExamTarget - average}

	default:
		return Result{Average: average, Status: Approved}
	}
}

// Evaluate parses three raw score cells and an absence count and applies the
// default rules.
func Evaluate(scores [3]any, absences any) (Result, error) {
	record := Record{}

	for i, v := range scores {
		if score, err := ParseScore(v); err != nil {
			return Result{}, err
		} else {
			record.Scores[i] = score
		}
	}

	if n, err := ParseAbsences(absences); err != nil {
		return Result{}, err
	} else {
		record.Absences = n
	}

	return DefaultRules.Evaluate(record), nil
}

// ParseRecord converts a spreadsheet row of the form
//
//	name | absences | score 1 | score 2 | score 3
//
// into a Record.
func ParseRecord(row []any) (Record, error) {
	if len(row) != 5 {
		return Record{}, &InvalidInputError{
			Field: "row",
			Value: row,
			Err:   fmt.Errorf("expected 5 cells, got %v", len(row)),
		}
	}

	record := Record{
		Name: strings.TrimSpace(fmt.Sprintf("%v", row[0])),
	}

	if n, err := ParseAbsences(row[1]); err != nil {
		return Record{}, err
	} else {
		record.Absences = n
	}

	for i := range record.Scores {
		if score, err := ParseScore(row[2+i]); err != nil {
			return Record{}, err
		} else {
			record.Scores[i] = score
		}
	}

	return record, nil
}

// Cell values outside these bounds are rejected so that averages and absence
// counts always fit in an int.
const (
	MaxScore    = 1000000
	MaxAbsences = 1000000
)

var (
	three    = decimal.NewFromInt(3)
	maxScore = decimal.NewFromInt(MaxScore)
)

// ParseScore accepts numeric cell values and text holding a decimal number.
func ParseScore(v any) (decimal.Decimal, error) {
	var score decimal.Decimal

	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, &InvalidInputError{Field: "score", Value: v, Err: fmt.Errorf("not a finite number")}
		}
		score = decimal.NewFromFloat(n)
	case float32:
		if math.IsNaN(float64(n)) || math.IsInf(float64(n), 0) {
			return decimal.Zero, &InvalidInputError{Field: "score", Value: v, Err: fmt.Errorf("not a finite number")}
		}
		score = decimal.NewFromFloat32(n)
	case int:
		score = decimal.NewFromInt(int64(n))
	case int64:
		score = decimal.NewFromInt(n)
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero, &InvalidInputError{Field: "score", Value: v, Err: err}
		}
		score = d
	default:
		return decimal.Zero, &InvalidInputError{Field: "score", Value: v, Err: fmt.Errorf("unsupported cell type %T", v)}
	}

	if score.Abs().GreaterThan(maxScore) {
		return decimal.Zero, &InvalidInputError{Field: "score", Value: v, Err: fmt.Errorf("out of range")}
	}

	return score, nil
}

// ParseAbsences accepts integer cell values, whole floats and integer text.
func ParseAbsences(v any) (int, error) {
	var absences int64

	switch n := v.(type) {
	case int:
		absences = int64(n)
	case int64:
		absences = n
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, &InvalidInputError{Field: "absences", Value: v, Err: fmt.Errorf("not a whole number")}
		}
		if math.Abs(n) > MaxAbsences {
			return 0, &InvalidInputError{Field: "absences", Value: v, Err: fmt.Errorf("out of range")}
		}
		absences = int64(n)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, &InvalidInputError{Field: "absences", Value: v, Err: err}
		}
		absences = i
	default:
		return 0, &InvalidInputError{Field: "absences", Value: v, Err: fmt.Errorf("unsupported cell type %T", v)}
	}

	if absences > MaxAbsences || absences < -MaxAbsences {
		return 0, &InvalidInputError{Field: "absences", Value: v, Err: fmt.Errorf("out of range")}
	}

	return int(absences), nil
}
