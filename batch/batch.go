package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/gradebook/gradebook-sheets/grades"
	"github.com/gradebook/gradebook-sheets/sheets"
)

// Observer receives the per-run measurements. metrics.Metrics implements it.
type Observer interface {
	ObserveStudent(status string)
	ObserveRead(rows int)
	ObserveWrite(start time.Time, cells int64)
}

// Evaluation pairs an input row with its result.
type Evaluation struct {
	Record grades.Record
	Result grades.Result
}

type Summary struct {
	RunID       uuid.UUID
	Rows        int
	Updated     int64
	Counts      map[grades.Status]int
	Evaluations []Evaluation
	NoData      bool
	DryRun      bool
}

type Batch struct {
	sheet    sheets.Spreadsheet
	log      *log.Logger
	input    string
	output   string
	rules    grades.Rules
	logRange string
	clear    bool
	dryrun   bool
	debug    bool
	observer Observer
}

type Option func(*Batch)

// WithRanges sets the input and output ranges, by default B4:F27 and G4:H27.
func WithRanges(input, output string) Option {
	return func(b *Batch) {
		b.input = input
		b.output = output
	}
}

func WithRules(rules grades.Rules) Option {
	return func(b *Batch) {
		b.rules = rules
	}
}

// WithClear pads the written columns with blanks to the full height of the
// output range so that rows left over from a longer class are cleared by the
// same write. The output range must have a fixed number of rows.
func WithClear(enabled bool) Option {
	return func(b *Batch) {
		b.clear = enabled
	}
}

// WithLog appends a summary row to the log range after every successful write.
// Requires a spreadsheet that implements sheets.Appender.
func WithLog(area string) Option {
	return func(b *Batch) {
		b.logRange = area
	}
}

func WithDryRun(dryrun bool) Option {
	return func(b *Batch) {
		b.dryrun = dryrun
	}
}

// WithDebug logs the evaluation of each row.
func WithDebug(debug bool) Option {
	return func(b *Batch) {
		b.debug = debug
	}
}

func WithObserver(observer Observer) Option {
	return func(b *Batch) {
		b.observer = observer
	}
}

func New(sheet sheets.Spreadsheet, logger *log.Logger, options ...Option) *Batch {
	b := Batch{
		sheet:  sheet,
		log:    logger,
		input:  "B4:F27",
		output: "G4:H27",
		rules:  grades.DefaultRules,
	}

	for _, option := range options {
		option(&b)
	}

	return &b
}

// Run reads the input range, evaluates every row and writes the status and
// minimum final score columns to the output range. Nothing is written unless
// every row evaluates successfully, and an empty input range is not an error.
func (b *Batch) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	summary := Summary{
		RunID:  uuid.New(),
		Counts: map[grades.Status]int{},
		DryRun: b.dryrun,
	}

	b.infof(summary.RunID, "Reading range %v", b.input)

	rows, err := b.sheet.ReadRange(ctx, b.input)
	if err != nil {
		return nil, err
	}

	summary.Rows = len(rows)
	if b.observer != nil {
		b.observer.ObserveRead(len(rows))
	}

	if len(rows) == 0 {
		b.warnf(summary.RunID, "No data found")
		summary.NoData = true
		return &summary, nil
	}

	evaluations, err := Evaluate(rows, b.rules)
	if err != nil {
		return nil, err
	}

	summary.Evaluations = evaluations
	statuses := make([]any, 0, len(evaluations))
	minimums := make([]any, 0, len(evaluations))

	for _, e := range evaluations {
		statuses = append(statuses, e.Result.Status.String())
		minimums = append(minimums, e.Result.MinimumFinalScore)
		summary.Counts[e.Result.Status]++

		if b.observer != nil {
			b.observer.ObserveStudent(e.Result.Status.String())
		}

		b.debugf(summary.RunID, "%-24v average:%-3v absences:%-3v %-20v %v", e.Record.Name, e.Result.Average, e.Record.Absences, e.Result.Status, e.Result.MinimumFinalScore)
	}

	if b.dryrun {
		b.infof(summary.RunID, "Dry run - evaluated %v rows, nothing written", len(evaluations))
		return &summary, nil
	}

	if b.clear {
		rows, err := sheets.RangeRows(b.output)
		if err != nil {
			return nil, fmt.Errorf("unable to clear output range (%w)", err)
		}

		for len(statuses) < rows {
			statuses = append(statuses, "")
			minimums = append(minimums, "")
		}
	}

	b.infof(summary.RunID, "Writing %v rows to range %v", len(evaluations), b.output)

	updated, err := b.sheet.WriteRange(ctx, b.output, [][]any{statuses, minimums})
	if err != nil {
		return nil, err
	}

	summary.Updated = updated
	if b.observer != nil {
		b.observer.ObserveWrite(start, updated)
	}

	b.infof(summary.RunID, "Updated %d cells", updated)

	if b.logRange != "" {
		if err := b.appendLog(ctx, summary, start); err != nil {
			return &summary, err
		}
	}

	return &summary, nil
}

// Evaluate applies the rules to each row in order. The first malformed row
// aborts the evaluation.
func Evaluate(rows [][]any, rules grades.Rules) ([]Evaluation, error) {
	evaluations := make([]Evaluation, 0, len(rows))

	for i, row := range rows {
		record, err := grades.ParseRecord(row)
		if err != nil {
			var invalid *grades.InvalidInputError
			if errors.As(err, &invalid) {
				invalid.Row = i + 1
			}

			return nil, err
		}

		evaluations = append(evaluations, Evaluation{
			Record: record,
			Result: rules.Evaluate(record),
		})
	}

	return evaluations, nil
}

func (b *Batch) appendLog(ctx context.Context, summary Summary, start time.Time) error {
	appender, ok := b.sheet.(sheets.Appender)
	if !ok {
		return fmt.Errorf("spreadsheet does not support appending to the log range")
	}

	row := []any{
		start.Format("2006-01-02 15:04:05"),
		summary.RunID.String(),
		summary.Rows,
		summary.Updated,
	}

	for _, status := range grades.Statuses {
		row = append(row, summary.Counts[status])
	}

	if err := appender.AppendRows(ctx, b.logRange, [][]any{row}); err != nil {
		return fmt.Errorf("error writing log to Google Sheets (%w)", err)
	}

	return nil
}

func (b *Batch) debugf(id uuid.UUID, format string, args ...any) {
	if !b.debug {
		return
	}

	b.log.Printf("%-5v %v  %v", "DEBUG", id, fmt.Sprintf(format, args...))
}

func (b *Batch) infof(id uuid.UUID, format string, args ...any) {
	b.log.Printf("%-5v %v  %v", "INFO", id, fmt.Sprintf(format, args...))
}

func (b *Batch) warnf(id uuid.UUID, format string, args ...any) {
	b.log.Printf("%-5v %v  %v", "WARN", id, fmt.Sprintf(format, args...))
}
