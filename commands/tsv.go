package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gradebook/gradebook-sheets/batch"
)

func evaluationsToTSV(f io.Writer, evaluations []batch.Evaluation) error {
	header := []string{"Name", "Absences", "Score 1", "Score 2", "Score 3", "Average", "Status", "Minimum Final Score"}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(header); err != nil {
		return err
	}

	for _, e := range evaluations {
		record := []string{
			clean(e.Record.Name),
			fmt.Sprintf("%v", e.Record.Absences),
			e.Record.Scores[0].String(),
			e.Record.Scores[1].String(),
			e.Record.Scores[2].String(),
			fmt.Sprintf("%v", e.Result.Average),
			e.Result.Status.String(),
			fmt.Sprintf("%v", e.Result.MinimumFinalScore),
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

func clean(v string) string {
	return strings.Join(strings.Fields(v), " ")
}
