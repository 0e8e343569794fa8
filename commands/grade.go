package commands

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/gradebook/gradebook-sheets/batch"
	"github.com/gradebook/gradebook-sheets/config"
	"github.com/gradebook/gradebook-sheets/metrics"
)

var GradeCmd = Grade{
	command: command{
		config: config.DEFAULT_CONFIG,
		debug:  false,
	},

	metrics: "",
	dryrun:  false,
}

type Grade struct {
	command
	metrics string
	dryrun  bool
}

func (cmd *Grade) Name() string {
	return "grade"
}

func (cmd *Grade) Description() string {
	return "Grades the students in a Google Sheets worksheet and writes the results back to the worksheet"
}

func (cmd *Grade) Usage() string {
	return "[--config <file>] [--spreadsheet <url>] [--dry-run]"
}

func (cmd *Grade) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] grade [options]\n", APP)
	fmt.Println()
	fmt.Println("  Reads the student names, absences and scores from the input range, computes each student's")
	fmt.Println("  average, status and minimum final exam score and writes the status and minimum score columns")
	fmt.Println("  to the output range. This is the default command when none is given.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    gradebook-sheets`)
	fmt.Println(`    gradebook-sheets --debug grade --config "gradebook-sheets.yaml" --dry-run`)
	fmt.Println(`    gradebook-sheets grade --spreadsheet "https://docs.google.com/spreadsheets/d/1qXksRkrkK1CRrwUNEnatiWzxr05IZR79r9LZcGa9VP4"`)
	fmt.Println()
}

func (cmd *Grade) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("grade")

	flagset.StringVar(&cmd.metrics, "metrics", cmd.metrics, "Prometheus textfile for the run metrics (overrides the configuration file)")
	flagset.BoolVar(&cmd.dryrun, "dry-run", cmd.dryrun, "Evaluates the worksheet without writing anything to it")

	return flagset
}

func (cmd *Grade) Execute(args ...any) error {
	ctx := cmd.args(args...)

	conf, err := cmd.load()
	if err != nil {
		return err
	}

	if s := strings.TrimSpace(cmd.metrics); s != "" {
		conf.Metrics = s
	}

	google, err := cmd.connect(ctx, conf)
	if err != nil {
		return err
	}

	var m *metrics.Metrics

	options := []batch.Option{
		batch.WithRanges(conf.InputRange, conf.OutputRange),
		batch.WithRules(conf.Rules.Grades()),
		batch.WithClear(conf.ClearOutput),
		batch.WithLog(conf.LogRange),
		batch.WithDryRun(cmd.dryrun),
		batch.WithDebug(cmd.debug),
	}

	if conf.Metrics != "" {
		m = metrics.New()
		options = append(options, batch.WithObserver(m))
	}

	summary, err := batch.New(google, log.Default(), options...).Run(ctx)

	if m != nil {
		if err := m.WriteTextfile(conf.Metrics); err != nil {
			warnf("Error writing metrics to %v (%v)", conf.Metrics, err)
		}
	}

	if err != nil {
		return err
	}

	if summary.DryRun {
		report(summary)
	}

	return nil
}

func report(summary *batch.Summary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)

	fmt.Fprintln(w, "NAME\tABSENCES\tAVERAGE\tSTATUS\tMINIMUM")
	for _, e := range summary.Evaluations {
		fmt.Fprintf(w, "%v\t%v\t%v\t%v\t%v\n", e.Record.Name, e.Record.Absences, e.Result.Average, e.Result.Status, e.Result.MinimumFinalScore)
	}

	w.Flush()
}
