package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gradebook/gradebook-sheets/batch"
	"github.com/gradebook/gradebook-sheets/config"
	"github.com/gradebook/gradebook-sheets/grades"
)

var GetCmd = Get{
	command: command{
		config: config.DEFAULT_CONFIG,
		debug:  false,
	},

	area: "",
	file: time.Now().Format("grades 2006-01-02T150405.tsv"),
}

type Get struct {
	command
	area string
	file string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Evaluates the students in a Google Sheets worksheet and stores the results to a local TSV file"
}

func (cmd *Get) Usage() string {
	return "[--config <file>] [--range <range>] --file <file>"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] get [options] --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Evaluates the students in a Google Sheets worksheet and stores the results to a TSV file.")
	fmt.Println("  Nothing is written to the worksheet.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    gradebook-sheets --debug get --config "gradebook-sheets.yaml" \`)
	fmt.Println(`                                 --range "Engenharia de Software!B4:F27" \`)
	fmt.Println(`                                 --file "grades.tsv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.area, "range", cmd.area, "Spreadsheet input range e.g. 'B4:F27' (overrides the configuration file)")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name. Defaults to 'grades <yyyy-mm-ddTHHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	ctx := cmd.args(args...)

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	conf, err := cmd.load()
	if err != nil {
		return err
	}

	area := conf.InputRange
	if s := strings.TrimSpace(cmd.area); s != "" {
		area = s
	}

	google, err := cmd.connect(ctx, conf)
	if err != nil {
		return err
	}

	rows, err := google.ReadRange(ctx, area)
	if err != nil {
		return fmt.Errorf("unable to retrieve data from sheet (%w)", err)
	}

	if count, err := export(rows, conf.Rules.Grades(), cmd.file); err != nil {
		return err
	} else if count == 0 {
		warnf("No data found in range %v", area)
	} else {
		infof("Retrieved %v grades to file %s", count, cmd.file)
	}

	return nil
}

// export evaluates the rows and writes them to the TSV file. An empty range
// writes nothing and is not an error.
func export(rows [][]any, rules grades.Rules, file string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	evaluations, err := batch.Evaluate(rows, rules)
	if err != nil {
		return 0, err
	}

	if err := writeTSV(file, evaluations); err != nil {
		return 0, err
	}

	return len(evaluations), nil
}

// writeTSV writes the evaluations to a temporary file in the destination
// directory and then renames it, so the destination is never left half written.
func writeTSV(file string, evaluations []batch.Evaluation) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".grades-*.tsv")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := evaluationsToTSV(tmp, evaluations); err != nil {
		return fmt.Errorf("error creating TSV file (%v)", err)
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}
