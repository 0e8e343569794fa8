package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	uhppoted "github.com/uhppoted/uhppoted-lib/command"

	"github.com/gradebook/gradebook-sheets/commands"
)

var cli = []uhppoted.Command{
	&uhppoted.Version{
		Application: commands.APP,
		Version:     commands.VERSION,
	},
	&commands.AuthoriseCmd,
	&commands.GradeCmd,
	&commands.GetCmd,
}

var options = commands.Options{
	Debug: false,
}

var help = uhppoted.NewHelp(commands.APP, cli, &commands.GradeCmd)

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	// ... no command runs the default grading cycle
	cmd, err := uhppoted.Parse(cli, &commands.GradeCmd, help)
	if err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err = cmd.Execute(ctx, &options); err != nil {
		cancel()
		log.Fatalf("ERROR: %v", err)
	}
}
