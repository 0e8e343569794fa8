package commands

import (
	"flag"
	"fmt"

	"github.com/gradebook/gradebook-sheets/auth"
	"github.com/gradebook/gradebook-sheets/config"
)

var AuthoriseCmd = Authorise{
	command: command{
		config: config.DEFAULT_CONFIG,
		debug:  false,
	},
}

type Authorise struct {
	command
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises gradebook-sheets to access a Google Sheets worksheet"
}

func (cmd *Authorise) Usage() string {
	return "[--config <file>] [--credentials <file>]"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options]\n", APP)
	fmt.Println()
	fmt.Println("  Authorises gradebook-sheets to access a Google Sheets worksheet and caches the OAuth2 token")
	fmt.Println("  in the working directory so that subsequent runs do not need a browser.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    gradebook-sheets authorise --credentials "credentials.json" --spreadsheet "https://docs.google.com/spreadsheets/d/1qXksRkrkK1CRrwUNEnatiWzxr05IZR79r9LZcGa9VP4"`)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	return cmd.flagset("authorise")
}

func (cmd *Authorise) Execute(args ...any) error {
	ctx := cmd.args(args...)

	conf, err := cmd.load()
	if err != nil {
		return err
	}

	authoriser, err := cmd.authoriser(conf)
	if err != nil {
		return err
	}

	if _, err := authoriser.Authorise(ctx); err != nil {
		return fmt.Errorf("authorisation error (%w)", err)
	}

	infof("Authorised access to Google Sheets - token cached in %v", auth.TokensFile(conf.Credentials, tokensDir(conf)))

	return nil
}
