package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gradebook/gradebook-sheets/auth"
	"github.com/gradebook/gradebook-sheets/config"
	"github.com/gradebook/gradebook-sheets/sheets"
)

const APP = "gradebook-sheets"

const VERSION = "v0.1.0"

type Options struct {
	Debug bool
}

type command struct {
	config      string
	spreadsheet string
	credentials string
	workdir     string
	debug       bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.config, "config", c.config, "Configuration file path")
	flagset.StringVar(&c.spreadsheet, "spreadsheet", c.spreadsheet, "Spreadsheet URL or ID (overrides the configuration file)")
	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the 'credentials.json' file (overrides the configuration file)")
	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (tokens, etc) (overrides the configuration file)")

	return flagset
}

// args extracts the context and global options passed to Execute by main().
func (c *command) args(args ...any) context.Context {
	ctx := context.Background()

	for _, arg := range args {
		switch v := arg.(type) {
		case context.Context:
			ctx = v
		case *Options:
			c.debug = v.Debug
		}
	}

	return ctx
}

// load reads the configuration file and applies the command line overrides.
func (c *command) load() (*config.Config, error) {
	conf := config.NewConfig()
	if err := conf.Load(c.config); err != nil {
		return nil, err
	}

	if s := strings.TrimSpace(c.spreadsheet); s != "" {
		conf.Spreadsheet = s
	}

	if s := strings.TrimSpace(c.credentials); s != "" {
		conf.Credentials = s
	}

	if s := strings.TrimSpace(c.workdir); s != "" {
		conf.Workdir = s
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *command) authoriser(conf *config.Config) (*auth.Authoriser, error) {
	authoriser, err := auth.FromCredentialsFile(conf.Credentials, sheets.SCOPE, tokensDir(conf), prompt)
	if err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%v)", err)
	}

	return authoriser, nil
}

// connect authorises access to the configured spreadsheet.
func (c *command) connect(ctx context.Context, conf *config.Config) (*sheets.Google, error) {
	spreadsheet, err := sheets.SpreadsheetID(conf.Spreadsheet)
	if err != nil {
		return nil, err
	}

	authoriser, err := c.authoriser(conf)
	if err != nil {
		return nil, err
	}

	client, err := auth.Client(ctx, authoriser.Config(), authoriser)
	if err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%w)", err)
	}

	google, err := sheets.NewGoogle(ctx, client, spreadsheet)
	if err != nil {
		return nil, err
	}

	if c.debug {
		debugf("Spreadsheet - ID:%s  input:%s  output:%s", spreadsheet, conf.InputRange, conf.OutputRange)
	}

	return google.WithValueInputOption(conf.ValueInputOption), nil
}

func tokensDir(conf *config.Config) string {
	return filepath.Join(conf.Workdir, ".google")
}

// prompt asks the user to authorise access in a browser and to paste the
// resulting authorisation code on the console.
func prompt(url string) (string, error) {
	fmt.Printf("Go to the following link in your browser then type the authorization code: \n%v\n", url)

	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && code == "" {
		return "", err
	}

	return strings.TrimSpace(code), nil
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flagset.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-13s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
	}

	fmt.Println("  Options:")
	fmt.Println()
	fmt.Println("    --debug Displays internal information for diagnosing errors")
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}
