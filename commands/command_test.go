package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCommandArgs(t *testing.T) {
	type key struct{}

	c := command{}
	ctx := context.WithValue(context.Background(), key{}, "grade")

	if got := c.args(ctx, &Options{Debug: true}); got.Value(key{}) != "grade" {
		t.Errorf("Incorrect context returned from args")
	}

	if !c.debug {
		t.Errorf("Expected debug to be set from options")
	}
}

func TestCommandArgsWithoutContext(t *testing.T) {
	c := command{}

	if ctx := c.args(); ctx == nil {
		t.Errorf("Expected default context, got nil")
	}
}

func TestCommandLoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "gradebook-sheets.yaml")
	yaml := `
spreadsheet: "1qXksRkrkK1CRrwUNEnatiWzxr05IZR79r9LZcGa9VP4"
credentials: "/etc/gradebook/credentials.json"
input-range: "Turma A!B4:F27"
`

	if err := os.WriteFile(file, []byte(yaml), 0600); err != nil {
		t.Fatalf("Error writing configuration file (%v)", err)
	}

	c := command{
		config:      file,
		spreadsheet: "https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
		workdir:     dir,
	}

	conf, err := c.load()
	if err != nil {
		t.Fatalf("Unexpected error loading configuration (%v)", err)
	}

	if conf.Spreadsheet != c.spreadsheet {
		t.Errorf("Incorrect spreadsheet - expected:%v, got:%v", c.spreadsheet, conf.Spreadsheet)
	}

	if conf.Credentials != "/etc/gradebook/credentials.json" {
		t.Errorf("Incorrect credentials - expected:%v, got:%v", "/etc/gradebook/credentials.json", conf.Credentials)
	}

	if conf.Workdir != dir {
		t.Errorf("Incorrect workdir - expected:%v, got:%v", dir, conf.Workdir)
	}

	if conf.InputRange != "Turma A!B4:F27" {
		t.Errorf("Incorrect input range - expected:%v, got:%v", "Turma A!B4:F27", conf.InputRange)
	}

	if tokens := tokensDir(conf); tokens != filepath.Join(dir, ".google") {
		t.Errorf("Incorrect tokens directory %v", tokens)
	}
}

func TestCommandLoadWithoutSpreadsheet(t *testing.T) {
	t.Setenv("GRADEBOOK_SPREADSHEET", "")

	c := command{
		config: filepath.Join(t.TempDir(), "missing.yaml"),
	}

	if _, err := c.load(); err == nil {
		t.Errorf("Expected error loading configuration without a spreadsheet")
	}
}
