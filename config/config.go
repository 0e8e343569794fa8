package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gradebook/gradebook-sheets/grades"
)

const (
	DefaultInputRange       = "B4:F27"
	DefaultOutputRange      = "G4:H27"
	DefaultValueInputOption = "RAW"
)

// Environment variables that take precedence over the configuration file.
const (
	ENV_SPREADSHEET = "GRADEBOOK_SPREADSHEET"
	ENV_CREDENTIALS = "GRADEBOOK_CREDENTIALS"
	ENV_WORKDIR     = "GRADEBOOK_WORKDIR"
	ENV_METRICS     = "GRADEBOOK_METRICS"
)

type Config struct {
	// Spreadsheet is the spreadsheet ID or its docs.google.com URL.
	Spreadsheet string `yaml:"spreadsheet" validate:"required"`

	// Credentials is the path to the Google OAuth2 client 'credentials.json'.
	Credentials string `yaml:"credentials" validate:"required"`

	// Workdir holds the cached OAuth2 tokens.
	Workdir string `yaml:"workdir" validate:"required"`

	InputRange       string `yaml:"input-range" validate:"required,a1range"`
	OutputRange      string `yaml:"output-range" validate:"required,a1range"`
	ValueInputOption string `yaml:"value-input-option" validate:"oneof=RAW USER_ENTERED"`

	// ClearOutput blanks the rows of the output range below the last student in
	// the same write as the results. Requires a bounded output range e.g. 'G4:H27'.
	ClearOutput bool `yaml:"clear-output"`

	// LogRange, if set, is the range of a log worksheet that gets one row
	// appended per run e.g. 'Log!A1:H'.
	LogRange string `yaml:"log-range" validate:"omitempty,a1range"`

	// Metrics, if set, is the path of a Prometheus textfile.
	Metrics string `yaml:"metrics"`

	Rules Rules `yaml:"rules"`
}

type Rules struct {
	AbsenceLimit int `yaml:"absence-limit" validate:"gte=0"`
	FailBelow    int `yaml:"fail-below" validate:"gte=0,ltefield=PassAt"`
	PassAt       int `yaml:"pass-at" validate:"gte=0"`
	ExamTarget   int `yaml:"exam-target" validate:"gte=0,gtefield=PassAt"`
}

func (r Rules) Grades() grades.Rules {
	return grades.Rules{
		AbsenceLimit: r.AbsenceLimit,
		FailBelow:    r.FailBelow,
		PassAt:       r.PassAt,
		ExamTarget:   r.ExamTarget,
	}
}

var a1 = regexp.MustCompile(`^(?:(?:'[^']+'|[^!':]+)!)?[A-Za-z]+[0-9]*(?::[A-Za-z]+[0-9]*)?$`)

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("a1range", func(fl validator.FieldLevel) bool {
		return a1.MatchString(fl.Field().String())
	})

	return v
}()

// NewConfig returns a Config initialised with the default ranges, rules and
// file locations.
func NewConfig() *Config {
	rules := grades.DefaultRules

	return &Config{
		Credentials:      DEFAULT_CREDENTIALS,
		Workdir:          DEFAULT_WORKDIR,
		InputRange:       DefaultInputRange,
		OutputRange:      DefaultOutputRange,
		ValueInputOption: DefaultValueInputOption,
		Rules: Rules{
			AbsenceLimit: rules.AbsenceLimit,
			FailBelow:    rules.FailBelow,
			PassAt:       rules.PassAt,
			ExamTarget:   rules.ExamTarget,
		},
	}
}

// Load reads the YAML configuration file and then applies any overrides from
// the environment (including a .env file in the current directory). A missing
// configuration file is not an error. The returned Config has not been
// validated.
func (c *Config) Load(path string) error {
	if path != "" {
		bytes, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: read file (%w)", err)
		}

		if err == nil {
			if err := yaml.Unmarshal(bytes, c); err != nil {
				return fmt.Errorf("config: parse yaml (%w)", err)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load .env (%w)", err)
	}

	overrides := map[string]*string{
		ENV_SPREADSHEET: &c.Spreadsheet,
		ENV_CREDENTIALS: &c.Credentials,
		ENV_WORKDIR:     &c.Workdir,
		ENV_METRICS:     &c.Metrics,
	}

	for k, p := range overrides {
		if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
			*p = strings.TrimSpace(v)
		}
	}

	return nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			list := []string{}
			for _, e := range errs {
				list = append(list, fmt.Sprintf("%v failed '%v' check", e.Namespace(), e.Tag()))
			}

			return fmt.Errorf("config: %v", strings.Join(list, ", "))
		}

		return fmt.Errorf("config: %w", err)
	}

	return nil
}
