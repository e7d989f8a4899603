package schedule

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schedule.schema.json
var schemaJSON []byte

// ErrInvalidSchedule marks documents rejected before any bettable is created
var ErrInvalidSchedule = errors.New(ErrMsgInvalidSchedule)

// Schedule is a tournament match plan as uploaded by an admin. Matches and
// extra questions are created as bettables in one pass.
type Schedule struct {
	Tournament string         `json:"tournament"`
	Matches    []PlannedMatch `json:"matches"`
	Extras     []PlannedExtra `json:"extras,omitempty"`
}

// PlannedMatch is one fixture in the plan. The betting deadline defaults to
// kickoff when not given.
type PlannedMatch struct {
	Name     string     `json:"name,omitempty"`
	HomeTeam string     `json:"home_team"`
	AwayTeam string     `json:"away_team"`
	Kickoff  time.Time  `json:"kickoff"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

// PlannedExtra is a category question in the plan
type PlannedExtra struct {
	Name     string    `json:"name"`
	Points   int       `json:"points"`
	Choices  []string  `json:"choices"`
	Deadline time.Time `json:"deadline"`
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("failed to parse embedded schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("schedule.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile("schedule.schema.json")
	})
	return compiledSchema, compileErr
}

// Parse validates raw schedule JSON against the embedded schema and decodes
// it. Validation errors list every offending location.
func Parse(data []byte) (*Schedule, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSchedule, ErrMsgFailedToParse, err)
	}

	if err := schema.Validate(doc); err != nil {
		return nil, formatValidationError(err)
	}

	// schema formats are not asserted, so a bad date-time still fails here
	var s Schedule
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSchedule, ErrMsgFailedToParse, err)
	}
	return &s, nil
}

// formatValidationError flattens nested schema violations into one error
func formatValidationError(err error) error {
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	var msgs []string
	collectErrors(validationErr, &msgs)
	return fmt.Errorf("%w:\n%s", ErrInvalidSchedule, strings.Join(msgs, "\n"))
}

func collectErrors(err *jsonschema.ValidationError, msgs *[]string) {
	if msg := formatError(err); msg != "" {
		*msgs = append(*msgs, msg)
	}
	for _, cause := range err.Causes {
		collectErrors(cause, msgs)
	}
}

func formatError(err *jsonschema.ValidationError) string {
	location := strings.Join(err.InstanceLocation, "/")
	if location == "" {
		location = "(root)"
	} else {
		location = "/" + location
	}

	keywords := ""
	if err.ErrorKind != nil {
		if keywordPath := err.ErrorKind.KeywordPath(); len(keywordPath) > 0 {
			keywords = strings.Join(keywordPath, ".")
		}
	}

	if keywords != "" {
		return fmt.Sprintf("  - at %s: %s validation failed", location, keywords)
	}
	return fmt.Sprintf("  - at %s: validation failed", location)
}
