package exam

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://exam-profile.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func profileSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			compileErr = fmt.Errorf("parse profile schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}

// validateSchema checks a decoded YAML document against the profile schema.
func validateSchema(doc any) error {
	schema, err := profileSchema()
	if err != nil {
		return err
	}

	// The validator expects JSON values, so round-trip the YAML tree.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert profile to JSON: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("convert profile to JSON: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("profile schema validation failed: %w", err)
	}
	return nil
}

// validateVariant performs the structural checks the schema cannot express.
// Returns a combined error describing all problems found, or nil if valid.
func validateVariant(v *Variant) error {
	var errs []string

	subjects := make(map[string]bool, len(v.Subjects))
	for _, s := range v.Subjects {
		if subjects[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate subject ID: %q", s.ID))
		}
		subjects[s.ID] = true
		if s.MaxQuestions <= 0 {
			errs = append(errs, fmt.Sprintf("subject %q: max_questions must be > 0, got %d", s.ID, s.MaxQuestions))
		}
	}

	tracks := make(map[string]bool, len(v.Tracks))
	for _, t := range v.Tracks {
		if tracks[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate track ID: %q", t.ID))
		}
		tracks[t.ID] = true
		if t.Denominator <= 0 {
			errs = append(errs, fmt.Sprintf("track %q: denominator must be > 0, got %g", t.ID, t.Denominator))
		}
		seen := make(map[string]bool, len(t.Members))
		for _, m := range t.Members {
			if !subjects[m] {
				errs = append(errs, fmt.Sprintf("track %q references nonexistent subject %q", t.ID, m))
			}
			if seen[m] {
				errs = append(errs, fmt.Sprintf("track %q lists subject %q twice", t.ID, m))
			}
			seen[m] = true
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("exam %q validation failed:\n  %s", v.ID, strings.Join(errs, "\n  "))
	}
	return nil
}
