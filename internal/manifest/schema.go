package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/manifest.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// SchemaResult contains the outcome of validating manifest bytes against the
// embedded JSON Schema. Schema validation catches shape errors (wrong value
// types, unknown entry fields) before structural parsing; Parse catches the
// semantic ones (duplicates, ordering, empty identifiers).
type SchemaResult struct {
	Valid  bool
	Issues []SchemaIssue
}

// SchemaIssue is a single schema violation.
type SchemaIssue struct {
	Path    string // instance location, e.g. "/wcag/1/path"
	Message string
	Keyword string // schema keyword that failed
}

// getSchema compiles the embedded JSON Schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("manifest.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("manifest.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ValidateSchema validates raw manifest YAML against the embedded schema.
// The error return is for schema compilation or YAML parse failures;
// violations of the schema itself come back in the SchemaResult.
func ValidateSchema(data []byte) (*SchemaResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	// Round-trip through JSON so the validator sees JSON-native types
	// rather than whatever yaml.v3 decoded (int vs float64 and friends).
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &SchemaResult{Valid: true}, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	issues := collectSchemaIssues(validationErr)
	if len(issues) == 0 {
		issues = []SchemaIssue{{Message: validationErr.Error()}}
	}
	return &SchemaResult{Valid: false, Issues: issues}, nil
}

// collectSchemaIssues walks the validation error tree and returns deduplicated
// leaf-level issues. The entry-line oneOf (string vs mapping) produces a
// failing branch for every non-matching alternative, so container keywords
// are skipped and overlapping leaves collapsed.
func collectSchemaIssues(ve *jsonschema.ValidationError) []SchemaIssue {
	var issues []SchemaIssue
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, cause := range e.Causes {
				walk(cause)
			}
			return
		}

		keyword := ""
		if e.ErrorKind != nil {
			if kwPath := e.ErrorKind.KeywordPath(); len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}
		// Container keywords carry no property-level detail.
		if keyword == "" || keyword == "oneOf" || keyword == "allOf" || keyword == "$ref" {
			return
		}

		path := ""
		if len(e.InstanceLocation) > 0 {
			path = "/" + strings.Join(e.InstanceLocation, "/")
		}
		msg := e.ErrorKind.LocalizedString(printer)

		issues = append(issues, SchemaIssue{Path: path, Message: msg, Keyword: keyword})
	}
	walk(ve)

	seen := make(map[string]bool)
	var out []SchemaIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			out = append(out, issue)
		}
	}
	return out
}
