// Package schemas provides advisory JSON Schema validation for incoming
// profile fragments. Validation failures never block a merge; they surface
// as warnings on the history entry.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/cv-profile-engine/internal/normalize"
)

// FragmentSchema is the repo-relative path of the fragment schema.
const FragmentSchema = "schemas/profile_fragment.schema.json"

// ResolveSchemaPath finds a schema file by trying common path resolutions,
// so commands work from different working directories (including tests).
func ResolveSchemaPath(relativePath string) string {
	candidates := []string{
		relativePath,
		filepath.Join("..", relativePath),
		filepath.Join("..", "..", relativePath),
	}

	for _, candidate := range candidates {
		if absPath, err := filepath.Abs(candidate); err == nil {
			if _, err := os.Stat(absPath); err == nil {
				return absPath
			}
		}
	}

	return ""
}

// SchemaLoadError represents errors loading or parsing the schema itself.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// CheckFragment validates fragment JSON against the fragment schema and
// returns any mismatches as warnings. Only a broken schema file is an error;
// a non-conforming fragment is not.
func CheckFragment(schemaPath string, fragment []byte) ([]normalize.Warning, error) {
	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, &SchemaLoadError{Path: schemaPath, Message: "cannot resolve path", Cause: err}
	}

	schemaLoader := gojsonschema.NewReferenceLoader("file://" + absPath)
	docLoader := gojsonschema.NewBytesLoader(fragment)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, &SchemaLoadError{Path: schemaPath, Message: "validation could not run", Cause: err}
	}

	if result.Valid() {
		return nil, nil
	}

	warns := make([]normalize.Warning, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		warns = append(warns, normalize.Warning{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return warns, nil
}
