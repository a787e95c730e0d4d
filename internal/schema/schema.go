// Package schema checks documents against embedded JSON schemas.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Validate checks document against schemaJSON. Failures wrap invalid and
// list every violation, sorted so messages are stable.
func Validate(schemaJSON string, document gojsonschema.JSONLoader, invalid error) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schemaJSON), document)
	if err != nil {
		return fmt.Errorf("%w: %v", invalid, err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		violations = append(violations, resultErr.String())
	}
	sort.Strings(violations)
	return fmt.Errorf("%w: %s", invalid, strings.Join(violations, "; "))
}
