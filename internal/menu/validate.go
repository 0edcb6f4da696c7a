package menu

import (
	"fmt"
	"strings"

	pkgerrors "github.com/rossellmestanza/menudigital/pkg/errors"
)

// MissingVariables returns the names of required variables that have no
// selected option, in product declaration order.
func MissingVariables(p Product, sel Selection) []string {
	var missing []string
	for _, variable := range p.Variables {
		if !variable.Required {
			continue
		}
		if strings.TrimSpace(sel.Variables[variable.Name]) == "" {
			missing = append(missing, variable.Name)
		}
	}
	return missing
}

// ValidateSelection rejects a selection that leaves any required variable
// unset. The error names every missing variable, not just the first.
func ValidateSelection(p Product, sel Selection) error {
	missing := MissingVariables(p, sel)
	if len(missing) == 0 {
		return nil
	}
	return pkgerrors.New(
		pkgerrors.CodeValidation,
		fmt.Sprintf("selecciona: %s", strings.Join(missing, ", ")),
	).WithDetails(map[string]any{"missing_variables": missing})
}
