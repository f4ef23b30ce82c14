package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderRegexp = regexp.MustCompile(`\{\{\.([A-Za-z]+)\}\}`)

// MissingPlaceholderError reports a template placeholder with no value,
// caught before any request is sent.
type MissingPlaceholderError struct {
	Placeholder string
}

func (e *MissingPlaceholderError) Error() string {
	return fmt.Sprintf("prompt template references {{.%s}} but no value was supplied", e.Placeholder)
}

// Render substitutes every {{.Name}} placeholder in the template with
// its value. Pure string substitution: values are inserted verbatim.
// Every placeholder present in the template must have a value.
func Render(template string, vars map[string]string) (string, error) {
	for _, m := range placeholderRegexp.FindAllStringSubmatch(template, -1) {
		if _, ok := vars[m[1]]; !ok {
			return "", &MissingPlaceholderError{Placeholder: m[1]}
		}
	}
	out := template
	for name, value := range vars {
		out = strings.ReplaceAll(out, "{{."+name+"}}", value)
	}
	return out, nil
}
