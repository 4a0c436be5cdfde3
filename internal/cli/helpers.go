package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"

	"github.com/kubev2v/training-planner/internal/estimation"
)

const (
	tableFormat = "table"
	jsonFormat  = "json"
	yamlFormat  = "yaml"
)

var (
	legalOutputTypes = []string{tableFormat, jsonFormat, yamlFormat}
)

func validateOutput(output string) error {
	if len(output) > 0 && !funk.Contains(legalOutputTypes, output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

// printStructured writes v as json or yaml.
func printStructured(w io.Writer, v any, output string) error {
	var (
		marshalled []byte
		err        error
	)
	switch output {
	case jsonFormat:
		marshalled, err = json.MarshalIndent(v, "", "  ")
	case yamlFormat:
		marshalled, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}
	if err != nil {
		return fmt.Errorf("marshalling resource: %w", err)
	}
	fmt.Fprintf(w, "%s\n", strings.TrimSuffix(string(marshalled), "\n"))
	return nil
}

func severityColor(s estimation.Severity) func(format string, a ...interface{}) string {
	switch s {
	case estimation.SeverityError:
		return color.RedString
	case estimation.SeverityWarning:
		return color.YellowString
	default:
		return color.GreenString
	}
}

func disableColor() {
	color.NoColor = true
}
