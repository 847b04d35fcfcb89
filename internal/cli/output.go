package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"
)

const (
	jsonFormat  = "json"
	yamlFormat  = "yaml"
	tableFormat = "table"
)

var (
	legalOutputTypes = []string{jsonFormat, yamlFormat, tableFormat}
)

func outputFlagUsage() string {
	return fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", "))
}

func validateOutput(output string) error {
	if len(output) > 0 && !funk.Contains(legalOutputTypes, output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

// printObject writes v as json or yaml, or calls table for any other format.
func printObject(out io.Writer, output string, v any, table func(w *tabwriter.Writer)) error {
	switch output {
	case jsonFormat:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling to JSON: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case yamlFormat:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshalling to YAML: %w", err)
		}
		_, err = fmt.Fprint(out, string(data))
		return err
	default:
		w := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)
		table(w)
		return w.Flush()
	}
}

func num(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
