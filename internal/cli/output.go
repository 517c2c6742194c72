package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"sigs.k8s.io/yaml"
)

func printJSON(w io.Writer, v any) error {
	marshalled, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling resource: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", string(marshalled))
	return err
}

func printYAML(w io.Writer, v any) error {
	marshalled, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshalling resource: %w", err)
	}
	_, err = fmt.Fprint(w, string(marshalled))
	return err
}
