// Package output provides machine-readable output formatting for proc
// commands. Every JSON envelope carries at least {action, success} so
// scripts and agents can dispatch on results without scraping text.
package output

import (
	"encoding/json"
	"fmt"
	"os"
)

// PrintJSON writes the value as pretty-printed JSON to stdout.
func PrintJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(os.Stdout, "%s\n", data)
	return err
}
