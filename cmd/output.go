package cmd

import (
	"encoding/json"
	"fmt"
	"os"
)

// printJSON writes v to stdout so results can be piped while logs go to stderr.
func printJSON(v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(pretty))
	return err
}
