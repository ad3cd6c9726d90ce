package util

import (
	"encoding/json"
	"fmt"
	"os"
)

// PrintPrettyJSON prints v as indented JSON on stdout.
func PrintPrettyJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintPrettyJSONSlice prints items as a JSON array. Empty and nil
// slices print as [] rather than null so script consumers always get
// an array.
func PrintPrettyJSONSlice[T any](items []T) error {
	if len(items) == 0 {
		fmt.Println("[]")
		return nil
	}
	return PrintPrettyJSON(items)
}
