// Command validate_catalog checks a universities dataset against the catalog
// schema before deployment.
//
// Usage:
//
//	go run cmd/tools/validate_catalog/main.go data/universities.json
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aura/counsel/internal/schemas"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: validate_catalog <path-to-universities.json>")
		os.Exit(2)
	}
	path := os.Args[1]

	err := schemas.ValidateFile(schemas.UniversityCatalog, path)
	if err == nil {
		fmt.Printf("OK: %s conforms to the catalog schema\n", path)
		return
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprintf(os.Stderr, "ERROR: %s failed validation:\n", path)
		for _, fieldErr := range validationErr.Errors {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", fieldErr.Field, fieldErr.Message)
		}
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
