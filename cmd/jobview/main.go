// Command jobview browses a CSV of job postings: it filters them, prints
// or serves the listings, and summarizes them as charts.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"jobview-engine/internal/listing"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", describe(err))
		os.Exit(1)
	}
}

// describe turns a data source failure into a message that names the file.
func describe(err error) string {
	var dse *listing.DataSourceError
	if errors.As(err, &dse) {
		return fmt.Sprintf("cannot load listings from %s: %v", dse.Source, dse.Err)
	}
	return err.Error()
}
