package csvio

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/EyadMostafa/automated-timetable-generator/internal/solver"
)

// WriteRecords exports a solution's flat record list to the CSV file at path,
// replacing any previous content.
func WriteRecords(records []solver.Record, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %v: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&records, out); err != nil {
		return fmt.Errorf("cannot write %v: %w", path, err)
	}
	return nil
}

// RecordsString renders the record list as CSV text.
func RecordsString(records []solver.Record) (string, error) {
	return gocsv.MarshalString(&records)
}
