package sweep

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes results with a header row.
func WriteCSV(w io.Writer, results []Result) error {
	if err := gocsv.Marshal(results, w); err != nil {
		return fmt.Errorf("writing sweep results: %w", err)
	}
	return nil
}

// WriteSummaryCSV writes summaries with a header row.
func WriteSummaryCSV(w io.Writer, summaries []Summary) error {
	if err := gocsv.Marshal(summaries, w); err != nil {
		return fmt.Errorf("writing sweep summary: %w", err)
	}
	return nil
}
