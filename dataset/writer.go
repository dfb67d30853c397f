package dataset

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// WriteFile writes rows to path as a Parquet file, creating or replacing it.
func WriteFile(path string, rows []CityRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	writer := parquet.NewGenericWriter[CityRow](file)
	if _, err := writer.Write(rows); err != nil {
		file.Close()
		return fmt.Errorf("failed to write rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		file.Close()
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return file.Close()
}
