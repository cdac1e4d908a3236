package export

import (
	"fmt"
	"strings"

	"comment-collector-go/internal/graph"
)

// WriteFile dispatches on the export format. Formats: csv (default),
// xlsx, jsonl.
func WriteFile(format string, path string, comments []graph.Comment) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "csv":
		return WriteCSVFile(path, comments)
	case "xlsx":
		return WriteXLSXFile(path, comments)
	case "jsonl", "json":
		return WriteJSONLFile(path, comments)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}
