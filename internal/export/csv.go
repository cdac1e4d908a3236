// Package export serializes collected comments into tabular files using
// the fixed seven-column schema.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"comment-collector-go/internal/graph"
)

// WriteCSV writes the header row plus one row per comment, in input
// order, to a pre-opened sink. The caller owns the sink.
func WriteCSV(w io.Writer, comments []graph.Comment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(graph.CSVHeader()); err != nil {
		return err
	}
	for _, c := range comments {
		if err := cw.Write(c.CSVRow()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile opens (and truncates) path, writes the comments and
// closes the file, including on error paths. UTF-8, no BOM.
func WriteCSVFile(path string, comments []graph.Comment) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, comments); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// CSVString renders the CSV payload in memory for the form interface.
func CSVString(comments []graph.Comment) (string, error) {
	var b strings.Builder
	if err := WriteCSV(&b, comments); err != nil {
		return "", err
	}
	return b.String(), nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
