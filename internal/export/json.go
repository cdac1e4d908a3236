package export

import (
	"encoding/json"
	"io"
	"os"

	"comment-collector-go/internal/graph"
)

// WriteJSONL writes one JSON object per comment per line, in input
// order. Absent optional fields are omitted from the object.
func WriteJSONL(w io.Writer, comments []graph.Comment) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, c := range comments {
		if err := enc.Encode(c); err != nil {
			return err
		}
	}
	return nil
}

func WriteJSONLFile(path string, comments []graph.Comment) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSONL(f, comments); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
