package interview

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Export writes the session as indented JSON, the sole persisted artifact of
// an interview run.
func Export(w io.Writer, s *Session) error {
	if s == nil {
		return fmt.Errorf("no session to export")
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding session %s: %w", s.ID, err)
	}

	return nil
}

// ExportFile writes the session JSON to the given path.
func ExportFile(path string, s *Session) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file %q: %w", path, err)
	}

	if err := Export(f, s); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
