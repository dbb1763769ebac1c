package output

import (
	"encoding/json"
	"io"

	"gitbrag/internal/analyze"
)

// JSONWriter dumps the full pipeline result as the run metadata artifact.
// Diff snippets are excluded by the result's JSON tags; everything else,
// including the per-stage error log, is preserved.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, res *analyze.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
