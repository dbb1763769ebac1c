package output

import (
	"fmt"
	"io"

	"gitbrag/internal/analyze"
)

// CVWriter emits the generated CV body. The pipeline already produced
// markdown-compatible text; the writer just owns the sink.
type CVWriter struct{}

func (c *CVWriter) Write(w io.Writer, res *analyze.Result) error {
	_, err := fmt.Fprintln(w, res.CV)
	return err
}

// PerformanceWriter emits the generated performance-report body.
type PerformanceWriter struct{}

func (p *PerformanceWriter) Write(w io.Writer, res *analyze.Result) error {
	_, err := fmt.Fprintln(w, res.Performance)
	return err
}
