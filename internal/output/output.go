package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gitbrag/internal/analyze"
)

// Writer renders one artifact from a pipeline result.
type Writer interface {
	Write(w io.Writer, res *analyze.Result) error
}

// GetWriter returns a writer for the specified artifact kind.
func GetWriter(kind string) (Writer, error) {
	switch kind {
	case "brag":
		return &BragWriter{}, nil
	case "summary":
		return &SummaryWriter{}, nil
	case "cv":
		return &CVWriter{}, nil
	case "performance":
		return &PerformanceWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported artifact kind: %s", kind)
	}
}

// WriteFile renders one artifact to path.
func WriteFile(res *analyze.Result, kind, path string) error {
	writer, err := GetWriter(kind)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	if err := writer.Write(f, res); err != nil {
		return fmt.Errorf("writing %s: %w", kind, err)
	}
	return nil
}

// artifactFiles maps artifact kinds to their file names in the output
// directory.
var artifactFiles = []struct {
	kind string
	name string
}{
	{"brag", "brag.md"},
	{"summary", "summary.md"},
	{"cv", "cv.md"},
	{"performance", "performance.md"},
	{"json", "run.json"},
}

// WriteAll writes the standard artifact set into dir and returns the paths
// written. The CV and performance documents are skipped when their bodies
// are empty (offline runs disable those stages).
func WriteAll(res *analyze.Result, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	var written []string
	for _, a := range artifactFiles {
		if a.kind == "cv" && res.CV == "" {
			continue
		}
		if a.kind == "performance" && res.Performance == "" {
			continue
		}
		path := filepath.Join(dir, a.name)
		if err := WriteFile(res, a.kind, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
