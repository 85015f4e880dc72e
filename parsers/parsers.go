// Package parsers wraps cnf's DIMACS reader with the file-handling
// concerns the CLI needs: transparent gzip decompression and a single
// entry point that loads a CNF instance straight into a Formula, adapted
// from the teacher's LoadDIMACS/reader helpers.
package parsers

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/gosat/satkit/cnf"
)

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			rc.Close()
			return nil, err
		}
		rc = gzippedReadCloser{gz, file}
	}
	return rc, nil
}

// gzippedReadCloser closes both the gzip reader and the underlying file.
type gzippedReadCloser struct {
	*gzip.Reader
	file *os.File
}

func (g gzippedReadCloser) Close() error {
	gzErr := g.Reader.Close()
	fileErr := g.file.Close()
	if gzErr != nil {
		return gzErr
	}
	return fileErr
}

// LoadFormula reads a DIMACS CNF formula from filename, transparently
// decompressing it first if the name ends in ".gz" or gzipped is set.
func LoadFormula(filename string, gzipped bool) (*cnf.Formula, error) {
	gzipped = gzipped || strings.HasSuffix(filename, ".gz")

	rc, err := reader(filename, gzipped)
	if err != nil {
		return nil, errors.Wrapf(err, "opening instance file %q", filename)
	}
	defer rc.Close()

	f, err := cnf.ParseDIMACS(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing instance file %q", filename)
	}
	return f, nil
}

// LoadLines reads a plain-text file (e.g. a Sudoku grid) as a slice of
// non-empty lines.
func LoadLines(filename string) ([]string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", filename)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}
