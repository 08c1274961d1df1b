package tabular

import (
	"bufio"
	"encoding/csv"
	"os"
	"path/filepath"

	perr "shelfprep/internal/platform/errors"
)

// WriteFile writes header and rows as comma delimited UTF-8 to path,
// creating parent directories. The file is closed on every path.
func WriteFile(path string, header []string, rows [][]string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return perr.IOf(err, "mkdir for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return perr.IOf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = perr.IOf(cerr, "close %s", path)
		}
	}()

	bw := bufio.NewWriter(f)
	w := csv.NewWriter(bw)
	if err := w.Write(header); err != nil {
		return perr.IOf(err, "write header %s", path)
	}
	if err := w.WriteAll(rows); err != nil {
		return perr.IOf(err, "write rows %s", path)
	}
	if err := bw.Flush(); err != nil {
		return perr.IOf(err, "flush %s", path)
	}
	return nil
}
