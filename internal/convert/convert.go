// Package convert turns workbook sheets into per-sheet CSV files.
package convert

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// Summary reports what a conversion produced.
type Summary struct {
	Workbook string   `json:"workbook"`
	Sheets   []string `json:"sheets"`
	Files    []string `json:"files"`
}

// Workbook converts every sheet (or the one named) of an XLSX workbook to
// `<outDir>/<sheet>.csv`, cell values verbatim, UTF-8. Sheet reads are
// serial (the workbook handle is not safe for concurrent access); file
// writes fan out.
func Workbook(path, outDir, sheet string) (*Summary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if sheet != "" {
		found := false
		for _, s := range sheets {
			if s == sheet {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("workbook %s has no sheet %q", path, sheet)
		}
		sheets = []string{sheet}
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", outDir, err)
	}

	summary := &Summary{Workbook: path, Sheets: sheets}

	var g errgroup.Group
	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", name, err)
		}
		target := filepath.Join(outDir, name+".csv")
		summary.Files = append(summary.Files, target)

		g.Go(func() error {
			return writeSheet(target, rows)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().Str("workbook", path).Int("sheets", len(sheets)).Msg("Workbook converted")
	return summary, nil
}

func writeSheet(path string, rows [][]string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}
