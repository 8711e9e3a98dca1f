package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Sheet is a table read from an uploaded file: header names plus one map per
// non-empty data row.
type Sheet struct {
	Headers []string
	Rows    []map[string]string
}

// ReadAny выбирает парсер по расширению. headerRow: номер строки заголовков (1-based).
func ReadAny(r io.Reader, filename string, headerRow int) (Sheet, error) {
	if headerRow < 1 {
		headerRow = 1
	}
	var (
		grid [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx":
		grid, err = readXLSX(r)
	case ".xls":
		grid, err = readXLS(r)
	case ".csv", ".txt":
		grid, err = readCSV(r)
	default:
		return Sheet{}, fmt.Errorf("unsupported file: %s", filename)
	}
	if err != nil {
		return Sheet{}, fmt.Errorf("%s: %w", filename, err)
	}
	if len(grid) == 0 {
		return Sheet{}, nil
	}
	h := pickHeader(grid, headerRow)
	return Sheet{Headers: h, Rows: rowsToMaps(grid, h, headerRow)}, nil
}

// pickHeader берёт строку заголовков и подставляет Column N для пустых.
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	for i, v := range h {
		v = normalizeCell(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// rowsToMaps конвертирует AoA в []map по заголовкам, пропуская полностью пустые строки.
func rowsToMaps(rows [][]string, headers []string, headerRow int) []map[string]string {
	var out []map[string]string
	for r := headerRow; r < len(rows); r++ {
		rec := rows[r]
		m := make(map[string]string, len(headers))
		empty := true
		for c, h := range headers {
			var v string
			if c < len(rec) {
				v = normalizeCell(rec[c])
			}
			if v != "" {
				empty = false
			}
			m[h] = v
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}

// normalizeCell: обрезка, NBSP → пробел, BOM долой
func normalizeCell(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ReplaceAll(s, "\u00A0", " ")
	return strings.TrimSpace(s)
}
