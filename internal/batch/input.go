// Package batch reads syndic lists and enriches them concurrently.
package batch

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/enrich"
	"github.com/sells-group/prospect-cli/internal/model"
)

// Recognized header names, lower-cased. The first listed is canonical.
var columnAliases = map[string][]string{
	"siret":   {"siret", "siren", "stable_id"},
	"name":    {"name", "nom", "raison_sociale", "display_name"},
	"city":    {"city", "ville", "commune"},
	"website": {"website", "site", "sites_internet"},
	"email":   {"email", "mail"},
}

// ReadFile loads enrichment requests from a .csv or .xlsx file with a header
// row. Columns siret and name are required; city, website and email are
// optional.
func ReadFile(ctx context.Context, path string) ([]enrich.Request, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "batch: open input")
		}
		defer f.Close() //nolint:errcheck
		return ReadCSV(ctx, f)
	}
}

// ReadCSV parses CSV input. The delimiter is ';' when the header line has
// more semicolons than commas, as in French spreadsheet exports.
func ReadCSV(ctx context.Context, r io.Reader) ([]enrich.Request, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, eris.Wrap(err, "batch: read csv")
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.Comma = detectDelimiter(head)

	var records [][]string
	for {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "batch: csv read cancelled")
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "batch: read csv row")
		}
		records = append(records, record)
	}
	return parseRecords(records)
}

// ReadXLSX parses the first sheet of an XLSX workbook.
func ReadXLSX(path string) ([]enrich.Request, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "batch: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("batch: xlsx has no sheets")
	}

	sheet := f.Sheets[0]
	records := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		records = append(records, cells)
	}
	return parseRecords(records)
}

func detectDelimiter(head []byte) rune {
	line := string(head)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

func parseRecords(records [][]string) ([]enrich.Request, error) {
	if len(records) == 0 {
		return nil, eris.New("batch: input is empty")
	}

	idx := headerIndex(records[0])
	for _, required := range []string{"siret", "name"} {
		if _, ok := idx[required]; !ok {
			return nil, eris.Errorf("batch: missing required column %q", required)
		}
	}

	get := func(record []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	reqs := make([]enrich.Request, 0, len(records)-1)
	for n, record := range records[1:] {
		siret := get(record, "siret")
		name := get(record, "name")
		if siret == "" || name == "" {
			zap.L().Warn("batch: skipping row without siret or name", zap.Int("row", n+2))
			continue
		}
		reqs = append(reqs, enrich.Request{
			Identity: model.CompanyIdentity{
				StableID:    siret,
				DisplayName: name,
				CityHint:    get(record, "city"),
			},
			Website: get(record, "website"),
			Email:   get(record, "email"),
		})
	}
	return reqs, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for col, aliases := range columnAliases {
			if _, seen := idx[col]; seen {
				continue
			}
			for _, a := range aliases {
				if h == a {
					idx[col] = i
					break
				}
			}
		}
	}
	return idx
}
