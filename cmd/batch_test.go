package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/prospect-cli/internal/export"
	"github.com/sells-group/prospect-cli/internal/model"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "syndics.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func resetBatchFlags() {
	batchInput, batchLimit, batchConcurrency, batchOutput, batchFormat = "", 0, 0, "", "json"
}

func TestBatchCmd_JSONToStdout(t *testing.T) {
	cfg = testConfig(t)
	defer resetBatchFlags()
	batchInput = writeInput(t, "siret,name,city,website\n123456789,Foncia Paris,Paris,foncia.com\n987654321,Cabinet Dupont,Lyon,cabinet-dupont.fr\n")

	var out bytes.Buffer
	batchCmd.SetOut(&out)
	batchCmd.SetContext(context.Background())
	defer batchCmd.SetOut(nil)

	require.NoError(t, batchCmd.RunE(batchCmd, nil))

	var results []model.EnrichmentResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "foncia.com", results[0].Domain)
	assert.Equal(t, "cabinet-dupont.fr", results[1].Domain)
}

func TestBatchCmd_XLSX(t *testing.T) {
	cfg = testConfig(t)
	defer resetBatchFlags()
	batchInput = writeInput(t, "siret;nom;ville\n123456789;Foncia Paris;Paris\n")
	batchOutput = filepath.Join(t.TempDir(), "out.xlsx")
	batchFormat = "xlsx"
	batchLimit = 1
	batchCmd.SetContext(context.Background())

	require.NoError(t, batchCmd.RunE(batchCmd, nil))

	f, err := xlsx.OpenFile(batchOutput)
	require.NoError(t, err)
	sheet, ok := f.Sheet[export.SyndicsSheet]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "123456789", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "name_fallback", sheet.Rows[1].Cells[3].String())
}

func TestBatchCmd_XLSXRequiresOutput(t *testing.T) {
	cfg = testConfig(t)
	defer resetBatchFlags()
	batchInput = writeInput(t, "siret,name\n1,a\n")
	batchFormat = "xlsx"
	batchCmd.SetContext(context.Background())

	err := batchCmd.RunE(batchCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output is required")
}

func TestBatchCmd_MissingInput(t *testing.T) {
	cfg = testConfig(t)
	defer resetBatchFlags()
	batchInput = filepath.Join(t.TempDir(), "nope.csv")
	batchCmd.SetContext(context.Background())

	assert.Error(t, batchCmd.RunE(batchCmd, nil))
}
