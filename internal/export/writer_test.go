package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"preventivi/internal/domain"
)

func sampleQuotes() []domain.QuoteSummary {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	trashed := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	return []domain.QuoteSummary{
		{
			ID:            uuid.New(),
			Number:        "2026-001",
			Subject:       "Fornitura arredi",
			Status:        domain.QuoteStatusSent,
			RecipientName: "Bianchi SpA",
			GrossTotal:    1234.5,
			RecordState:   domain.RecordStateActive,
			CreatedAt:     created,
			UpdatedAt:     created,
		},
		{
			ID:            uuid.New(),
			Number:        "2026-002",
			Subject:       "Manutenzione; annuale",
			Status:        domain.QuoteStatusDraft,
			RecipientName: "Verdi Srl",
			GrossTotal:    -24.4,
			RecordState:   domain.RecordStateTrashed,
			TrashedAt:     &trashed,
			CreatedAt:     created,
			UpdatedAt:     trashed,
		},
	}
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = ';'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	rows := readCSV(t, buf.Bytes())
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], len(columns))
	assert.Equal(t, "Numero", rows[0][0])
	assert.Equal(t, "Aggiornato il", rows[0][8])
}

func TestWriteCSV_BOMAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleQuotes()))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, BOM))

	rows := readCSV(t, data[len(BOM):])
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"2026-001", "Fornitura arredi", "Bianchi SpA", "inviato", "1234,50",
		"attivo", "", "2026-03-01T09:00:00Z", "2026-03-01T09:00:00Z",
	}, rows[1])

	assert.Equal(t, "Manutenzione; annuale", rows[2][1])
	assert.Equal(t, "-24,40", rows[2][4])
	assert.Equal(t, "cestinato", rows[2][5])
	assert.Equal(t, "2026-03-05T12:00:00Z", rows[2][6])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	rows := readCSV(t, buf.Bytes()[len(BOM):])
	assert.Len(t, rows, 1)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleQuotes()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Numero", rows[0][0])
	assert.Equal(t, "2026-001", rows[1][0])
	assert.Equal(t, "Bianchi SpA", rows[1][2])

	total, err := f.GetCellValue(sheetName, "E2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1234.5", total)
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, domain.ExportFormat("pdf"), sampleQuotes())
	assert.ErrorIs(t, err, domain.ErrExportFormat)
}

func TestWrite_DefaultsToCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "", sampleQuotes()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), BOM))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Preventivi Marzo", "Preventivi_Marzo"},
		{"special chars", "Clienti / 2026 (Q1)", "Clienti_2026_Q1"},
		{"accents stripped", "Attività già svolte", "Attivit_gi_svolte"},
		{"hyphens and underscores preserved", "cartella-clienti_2026", "cartella-clienti_2026"},
		{"consecutive underscores collapsed", "a___b", "a_b"},
		{"leading/trailing cleaned", "  hello  ", "hello"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "Preventivi_Marzo_"+today+".csv", BuildFilename("Preventivi Marzo", domain.ExportFormatCSV))
	assert.Equal(t, "preventivi_"+today+".xlsx", BuildFilename("///", domain.ExportFormatXLSX))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", ContentType(domain.ExportFormatCSV))
	assert.Contains(t, ContentType(domain.ExportFormatXLSX), "spreadsheetml")
}
