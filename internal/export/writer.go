// Package export writes quote lists as CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"preventivi/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the header row shared by the CSV and XLSX exports.
var columns = []string{
	"Numero",
	"Oggetto",
	"Cliente",
	"Stato",
	"Totale",
	"Stato record",
	"Cestinato il",
	"Creato il",
	"Aggiornato il",
}

// Writer wraps csv.Writer for exporting quote summaries as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w. Fields are separated by
// semicolons, which Italian-locale spreadsheets expect.
func NewWriter(w io.Writer) *Writer {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	return &Writer{csv: cw}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteQuotes converts a batch of quotes to CSV rows and writes them.
func (w *Writer) WriteQuotes(quotes []domain.QuoteSummary) error {
	for i := range quotes {
		if err := w.csv.Write(quoteToRow(&quotes[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteCSV writes the BOM, the header and all quotes to out.
func WriteCSV(out io.Writer, quotes []domain.QuoteSummary) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if err := w.WriteQuotes(quotes); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func quoteToRow(q *domain.QuoteSummary) []string {
	return []string{
		q.Number,
		q.Subject,
		q.RecipientName,
		string(q.Status),
		formatMoney(q.GrossTotal),
		string(q.RecordState),
		formatTime(q.TrashedAt),
		q.CreatedAt.Format(time.RFC3339),
		q.UpdatedAt.Format(time.RFC3339),
	}
}

// formatMoney uses a decimal comma to match the semicolon-separated layout.
func formatMoney(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', 2, 64), ".", ",", 1)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}. An empty
// sanitized name falls back to "preventivi".
func BuildFilename(name string, format domain.ExportFormat) string {
	sanitized := SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "preventivi"
	}
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, format)
}

// ContentType returns the MIME type of an export format.
func ContentType(format domain.ExportFormat) string {
	if format == domain.ExportFormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}
