package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"preventivi/internal/composer"
	"preventivi/internal/domain"
)

var pdfPageFormats = map[string]string{
	"A3":     "A3",
	"A4":     "A4",
	"A5":     "A5",
	"LETTER": "Letter",
	"LEGAL":  "Legal",
}

// pdfWriter wraps a gofpdf document with the text translator for core fonts.
type pdfWriter struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	font  string
	money func(float64) string
}

// RenderPDF lays out the enabled modules in composition order on pages
// sized and margined per the template configuration.
func (r *Renderer) RenderPDF(comp composer.Composition) ([]byte, error) {
	tc := comp.TemplateConfig

	orientation := "P"
	if tc.PageOrientation == domain.OrientationLandscape {
		orientation = "L"
	}
	format, ok := pdfPageFormats[strings.ToUpper(tc.PageFormat)]
	if !ok {
		format = "A4"
	}

	pdf := gofpdf.New(orientation, "mm", format, "")
	pdf.SetMargins(tc.Margins.Left*10, tc.Margins.Top*10, tc.Margins.Right*10)
	pdf.SetAutoPageBreak(true, tc.Margins.Bottom*10)
	pdf.SetTitle("Preventivo "+comp.DocumentData.Metadata.Number, true)
	pdf.SetCreator("preventivi", true)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-(tc.Margins.Bottom*10 - 2))
		pdf.SetFont(r.font, "I", 7)
		pdf.CellFormat(0, 4, fmt.Sprintf("%d/{nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), font: r.font, money: r.money}
	doc := comp.DocumentData

	for _, m := range comp.ModulesOrder {
		switch m.Name {
		case composer.ModuleCompanyHeader:
			w.companyHeader(doc.Issuer)
		case composer.ModuleMetadata:
			w.metadata(doc.Metadata)
		case composer.ModuleCustomerHeader:
			w.customerHeader(doc.Recipient)
		case composer.ModuleLinesTable:
			w.linesTable(doc.Body)
		case composer.ModuleTotals:
			w.totals(doc.Totals)
		case composer.ModuleConditions:
			w.conditions(doc.Conditions)
		case composer.ModuleFooter:
			w.footer(doc.Footer)
		}
		if pdf.Err() {
			return nil, &domain.RenderError{Err: fmt.Errorf("module %s: %w", m.Name, pdf.Error())}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &domain.RenderError{Err: err}
	}
	return buf.Bytes(), nil
}

func (w *pdfWriter) text(style string, size float64, h float64, s string) {
	w.pdf.SetFont(w.font, style, size)
	w.pdf.MultiCell(0, h, w.tr(s), "", "L", false)
}

func (w *pdfWriter) gap(h float64) {
	w.pdf.Ln(h)
}

func addressLine(a domain.Address) string {
	return fmt.Sprintf("%s, %s %s (%s) %s", a.Street, a.PostalCode, a.City, a.Province, a.Country)
}

func (w *pdfWriter) companyHeader(iss domain.Issuer) {
	w.text("B", 14, 6, iss.Name)
	w.text("", 9, 4.5, addressLine(iss.Address))
	vat := "P.IVA " + iss.VATNumber
	if iss.TaxCode != "" {
		vat += " - C.F. " + iss.TaxCode
	}
	w.text("", 9, 4.5, vat)
	contacts := []string{iss.Email}
	if iss.Phone != "" {
		contacts = append(contacts, iss.Phone)
	}
	if iss.Website != "" {
		contacts = append(contacts, iss.Website)
	}
	w.text("", 9, 4.5, strings.Join(contacts, " - "))
	w.gap(4)
}

func (w *pdfWriter) metadata(m domain.QuoteMetadata) {
	w.text("B", 13, 6, "Preventivo n. "+m.Number)
	date := "Data: " + m.IssueDate
	if m.ExpiryDate != "" {
		date += " - Scadenza: " + m.ExpiryDate
	}
	w.text("", 9, 4.5, date)
	w.text("", 10, 5, "Oggetto: "+m.Subject)
	w.gap(4)
}

func (w *pdfWriter) customerHeader(c domain.Recipient) {
	w.text("I", 8, 4, "Spett.le")
	w.text("B", 11, 5, c.Name)
	w.text("", 9, 4.5, addressLine(c.Address))
	if c.VATNumber != "" {
		w.text("", 9, 4.5, "P.IVA "+c.VATNumber)
	}
	if c.TaxCode != "" {
		w.text("", 9, 4.5, "C.F. "+c.TaxCode)
	}
	if c.ContactPerson != "" {
		w.text("", 9, 4.5, "Alla c.a. "+c.ContactPerson)
	}
	w.gap(4)
}

func (w *pdfWriter) linesTable(body domain.QuoteBody) {
	pageW, _ := w.pdf.GetPageSize()
	left, _, right, _ := w.pdf.GetMargins()
	usable := pageW - left - right

	// #, description, qty, unit price, discount, VAT, amount
	fixed := []float64{8, 0, 16, 24, 14, 12, 26}
	rest := usable
	for _, c := range fixed {
		rest -= c
	}
	widths := append([]float64{}, fixed...)
	widths[1] = rest

	headers := []string{"#", "Descrizione", "Q.tà", "Prezzo", "Sconto", "IVA", "Importo"}
	aligns := []string{"L", "L", "R", "R", "R", "R", "R"}

	w.pdf.SetFont(w.font, "B", 8)
	w.pdf.SetFillColor(235, 235, 235)
	for i, h := range headers {
		w.pdf.CellFormat(widths[i], 6, w.tr(h), "B", 0, aligns[i], true, 0, "")
	}
	w.pdf.Ln(-1)

	w.pdf.SetFont(w.font, "", 8)
	for _, l := range body.Lines {
		discount := ""
		if l.DiscountPercent > 0 {
			discount = formatPercent(l.DiscountPercent)
		}
		desc := l.Description
		if l.ItemCode != "" {
			desc = "[" + l.ItemCode + "] " + desc
		}
		cells := []string{
			fmt.Sprintf("%d", l.LineNumber),
			desc,
			formatQuantity(l.Quantity) + " " + l.UnitOfMeasure,
			w.money(l.UnitNetPrice),
			discount,
			formatPercent(l.VATRate),
			w.money(l.NetSubtotal),
		}
		for i, c := range cells {
			w.pdf.CellFormat(widths[i], 5.5, w.tr(c), "B", 0, aligns[i], false, 0, "")
		}
		w.pdf.Ln(-1)
	}
	if body.TableNotes != "" {
		w.gap(2)
		w.text("I", 8, 4, body.TableNotes)
	}
	w.gap(4)
}

func (w *pdfWriter) totals(t domain.Totals) {
	pageW, _ := w.pdf.GetPageSize()
	left, _, right, _ := w.pdf.GetMargins()
	labelW, valueW := 50.0, 30.0
	x := pageW - right - labelW - valueW
	if x < left {
		x = left
	}

	row := func(style, label string, v float64) {
		w.pdf.SetX(x)
		w.pdf.SetFont(w.font, style, 9)
		w.pdf.CellFormat(labelW, 5, w.tr(label), "", 0, "L", false, 0, "")
		w.pdf.CellFormat(valueW, 5, w.tr(w.money(v)), "", 1, "R", false, 0, "")
	}

	row("", "Imponibile", t.NetTotal)
	if t.DiscountTotal > 0 {
		row("I", "di cui sconti", t.DiscountTotal)
	}
	for _, b := range t.VATBreakdown {
		row("", fmt.Sprintf("IVA %s su %s", formatPercent(b.Rate), w.money(b.Taxable)), b.VAT)
	}
	row("", "Totale IVA", t.VATTotal)
	row("B", "Totale", t.GrossTotal)
	w.gap(4)
}

func (w *pdfWriter) conditions(c *domain.ContractTerms) {
	if c == nil || c.Text == "" {
		return
	}
	w.text("B", 9, 5, "Condizioni generali")
	w.text("", 8, 4, c.Text)
	w.gap(3)
}

func (w *pdfWriter) footer(f *domain.Footer) {
	if f == nil {
		return
	}
	if f.PaymentDetails != "" {
		w.text("", 8, 4, "Pagamento: "+f.PaymentDetails)
	}
	if f.Validity != "" {
		w.text("", 8, 4, "Validità: "+f.Validity)
	}
	if f.FinalNotes != "" {
		w.text("", 8, 4, f.FinalNotes)
	}
	if f.Signature != "" {
		w.gap(6)
		w.text("I", 9, 5, f.Signature)
	}
}
