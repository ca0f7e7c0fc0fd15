package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preventivi/internal/calculator"
	"preventivi/internal/composer"
	"preventivi/internal/config"
	"preventivi/internal/domain"
)

func sampleDocument() domain.QuoteDocument {
	doc := domain.QuoteDocument{
		Metadata: domain.QuoteMetadata{
			QuoteID:   uuid.New(),
			Number:    "2026-042",
			IssueDate: "2026-03-01",
			Subject:   "Fornitura arredi ufficio",
			Status:    domain.QuoteStatusDraft,
		},
		Issuer: domain.Issuer{
			Name:      "Rossi & Figli S.r.l.",
			VATNumber: "IT01234567890",
			Address:   domain.Address{Street: "Via Roma 1", PostalCode: "20100", City: "Milano", Province: "MI", Country: "Italia"},
			Email:     "info@rossi.it",
		},
		Recipient: domain.Recipient{
			Name:    "Bianchi SpA",
			Address: domain.Address{Street: "Corso Italia 5", PostalCode: "10100", City: "Torino", Province: "TO", Country: "Italia"},
		},
		Body: domain.QuoteBody{Lines: []domain.LineItem{
			{Description: "Scrivania", UnitOfMeasure: "pz", Quantity: 2, UnitNetPrice: 1250, VATRate: 22, DiscountPercent: 10},
			{Description: "Sedia <ergonomica>", UnitOfMeasure: "pz", Quantity: 4, UnitNetPrice: 180.5, VATRate: 22},
		}},
		Conditions: &domain.ContractTerms{Text: "Consegna entro 30 giorni."},
		Footer:     &domain.Footer{Signature: "Mario Rossi"},
	}
	return calculator.Calculate(doc)
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(config.RenderConfig{FontFamily: "Helvetica", Currency: "EUR"})
	require.NoError(t, err)
	return r
}

func TestRenderHTML_DefaultTemplate(t *testing.T) {
	r := newTestRenderer(t)
	comp := composer.Compose(composer.DefaultTemplate(uuid.New(), ""), sampleDocument())

	out, err := r.RenderHTML(comp)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "size: A4 portrait")
	assert.Contains(t, html, "Preventivo n. 2026-042")
	assert.Contains(t, html, "Rossi &amp; Figli S.r.l.")
	assert.Contains(t, html, "Sedia &lt;ergonomica&gt;")
	assert.Contains(t, html, "€ 2.250,00")
	assert.Contains(t, html, "Consegna entro 30 giorni.")
	assert.Contains(t, html, "Mario Rossi")
}

func TestRenderHTML_FollowsModuleOrder(t *testing.T) {
	r := newTestRenderer(t)
	tmpl := composer.DefaultTemplate(uuid.New(), "")
	one, two := 1, 2
	tmpl.ModuleComposition.Modules = []domain.ModuleConfig{
		{Name: composer.ModuleTotals, Order: &one, Enabled: true},
		{Name: composer.ModuleCustomerHeader, Order: &two, Enabled: true},
		{Name: composer.ModuleCompanyHeader, Enabled: false},
		{Name: "modulo_custom", Enabled: true},
	}

	out, err := r.RenderHTML(composer.Compose(tmpl, sampleDocument()))
	require.NoError(t, err)

	html := string(out)
	totals := strings.Index(html, `class="totali-box"`)
	customer := strings.Index(html, `class="cliente"`)
	require.NotEqual(t, -1, totals)
	require.NotEqual(t, -1, customer)
	assert.Less(t, totals, customer)
	assert.NotContains(t, html, `class="azienda"`)
	assert.NotContains(t, html, "modulo_custom")
}

func TestRenderHTML_CustomStylesAndLandscape(t *testing.T) {
	r := newTestRenderer(t)
	tmpl := composer.DefaultTemplate(uuid.New(), "")
	styles := "h1 { color: #003366; }"
	tmpl.CustomStyles = &styles
	tmpl.PageOrientation = domain.OrientationLandscape

	out, err := r.RenderHTML(composer.Compose(tmpl, sampleDocument()))
	require.NoError(t, err)
	assert.Contains(t, string(out), "h1 { color: #003366; }")
	assert.Contains(t, string(out), "size: A4 landscape")
}

func TestRenderHTML_OmitsAbsentOptionalSections(t *testing.T) {
	r := newTestRenderer(t)
	doc := sampleDocument()
	doc.Conditions = nil
	doc.Footer = nil

	out, err := r.RenderHTML(composer.Compose(composer.DefaultTemplate(uuid.New(), ""), doc))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Condizioni generali")
	assert.NotContains(t, string(out), `class="footer"`)
}

func TestRenderPDF_ProducesDocument(t *testing.T) {
	r := newTestRenderer(t)
	comp := composer.Compose(composer.DefaultTemplate(uuid.New(), ""), sampleDocument())

	out, err := r.RenderPDF(comp)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 500)
}

func TestRenderPDF_LandscapeUnknownFormat(t *testing.T) {
	r := newTestRenderer(t)
	tmpl := composer.DefaultTemplate(uuid.New(), "")
	tmpl.PageFormat = "B9"
	tmpl.PageOrientation = domain.OrientationLandscape

	out, err := r.RenderPDF(composer.Compose(tmpl, sampleDocument()))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderPDF_UnknownFontIsRenderError(t *testing.T) {
	r, err := New(config.RenderConfig{FontFamily: "NoSuchFont"})
	require.NoError(t, err)

	_, err = r.RenderPDF(composer.Compose(composer.DefaultTemplate(uuid.New(), ""), sampleDocument()))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRenderFailed)
}

func TestMoneyFormatter(t *testing.T) {
	eur := moneyFormatter("EUR")
	assert.Equal(t, "€ 0,00", eur(0))
	assert.Equal(t, "€ 1.234,56", eur(1234.56))
	assert.Equal(t, "€ 1.234.567,50", eur(1234567.5))
	assert.Equal(t, "€ -24,40", eur(-24.4))
	assert.Equal(t, "$ 12,00", moneyFormatter("usd")(12))
	assert.Equal(t, "SEK 3,10", moneyFormatter("SEK")(3.1))
}

func TestFormatPercentAndQuantity(t *testing.T) {
	assert.Equal(t, "22%", formatPercent(22))
	assert.Equal(t, "5,5%", formatPercent(5.5))
	assert.Equal(t, "2,25", formatQuantity(2.25))
	assert.Equal(t, "3", formatQuantity(3))
}
