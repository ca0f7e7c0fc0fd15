// Package render produces HTML and PDF output from a composed quote.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"preventivi/internal/composer"
	"preventivi/internal/config"
	"preventivi/internal/domain"
	"preventivi/internal/port"
)

//go:embed templates/quote.html.tmpl
var templateFS embed.FS

// Renderer renders compositions to HTML with html/template and to PDF with
// gofpdf.
type Renderer struct {
	html  *template.Template
	font  string
	money func(float64) string
}

// New parses the embedded templates and returns a Renderer.
func New(cfg config.RenderConfig) (*Renderer, error) {
	money := moneyFormatter(cfg.Currency)
	tmpl, err := template.New("quote").Funcs(template.FuncMap{
		"money": money,
		"pct":   formatPercent,
		"qty":   formatQuantity,
	}).ParseFS(templateFS, "templates/quote.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing quote template: %w", err)
	}

	font := cfg.FontFamily
	if font == "" {
		font = "Helvetica"
	}
	return &Renderer{html: tmpl, font: font, money: money}, nil
}

var _ port.DocumentRenderer = (*Renderer)(nil)

type pageData struct {
	Doc          domain.QuoteDocument
	PageSize     template.CSS
	Margins      domain.Margins
	Font         template.CSS
	CustomStyles template.CSS
	Sections     []template.HTML
}

// RenderHTML renders each enabled module in composition order. Modules
// without a built-in renderer are skipped.
func (r *Renderer) RenderHTML(comp composer.Composition) ([]byte, error) {
	data := pageData{
		Doc:      comp.DocumentData,
		PageSize: template.CSS(pageSize(comp.TemplateConfig)),
		Margins:  comp.TemplateConfig.Margins,
		Font:     template.CSS(r.font),
	}
	if comp.TemplateConfig.CustomStyles != nil {
		data.CustomStyles = template.CSS(*comp.TemplateConfig.CustomStyles)
	}

	for _, m := range comp.ModulesOrder {
		t := r.html.Lookup(m.Name)
		if t == nil || !composer.IsBuiltin(m.Name) {
			continue
		}
		var buf bytes.Buffer
		if err := t.Execute(&buf, comp.DocumentData); err != nil {
			return nil, &domain.RenderError{Err: fmt.Errorf("module %s: %w", m.Name, err)}
		}
		data.Sections = append(data.Sections, template.HTML(buf.String()))
	}

	var out bytes.Buffer
	if err := r.html.ExecuteTemplate(&out, "page", data); err != nil {
		return nil, &domain.RenderError{Err: err}
	}
	return out.Bytes(), nil
}

func pageSize(tc composer.TemplateConfig) string {
	format := tc.PageFormat
	if format == "" {
		format = "A4"
	}
	orientation := tc.PageOrientation
	if orientation == "" {
		orientation = domain.OrientationPortrait
	}
	return format + " " + string(orientation)
}

// moneyFormatter returns a function formatting amounts in Italian notation
// prefixed by the currency symbol, e.g. "€ 1.234,56".
func moneyFormatter(currency string) func(float64) string {
	symbol := currency
	switch strings.ToUpper(currency) {
	case "", "EUR":
		symbol = "€"
	case "USD":
		symbol = "$"
	case "GBP":
		symbol = "£"
	case "CHF":
		symbol = "CHF"
	}
	return func(v float64) string {
		return symbol + " " + italianNumber(decimal.NewFromFloat(v).StringFixed(2))
	}
}

func formatPercent(v float64) string {
	return strings.Replace(decimal.NewFromFloat(v).String(), ".", ",", 1) + "%"
}

func formatQuantity(v float64) string {
	return strings.Replace(decimal.NewFromFloat(v).String(), ".", ",", 1)
}

// italianNumber converts a plain decimal string ("-1234.56") to Italian
// grouping ("-1.234,56").
func italianNumber(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i+1:]
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	if frac != "" {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	return sign + b.String()
}
