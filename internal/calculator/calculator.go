// Package calculator computes the derived line fields and totals of a quote.
//
// Every monetary step is rounded to two decimals half away from zero, both
// per line and again when the per-line values are summed. Inputs are never
// mutated and no bounds checking is applied, so negative quantities or
// prices produce negative amounts.
package calculator

import (
	"github.com/shopspring/decimal"

	"preventivi/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Calculate returns a copy of doc with every line's derived fields and the
// totals block recomputed.
func Calculate(doc domain.QuoteDocument) domain.QuoteDocument {
	out := doc
	out.Body.Lines, out.Totals = Lines(doc.Body.Lines)
	return out
}

type rateBucket struct {
	rate float64
	net  decimal.Decimal
	vat  decimal.Decimal
}

// Lines computes the derived fields of each line item, in order, and the
// aggregate totals. The returned slice is a new slice.
func Lines(in []domain.LineItem) ([]domain.LineItem, domain.Totals) {
	lines := make([]domain.LineItem, len(in))

	var (
		sumNet      = decimal.Zero
		sumVAT      = decimal.Zero
		sumDiscount = decimal.Zero
		buckets     []*rateBucket
		byRate      = map[float64]*rateBucket{}
	)

	for i, item := range in {
		line := item
		line.LineNumber = i + 1

		base := round2(decimal.NewFromFloat(line.Quantity).Mul(decimal.NewFromFloat(line.UnitNetPrice)))

		discount := decimal.Zero
		if line.DiscountPercent > 0 {
			discount = round2(base.Mul(decimal.NewFromFloat(line.DiscountPercent).Div(hundred)))
		}

		net := round2(base.Sub(discount))
		vat := round2(net.Mul(decimal.NewFromFloat(line.VATRate).Div(hundred)))
		gross := round2(net.Add(vat))

		line.NetSubtotal = toFloat(net)
		line.VATAmount = toFloat(vat)
		line.GrossSubtotal = toFloat(gross)
		lines[i] = line

		sumDiscount = sumDiscount.Add(discount)
		sumNet = sumNet.Add(net)
		sumVAT = sumVAT.Add(vat)

		b, ok := byRate[line.VATRate]
		if !ok {
			b = &rateBucket{rate: line.VATRate, net: decimal.Zero, vat: decimal.Zero}
			byRate[line.VATRate] = b
			buckets = append(buckets, b)
		}
		b.net = b.net.Add(net)
		b.vat = b.vat.Add(vat)
	}

	breakdown := make([]domain.VATSummary, 0, len(buckets))
	for _, b := range buckets {
		breakdown = append(breakdown, domain.VATSummary{
			Rate:    b.rate,
			Taxable: toFloat(round2(b.net)),
			VAT:     toFloat(round2(b.vat)),
		})
	}

	totals := domain.Totals{
		NetTotal:      toFloat(round2(sumNet)),
		DiscountTotal: toFloat(round2(sumDiscount)),
		VATTotal:      toFloat(round2(sumVAT)),
		GrossTotal:    toFloat(round2(sumNet.Add(sumVAT))),
		VATBreakdown:  breakdown,
	}
	return lines, totals
}

// Round2 rounds v to two decimals, half away from zero.
func Round2(v float64) float64 {
	return toFloat(round2(decimal.NewFromFloat(v)))
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
