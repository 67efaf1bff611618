// Package renderer turns the valuation graph and its records into markdown.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/livefolio"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown returns a markdown report of the portfolios: an overview
// table then one section per portfolio listing its holdings.
func SummaryMarkdown(title string, portfolios []*livefolio.Portfolio) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	overview := md.TableSet{
		Header:    []string{"Portfolio", "Holdings", "Value"},
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
	}
	for _, p := range portfolios {
		overview.Rows = append(overview.Rows, []string{p.Name(), fmt.Sprint(p.Holdings().Len()), p.Value().String()})
	}
	doc.Table(overview)

	for _, p := range portfolios {
		doc.H2(p.Name())
		if p.Holdings().Len() == 0 {
			doc.PlainText(md.Italic("No holdings."))
			continue
		}
		doc.Table(holdingsTable(p))
	}
	return doc.String() + "\n"
}

func holdingsTable(p *livefolio.Portfolio) md.TableSet {
	total := p.Value()
	table := md.TableSet{
		Header: []string{"Ticker", "Shares", "Price", "Value", "Weight"},
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
	}
	for _, h := range p.Holdings().All() {
		table.Rows = append(table.Rows, []string{
			h.Ticker(),
			h.Shares().String(),
			h.Quote().Price().String(),
			h.Value().String(),
			livefolio.Share(h.Value(), total).String(),
		})
	}
	table.Rows = append(table.Rows, []string{md.Bold("Total"), "", "", md.Bold(total.String()), ""})
	return table
}
