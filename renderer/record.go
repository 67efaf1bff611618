package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/livefolio"
	"github.com/etnz/livefolio/observe"
)

// RecordLine returns a one line, human readable, description of r.
//
// Update records show the old value and, when the subject can look it up, the
// current one followed by the change for money values.
func RecordLine(r observe.Record) string {
	subject := livefolio.Describe(r.Subject)
	switch r.Kind {
	case observe.Update:
		if l, ok := r.Subject.(livefolio.Lookuper); ok {
			if v, ok := l.Lookup(r.Name); ok {
				line := fmt.Sprintf("%s %s: %s → %s", subject, r.Name, formatValue(r.OldValue), formatValue(v))
				if d, ok := delta(r.OldValue, v); ok {
					line += " (" + d.SignedString() + ")"
				}
				return line
			}
		}
		return fmt.Sprintf("%s %s: was %s", subject, r.Name, formatValue(r.OldValue))
	case observe.Insert:
		return fmt.Sprintf("%s: inserted %s at %d", subject, formatList(r.Added), r.Index)
	case observe.Remove:
		return fmt.Sprintf("%s: removed %s at %d", subject, formatList(r.Removed), r.Index)
	case observe.Replace:
		return fmt.Sprintf("%s: replaced %s by %s", subject, formatList(r.Removed), formatList(r.Added))
	}
	return r.String()
}

// delta returns current - old when both are money values in the same currency.
func delta(old, current any) (livefolio.Money, bool) {
	o, ok := old.(livefolio.Money)
	if !ok {
		return livefolio.Money{}, false
	}
	c, ok := current.(livefolio.Money)
	if !ok || o.Currency() != c.Currency() {
		return livefolio.Money{}, false
	}
	return c.Sub(o), true
}

func formatValue(v any) string {
	switch v := v.(type) {
	case livefolio.Money:
		return v.String()
	case *observe.Collection[*livefolio.Holding]:
		return "[" + formatHoldings(v.Items()) + "]"
	case []*livefolio.Holding:
		return "[" + formatHoldings(v) + "]"
	}
	return livefolio.Describe(v)
}

func formatHoldings(holdings []*livefolio.Holding) string {
	var names []string
	for _, h := range holdings {
		names = append(names, h.String())
	}
	return strings.Join(names, ", ")
}

func formatList(values []any) string {
	if len(values) == 0 {
		return "nothing"
	}
	var names []string
	for _, v := range values {
		if h, ok := v.(*livefolio.Holding); ok {
			names = append(names, h.String())
			continue
		}
		names = append(names, livefolio.Describe(v))
	}
	return strings.Join(names, ", ")
}
