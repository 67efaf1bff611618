package livefolio

import (
	"fmt"
	"slices"

	"github.com/etnz/livefolio/observe"
)

// Portfolio is a named, ordered collection of holdings valued as the sum of
// their values.
//
// The portfolio does not own its holdings, a holding may belong to several
// portfolios. It observes its collection of holdings and each of them, and
// synthesizes a "value" record whenever its value changes.
//
// The old value of a record is the value last reported (or the initial one),
// so a unit of work that changes several holdings, or changes a holding and
// then removes it, reports the value as of the start of the unit.
type Portfolio struct {
	notifier *observe.Notifier
	name     observe.Property[string]
	holdings *observe.Collection[*Holding]
	observer *observe.CollectionObserver[*Holding]

	reported         Money      // value as of the last "value" record
	reportedHoldings []*Holding // content as of the last delivered change
}

// NewPortfolio returns a portfolio of holdings. All holdings must be valued in
// the same currency.
func NewPortfolio(name string, holdings []*Holding, opts ...Option) (*Portfolio, error) {
	o := newOptions(opts)
	p := &Portfolio{
		notifier: observe.NewNotifier(o.scheduler, name),
		name:     observe.NewProperty(PropName, name, observe.Comparable[string]),
	}
	coll, err := p.newHoldings(holdings)
	if err != nil {
		return nil, err
	}
	p.holdings = coll
	p.reported, p.reportedHoldings = p.Value(), coll.Items()
	p.observer = observe.NewCollectionObserver(p.observeStructure, p.observeHolding)
	if err := p.observer.Attach(coll); err != nil {
		return nil, err
	}
	return p, nil
}

// Notifier implements observe.Observable.
func (p *Portfolio) Notifier() *observe.Notifier { return p.notifier }

func (p *Portfolio) String() string { return p.Name() }

// Name returns the portfolio's name.
func (p *Portfolio) Name() string { return p.name.Get() }

// SetName renames the portfolio. The name has no effect on the value.
func (p *Portfolio) SetName(name string) {
	defer p.notifier.Scheduler().Begin()()
	p.name.Set(p, name)
}

// Holdings returns the live collection of holdings. Its mutators are the way
// to insert or remove holdings.
func (p *Portfolio) Holdings() *observe.Collection[*Holding] { return p.holdings }

// Currency returns the currency of the portfolio's value, empty if no holding
// has a currency.
func (p *Portfolio) Currency() string { return p.Value().Currency() }

// Value returns the sum of the holdings' values.
func (p *Portfolio) Value() Money { return total(p.holdings.Items()) }

// SetHoldings replaces the collection of holdings.
//
// The portfolio stops observing the old collection and its holdings, emits a
// "holdings" record (old value is a copy of the old content) and a "value"
// record, then observes the new collection and its holdings. Changes made to
// the old collection earlier in the same unit are not reported.
func (p *Portfolio) SetHoldings(holdings []*Holding) error {
	if slices.Equal(p.holdings.Items(), holdings) {
		return nil
	}
	coll, err := p.newHoldings(holdings)
	if err != nil {
		return err
	}

	defer p.notifier.Scheduler().Begin()()
	p.observer.Detach()
	p.holdings = coll
	if old := p.reportedHoldings; !slices.Equal(old, holdings) {
		p.notifier.Notify(observe.Record{
			Kind:     observe.Update,
			Name:     PropHoldings,
			OldValue: old,
			Subject:  p,
		})
	}
	p.reportedHoldings = coll.Items()
	p.notifyValue()
	return p.observer.Attach(coll)
}

// Close stops observing the holdings.
func (p *Portfolio) Close() { p.observer.Detach() }

// Lookup returns the current value of the named property.
func (p *Portfolio) Lookup(name string) (any, bool) {
	switch name {
	case PropName:
		return p.Name(), true
	case PropHoldings:
		return p.holdings, true
	case PropValue:
		return p.Value(), true
	}
	return nil, false
}

func (p *Portfolio) newHoldings(holdings []*Holding) (*observe.Collection[*Holding], error) {
	return observe.NewCollection(p.notifier.Scheduler(), "holdings of "+p.Name(), holdings, sameCurrency)
}

// observeHolding reports the value after a holding's value changed. A
// holding present several times needs no special care, the value is read as a
// whole.
func (p *Portfolio) observeHolding(_ *Holding, _ int, r observe.Record) {
	if r.Kind != observe.Update || r.Name != PropValue {
		return
	}
	p.notifyValue()
}

// observeStructure reports the value after the content changed.
func (p *Portfolio) observeStructure([]observe.Record) {
	p.reportedHoldings = p.holdings.Items()
	p.notifyValue()
}

// notifyValue emits a "value" record if the value differs from the one last
// reported.
func (p *Portfolio) notifyValue() {
	old, current := p.reported, p.Value()
	p.reported = current
	if old.same(current) {
		return
	}
	p.notifier.Notify(observe.Record{
		Kind:     observe.Update,
		Name:     PropValue,
		OldValue: old,
		Subject:  p,
	})
}

// total folds the holdings' values left to right.
func total(holdings []*Holding) Money {
	var sum Money
	for _, h := range holdings {
		sum = sum.Add(h.Value())
	}
	return sum
}

// sameCurrency rejects holdings valued in different currencies.
func sameCurrency(holdings []*Holding) error {
	var currency string
	for _, h := range holdings {
		c := h.Currency()
		switch {
		case c == "":
		case currency == "":
			currency = c
		case c != currency:
			return fmt.Errorf("holding %s is in %s, others are in %s", h, c, currency)
		}
	}
	return nil
}
