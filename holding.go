package livefolio

import (
	"fmt"

	"github.com/etnz/livefolio/observe"
)

// Holding is a number of shares of a quoted security.
//
// Its value, price × shares, is computed on every read. Changes of either
// input produce a synthesized "value" record carrying the value before the
// change.
type Holding struct {
	notifier *observe.Notifier
	quote    *Quote // write-once, shared with other holdings
	shares   observe.Property[Quantity]
	sub      observe.Handle
}

// NewHolding returns a holding of shares of q, observing q from now on.
func NewHolding(q *Quote, shares Quantity, opts ...Option) (*Holding, error) {
	if q == nil {
		return nil, fmt.Errorf("holding without quote: %w", ErrInvalidArgument)
	}
	o := newOptions(opts)
	h := &Holding{
		notifier: observe.NewNotifier(o.scheduler, q.Ticker()),
		quote:    q,
		shares:   observe.NewProperty(PropShares, shares, Quantity.Equal),
	}
	h.sub = q.Notifier().Subscribe(observe.ObserverFunc(h.observeQuote))
	return h, nil
}

// Notifier implements observe.Observable.
func (h *Holding) Notifier() *observe.Notifier { return h.notifier }

func (h *Holding) String() string { return fmt.Sprintf("%s×%s", h.quote.Ticker(), h.Shares()) }

// Quote returns the quote the holding is valued with.
func (h *Holding) Quote() *Quote { return h.quote }

// Ticker returns the quote's ticker.
func (h *Holding) Ticker() string { return h.quote.Ticker() }

// Currency returns the currency of the holding's value.
func (h *Holding) Currency() string { return h.quote.Currency() }

// Shares returns the number of shares held.
func (h *Holding) Shares() Quantity { return h.shares.Get() }

// Value returns the current market value of the holding.
func (h *Holding) Value() Money { return h.quote.Price().Mul(h.Shares()) }

// SetShares updates the number of shares. It emits a "shares" record then a
// "value" record, in the same batch. Nothing is emitted if shares is
// unchanged.
func (h *Holding) SetShares(shares Quantity) {
	defer h.notifier.Scheduler().Begin()()
	oldValue := h.Value()
	if !h.shares.Set(h, shares) {
		return
	}
	h.notifyValue(oldValue)
}

// Close stops observing the quote. The holding keeps computing a correct
// value but no longer reports price changes.
func (h *Holding) Close() { h.sub.Unsubscribe() }

// Lookup returns the current value of the named property.
func (h *Holding) Lookup(name string) (any, bool) {
	switch name {
	case PropShares:
		return h.Shares(), true
	case PropValue:
		return h.Value(), true
	}
	return nil, false
}

// observeQuote synthesizes one "value" record per "price" record. Shares are
// not changed by a price change, so the current number of shares values the
// old price.
func (h *Holding) observeQuote(batch []observe.Record) {
	for _, r := range batch {
		if r.Kind != observe.Update || r.Name != PropPrice {
			continue
		}
		oldPrice, ok := r.OldValue.(Money)
		if !ok {
			continue
		}
		h.notifyValue(oldPrice.Mul(h.Shares()))
	}
}

func (h *Holding) notifyValue(old Money) {
	if old.same(h.Value()) {
		return
	}
	h.notifier.Notify(observe.Record{
		Kind:     observe.Update,
		Name:     PropValue,
		OldValue: old,
		Subject:  h,
	})
}
