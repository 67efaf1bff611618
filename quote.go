package livefolio

import (
	"fmt"

	"github.com/etnz/livefolio/observe"
)

// Quote is the current price of a security.
//
// Quotes are the sources of the valuation graph: holdings observe their
// quote, portfolios observe their holdings.
type Quote struct {
	notifier *observe.Notifier
	ticker   string // write-once, the quote's identity
	price    observe.Property[Money]
}

// NewQuote returns a quote for ticker. The price currency, if any, must be a
// known currency code; it is then the quote's currency for good.
func NewQuote(ticker string, price Money, opts ...Option) (*Quote, error) {
	if ticker == "" {
		return nil, fmt.Errorf("quote without ticker: %w", ErrInvalidArgument)
	}
	if !price.weak() {
		if err := ValidateCurrency(price.Currency()); err != nil {
			return nil, fmt.Errorf("quote %s: %w", ticker, err)
		}
	}
	o := newOptions(opts)
	return &Quote{
		notifier: observe.NewNotifier(o.scheduler, ticker),
		ticker:   ticker,
		price:    observe.NewProperty(PropPrice, price, Money.Equal),
	}, nil
}

// Notifier implements observe.Observable.
func (q *Quote) Notifier() *observe.Notifier { return q.notifier }

func (q *Quote) String() string { return q.ticker }

// Ticker returns the quote's identity.
func (q *Quote) Ticker() string { return q.ticker }

// Currency returns the currency of the price.
func (q *Quote) Currency() string { return q.price.Get().Currency() }

// Price returns the current price.
func (q *Quote) Price() Money { return q.price.Get() }

// SetPrice updates the price. A price without currency is taken in the
// quote's currency, a price in another currency is rejected: the currency of a
// quote never changes.
func (q *Quote) SetPrice(p Money) error {
	if !p.sameCurrency(q.Price()) {
		return fmt.Errorf("price of %s in %s, want %s: %w", q.ticker, p.Currency(), q.Currency(), ErrInvalidArgument)
	}
	p = p.In(q.Currency())
	defer q.notifier.Scheduler().Begin()()
	q.price.Set(q, p)
	return nil
}

// Lookup returns the current value of the named property.
func (q *Quote) Lookup(name string) (any, bool) {
	switch name {
	case PropPrice:
		return q.Price(), true
	}
	return nil, false
}
