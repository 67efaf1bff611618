package livefolio

import "github.com/etnz/livefolio/observe"

// Option configures the construction of quotes, holdings and portfolios.
type Option func(*options)

type options struct {
	scheduler *observe.Scheduler
}

// WithScheduler sets the scheduler delivering the entity's change records.
// Entities of one graph should share a scheduler; the default is
// observe.Default().
func WithScheduler(s *observe.Scheduler) Option {
	return func(o *options) { o.scheduler = s }
}

func newOptions(opts []Option) options {
	o := options{scheduler: observe.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scheduler == nil {
		o.scheduler = observe.Default()
	}
	return o
}

// Property names used in change records.
const (
	PropPrice    = "price"
	PropShares   = "shares"
	PropValue    = "value"
	PropName     = "name"
	PropHoldings = "holdings"
)
